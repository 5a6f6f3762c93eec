// Comando safeyard é a interface de terminal do cliente de pátios:
// sessão, cadastro, perfil, pátios e gestão de alugações.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/safeyard/patio/internal/alugacao"
	"github.com/safeyard/patio/internal/config"
	"github.com/safeyard/patio/internal/gateway"
	"github.com/safeyard/patio/internal/patio"
	"github.com/safeyard/patio/internal/prefs"
	"github.com/safeyard/patio/internal/profile"
	"github.com/safeyard/patio/internal/session"
	"github.com/safeyard/patio/internal/store"
	"github.com/safeyard/patio/internal/util"
)

const usage = `uso: safeyard <comando> [opções]

comandos:
  register    cadastra um novo cliente
  login       autentica e grava o token da sessão
  logout      descarta o token da sessão
  whoami      mostra o usuário corrente da API
  perfil      mostra o perfil e a locação ativa
  patios      lista os pátios disponíveis
  devolucao   valida a devolução de uma moto em um pátio
  prefs       mostra ou altera tema e idioma
  alugacoes   lista as alugações
  alugar      cria uma alugação (admin)
  atualizar   atualiza campos de uma alugação (admin)
  remover     remove uma alugação (admin)
`

type app struct {
	store     store.Store
	sessions  *session.Manager
	alugacoes *alugacao.Service
	profiles  *profile.Service
	prefs     *prefs.Prefs
	closeFn   func()
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(zerolog.WarnLevel)

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("comando ausente")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.closeFn()

	ctx := context.Background()

	switch args[0] {
	case "register":
		return a.register(ctx, args[1:])
	case "login":
		return a.login(ctx, args[1:])
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "perfil":
		return a.perfil(ctx)
	case "patios":
		return a.patios()
	case "devolucao":
		return a.devolucao(args[1:])
	case "prefs":
		return a.preferencias(ctx, args[1:])
	case "alugacoes":
		return a.listar(ctx)
	case "alugar":
		return a.alugar(ctx, args[1:])
	case "atualizar":
		return a.atualizar(ctx, args[1:])
	case "remover":
		return a.remover(ctx, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("comando desconhecido: %s", args[0])
	}
}

func newApp(cfg *config.Config) (*app, error) {
	var (
		st      store.Store
		closeFn = func() {}
	)

	switch {
	case cfg.RedisURL != "":
		redisStore, err := store.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		st = redisStore
		closeFn = func() { _ = redisStore.Close() }
	default:
		path := cfg.StorePath
		if path == "" {
			defaultPath, err := store.DefaultFilePath()
			if err != nil {
				return nil, err
			}
			path = defaultPath
		}
		st = store.NewFile(path)
	}

	gw := gateway.New(cfg.APIURL, st, cfg.HTTPTimeout)

	return &app{
		store:     st,
		sessions:  session.NewManager(gw, st),
		alugacoes: alugacao.NewService(gw),
		profiles:  profile.NewService(gw),
		prefs:     prefs.New(st),
		closeFn:   closeFn,
	}, nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	nome := fs.String("nome", "", "nome completo")
	cpf := fs.String("cpf", "", "CPF no formato 123.456.789-01")
	email := fs.String("email", "", "e-mail")
	senha := fs.String("senha", "", "senha (mínimo 6 caracteres)")
	confirmar := fs.String("confirmar", "", "confirmação da senha")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// A confirmação é checada aqui, na camada de formulário; o serviço
	// de sessão só recebe a senha definitiva.
	if err := util.ValidatePasswordConfirm(*senha, *confirmar); err != nil {
		return err
	}

	created, err := a.sessions.Register(ctx, session.RegisterInput{
		Nome:  *nome,
		CPF:   *cpf,
		Email: *email,
		Senha: *senha,
	})
	if err != nil {
		return err
	}

	fmt.Println("cadastro concluído:")
	return printJSON(created)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "e-mail")
	senha := fs.String("senha", "", "senha")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := a.sessions.Login(ctx, *email, *senha)
	if err != nil {
		return err
	}

	// O papel decide a navegação: administradores caem na gestão de
	// alugações, os demais na área do cliente.
	claims, _ := session.DecodeToken(token)
	if session.ExtractRoles(claims).IsAdmin() {
		fmt.Println("login ok: perfil administrativo (gestão de alugações)")
	} else {
		fmt.Println("login ok: perfil cliente")
	}
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if !a.sessions.Logout(ctx) {
		fmt.Println("sessão encerrada (falha ao limpar o armazenamento local)")
		return nil
	}
	fmt.Println("sessão encerrada")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	me, err := a.sessions.WhoAmI(ctx)
	if err != nil {
		return err
	}
	return printJSON(me)
}

func (a *app) perfil(ctx context.Context) error {
	p, err := a.profiles.MyProfile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("nome:  %s\n", p.Nome)
	fmt.Printf("cpf:   %s\n", alugacao.FormatCPF(p.CPF))
	if p.Placa != nil {
		fmt.Printf("placa: %s\n", alugacao.FormatPlaca(*p.Placa))
	}
	if p.DataDevolucao != nil {
		fmt.Printf("devolução: %s\n", alugacao.ISOToBR(*p.DataDevolucao))
	}
	if p.Placa == nil && p.DataDevolucao == nil {
		fmt.Println("nenhuma locação ativa")
	}
	return nil
}

func (a *app) patios() error {
	for _, p := range patio.Catalog() {
		fmt.Printf("%s  %-14s %-40s vagas %d/%d\n", p.ID, p.Nome, p.Localizacao, p.Vagas, p.Capacidade)
	}
	return nil
}

func (a *app) devolucao(args []string) error {
	fs := flag.NewFlagSet("devolucao", flag.ContinueOnError)
	patioID := fs.String("patio", "", "id do pátio de devolução")
	cpf := fs.String("cpf", "", "CPF no formato 123.456.789-01")
	placa := fs.String("placa", "", "placa da moto")
	if err := fs.Parse(args); err != nil {
		return err
	}

	destino, ok := patio.FindByID(*patioID)
	if !ok {
		return fmt.Errorf("pátio desconhecido: %q", *patioID)
	}

	form := patio.Devolucao{CPF: *cpf, Placa: *placa, Localizacao: destino.Localizacao}
	if err := patio.ValidateDevolucao(form); err != nil {
		return err
	}

	fmt.Printf("moto %s será devolvida em: %s\n", form.Placa, form.Localizacao)
	return nil
}

func (a *app) preferencias(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("prefs", flag.ContinueOnError)
	tema := fs.String("tema", "", "light ou dark")
	idioma := fs.String("idioma", "", "pt ou es")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *tema != "" {
		if err := a.prefs.SetTheme(ctx, *tema); err != nil {
			return err
		}
	}
	if *idioma != "" {
		if err := a.prefs.SetLanguage(ctx, *idioma); err != nil {
			return err
		}
	}

	fmt.Printf("tema: %s\nidioma: %s\n", a.prefs.Theme(ctx), a.prefs.Language(ctx))
	return nil
}

func (a *app) listar(ctx context.Context) error {
	cards, err := a.alugacoes.List(ctx)
	if err != nil {
		return err
	}

	if len(cards) == 0 {
		fmt.Println("nenhuma alugação registrada")
		return nil
	}
	for _, c := range cards {
		fmt.Printf("%s  %s  %s  %s  retirada %s  devolução %s\n",
			c.ID, alugacao.FormatCPF(c.CPF), c.Nome, alugacao.FormatPlaca(c.Placa), c.DataRetirada, c.DataDevolucao)
	}
	return nil
}

func (a *app) alugar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alugar", flag.ContinueOnError)
	cpf := fs.String("cpf", "", "CPF no formato 123.456.789-01")
	nome := fs.String("nome", "", "nome do cliente")
	placa := fs.String("placa", "", "placa da moto")
	retirada := fs.String("retirada", "", "data de retirada DD/MM/AAAA")
	devolucao := fs.String("devolucao", "", "data de devolução DD/MM/AAAA")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validateForm(*cpf, *nome, *placa, *retirada, *devolucao); err != nil {
		return err
	}

	card, err := a.alugacoes.Create(ctx, alugacao.Form{
		CPF:           *cpf,
		Nome:          *nome,
		Placa:         *placa,
		DataRetirada:  *retirada,
		DataDevolucao: *devolucao,
	})
	if err != nil {
		return err
	}

	fmt.Printf("alugação criada: %s\n", card.ID)
	return nil
}

func (a *app) atualizar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("atualizar", flag.ContinueOnError)
	id := fs.String("id", "", "id da alugação")
	cpf := fs.String("cpf", "", "novo CPF")
	nome := fs.String("nome", "", "novo nome")
	placa := fs.String("placa", "", "nova placa")
	retirada := fs.String("retirada", "", "nova data de retirada DD/MM/AAAA")
	devolucao := fs.String("devolucao", "", "nova data de devolução DD/MM/AAAA")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		return fmt.Errorf("id obrigatório")
	}

	// Só os flags realmente informados entram na atualização parcial.
	partial := alugacao.Partial{}
	var invalid error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cpf":
			if err := util.ValidateCPF(*cpf); err != nil {
				invalid = err
				return
			}
			partial.CPF = cpf
		case "nome":
			partial.Nome = nome
		case "placa":
			if err := util.ValidatePlaca(*placa); err != nil {
				invalid = err
				return
			}
			partial.Placa = placa
		case "retirada":
			if err := util.ValidateDataBR(*retirada); err != nil {
				invalid = err
				return
			}
			partial.DataRetirada = retirada
		case "devolucao":
			if err := util.ValidateDataBR(*devolucao); err != nil {
				invalid = err
				return
			}
			partial.DataDevolucao = devolucao
		}
	})
	if invalid != nil {
		return invalid
	}

	card, err := a.alugacoes.Update(ctx, *id, partial)
	if err != nil {
		return err
	}

	fmt.Printf("alugação atualizada: %s\n", card.ID)
	return nil
}

func (a *app) remover(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remover", flag.ContinueOnError)
	id := fs.String("id", "", "id da alugação")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		return fmt.Errorf("id obrigatório")
	}

	if err := a.alugacoes.Delete(ctx, *id); err != nil {
		return err
	}

	fmt.Println("alugação removida")
	return nil
}

// validateForm aplica as regras de formulário da criação antes de
// qualquer chamada de rede.
func validateForm(cpf, nome, placa, retirada, devolucao string) error {
	if err := util.RequireString(cpf, "CPF"); err != nil {
		return err
	}
	if err := util.RequireString(nome, "nome"); err != nil {
		return err
	}
	if err := util.RequireString(placa, "placa"); err != nil {
		return err
	}
	if err := util.ValidateCPF(cpf); err != nil {
		return err
	}
	if err := util.ValidatePlaca(placa); err != nil {
		return err
	}
	if err := util.ValidateDataBR(retirada); err != nil {
		return err
	}
	return util.ValidateDataBR(devolucao)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
