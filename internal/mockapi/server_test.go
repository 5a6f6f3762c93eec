package mockapi

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/safeyard/patio/internal/alugacao"
	"github.com/safeyard/patio/internal/auth"
	"github.com/safeyard/patio/internal/gateway"
	"github.com/safeyard/patio/internal/profile"
	"github.com/safeyard/patio/internal/session"
	"github.com/safeyard/patio/internal/store"
)

type clientStack struct {
	store     store.Store
	sessions  *session.Manager
	alugacoes *alugacao.Service
	profiles  *profile.Service
}

func newStack(t *testing.T) clientStack {
	t.Helper()

	jwtManager := auth.NewJWTManager("segredo-de-teste-para-o-mockapi", time.Hour)
	server, err := NewServer(jwtManager)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	st := store.NewMemory()
	gw := gateway.New(srv.URL, st, 5*time.Second)
	return clientStack{
		store:     st,
		sessions:  session.NewManager(gw, st),
		alugacoes: alugacao.NewService(gw),
		profiles:  profile.NewService(gw),
	}
}

// Fluxo completo do administrador: login, papel extraído do token,
// CRUD de alugações.
func TestFluxoAdministrador(t *testing.T) {
	c := newStack(t)
	ctx := context.Background()

	token, err := c.sessions.Login(ctx, "admin@safeyard.com", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, ok := session.DecodeToken(token)
	if !ok {
		t.Fatal("token emitido não decodifica")
	}
	if !session.ExtractRoles(claims).IsAdmin() {
		t.Fatal("sessão do admin deveria ser administrativa")
	}

	card, err := c.alugacoes.Create(ctx, alugacao.Form{
		CPF:           "987.654.321-00",
		Nome:          "Bruno Lima",
		Placa:         "XYZ-9876",
		DataRetirada:  "01/07/2025",
		DataDevolucao: "10/07/2025",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if card.ID == "" {
		t.Fatal("registro criado sem id")
	}
	if card.Placa != "XYZ9876" || card.DataRetirada != "01/07/2025" {
		t.Errorf("card = %+v", card)
	}

	cards, err := c.alugacoes.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cards) != 2 { // a locação de exemplo + a recém-criada
		t.Fatalf("len = %d, esperado 2", len(cards))
	}

	nome := "Bruno L. Lima"
	updated, err := c.alugacoes.Update(ctx, card.ID, alugacao.Partial{Nome: &nome})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Nome != nome {
		t.Errorf("nome atualizado = %q", updated.Nome)
	}

	if err := c.alugacoes.Delete(ctx, card.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var reqErr *gateway.RequestError
	if err := c.alugacoes.Delete(ctx, card.ID); !errors.As(err, &reqErr) || reqErr.Status != 404 {
		t.Errorf("segunda remoção: %v, esperado RequestError 404", err)
	}
}

// Fluxo do cliente: cadastro, login, papel não administrativo, perfil
// com a locação ativa.
func TestFluxoCliente(t *testing.T) {
	c := newStack(t)
	ctx := context.Background()

	_, err := c.sessions.Register(ctx, session.RegisterInput{
		Nome:  "Carla Dias",
		CPF:   "111.222.333-44",
		Email: "carla@safeyard.com",
		Senha: "segredo",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := c.sessions.Login(ctx, "carla@safeyard.com", "segredo")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, ok := session.DecodeToken(token)
	if !ok {
		t.Fatal("token emitido não decodifica")
	}
	if session.ExtractRoles(claims).IsAdmin() {
		t.Fatal("cliente não pode ser classificado como admin")
	}

	// Cliente autenticado não pode criar alugações.
	_, err = c.alugacoes.Create(ctx, alugacao.Form{CPF: "111.222.333-44", Placa: "AAA-0000"})
	var reqErr *gateway.RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != 403 {
		t.Errorf("criação por cliente: %v, esperado RequestError 403", err)
	}

	me, err := c.sessions.WhoAmI(ctx)
	if err != nil {
		t.Fatalf("WhoAmI: %v", err)
	}
	if me["email"] != "carla@safeyard.com" {
		t.Errorf("whoami = %v", me)
	}
}

func TestPerfilComLocacaoAtiva(t *testing.T) {
	c := newStack(t)
	ctx := context.Background()

	if _, err := c.sessions.Login(ctx, "ana@safeyard.com", "cliente123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	p, err := c.profiles.MyProfile(ctx)
	if err != nil {
		t.Fatalf("MyProfile: %v", err)
	}

	if p.Nome != "Ana Souza" || p.CPF != "12345678901" {
		t.Errorf("perfil = %+v", p)
	}
	if p.Placa == nil || *p.Placa != "ABC1234" {
		t.Errorf("placa = %v", p.Placa)
	}
	if p.DataDevolucao == nil || *p.DataDevolucao != "2025-06-10T00:00:00" {
		t.Errorf("dataDevolucao = %v", p.DataDevolucao)
	}
}

func TestRotasProtegidasSemToken(t *testing.T) {
	c := newStack(t)
	ctx := context.Background()

	_, err := c.alugacoes.List(ctx)
	var reqErr *gateway.RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != 401 {
		t.Errorf("lista sem token: %v, esperado RequestError 401", err)
	}

	_, err = c.profiles.MyProfile(ctx)
	if !errors.As(err, &reqErr) || reqErr.Status != 401 {
		t.Errorf("perfil sem token: %v, esperado RequestError 401", err)
	}
}

// Logout derruba a sessão: a próxima chamada sai sem credencial e o
// servidor a rejeita.
func TestLogoutDerrubaSessao(t *testing.T) {
	c := newStack(t)
	ctx := context.Background()

	if _, err := c.sessions.Login(ctx, "ana@safeyard.com", "cliente123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.sessions.WhoAmI(ctx); err != nil {
		t.Fatalf("WhoAmI autenticado: %v", err)
	}

	if !c.sessions.Logout(ctx) {
		t.Fatal("Logout deveria retornar true")
	}

	_, err := c.sessions.WhoAmI(ctx)
	var reqErr *gateway.RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != 401 {
		t.Errorf("após logout: %v, esperado RequestError 401", err)
	}
}

func TestLoginCredenciaisInvalidas(t *testing.T) {
	c := newStack(t)

	_, err := c.sessions.Login(context.Background(), "admin@safeyard.com", "senha-errada")

	var loginErr *session.LoginError
	if !errors.As(err, &loginErr) {
		t.Fatalf("erro %T, esperado *session.LoginError", err)
	}
	if loginErr.Message != "credenciais inválidas" {
		t.Errorf("mensagem = %q", loginErr.Message)
	}
}
