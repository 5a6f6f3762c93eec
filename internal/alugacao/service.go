package alugacao

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/safeyard/patio/internal/gateway"
	"github.com/safeyard/patio/internal/util"
)

const (
	pathForm = "/locacoes/form"
	pathBase = "/locacoes"
)

// Form é o formulário de alugação em formato de exibição: CPF mascarado,
// placa com separador, datas DD/MM/AAAA.
type Form struct {
	CPF           string
	Nome          string
	Placa         string
	DataRetirada  string
	DataDevolucao string
}

// Partial carrega apenas os campos realmente preenchidos de uma
// atualização; campos nulos são omitidos do corpo, não anulados.
type Partial struct {
	CPF           *string
	Nome          *string
	Placa         *string
	DataRetirada  *string
	DataDevolucao *string
}

// Card é um registro de alugação pronto para exibição, com datas já
// convertidas de volta para DD/MM/AAAA e id coagido para string.
type Card struct {
	ID            string
	CPF           string
	Nome          string
	Placa         string
	DataRetirada  string
	DataDevolucao string
}

// Service executa o CRUD de alugações contra a API remota, que é a
// fonte da verdade; nada é gravado localmente.
type Service struct {
	gw *gateway.Gateway
}

// NewService cria o serviço de alugações.
func NewService(gw *gateway.Gateway) *Service {
	return &Service{gw: gw}
}

// Create normaliza o formulário para o formato de fio (CPF só dígitos,
// placa sem separador, datas ISO) e envia ao endpoint de criação.
func (s *Service) Create(ctx context.Context, form Form) (Card, error) {
	body := map[string]string{
		"cpf":           util.OnlyDigits(form.CPF),
		"nome":          strings.TrimSpace(form.Nome),
		"placa":         util.NormalizePlaca(form.Placa),
		"dataRetirada":  BRToISODateTime(form.DataRetirada),
		"dataDevolucao": BRToISODateTime(form.DataDevolucao),
	}

	data, err := s.do(ctx, http.MethodPost, pathForm, body)
	if err != nil {
		return Card{}, err
	}
	return cardFrom(gjson.ParseBytes(data)), nil
}

// List busca todas as alugações. Corpo que não seja um array JSON vale
// como lista vazia; a resposta do servidor não é assumida confiável.
func (s *Service) List(ctx context.Context) ([]Card, error) {
	data, err := s.do(ctx, http.MethodGet, pathForm, nil)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return []Card{}, nil
	}

	cards := []Card{}
	root.ForEach(func(_, item gjson.Result) bool {
		cards = append(cards, cardFrom(item))
		return true
	})
	return cards, nil
}

// Update envia somente os campos preenchidos, com a mesma normalização
// por campo da criação, via PUT no caminho do registro.
func (s *Service) Update(ctx context.Context, id string, partial Partial) (Card, error) {
	body := map[string]string{}
	if partial.CPF != nil {
		body["cpf"] = util.OnlyDigits(*partial.CPF)
	}
	if partial.Nome != nil {
		body["nome"] = strings.TrimSpace(*partial.Nome)
	}
	if partial.Placa != nil {
		body["placa"] = util.NormalizePlaca(*partial.Placa)
	}
	if partial.DataRetirada != nil && *partial.DataRetirada != "" {
		body["dataRetirada"] = BRToISODateTime(*partial.DataRetirada)
	}
	if partial.DataDevolucao != nil && *partial.DataDevolucao != "" {
		body["dataDevolucao"] = BRToISODateTime(*partial.DataDevolucao)
	}

	data, err := s.do(ctx, http.MethodPut, pathBase+"/"+url.PathEscape(id), body)
	if err != nil {
		return Card{}, err
	}
	return cardFrom(gjson.ParseBytes(data)), nil
}

// Delete remove o registro pelo id. Nenhum estado local é alterado.
func (s *Service) Delete(ctx context.Context, id string) error {
	resp, err := s.gw.Request(ctx, http.MethodDelete, pathBase+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *Service) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	resp, err := s.gw.Request(ctx, method, path, body, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// cardFrom mapeia o registro do fio para o formato de exibição. O id
// pode vir como número ou string; datas ISO voltam para DD/MM/AAAA.
func cardFrom(item gjson.Result) Card {
	return Card{
		ID:            item.Get("id").String(),
		CPF:           item.Get("cpf").String(),
		Nome:          item.Get("nome").String(),
		Placa:         item.Get("placa").String(),
		DataRetirada:  ISOToBR(item.Get("dataRetirada").String()),
		DataDevolucao: ISOToBR(item.Get("dataDevolucao").String()),
	}
}
