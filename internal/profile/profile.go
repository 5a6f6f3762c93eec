package profile

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/safeyard/patio/internal/gateway"
)

// Profile é a projeção somente-leitura do cliente autenticado, com a
// locação ativa (se houver). Formatação de exibição fica com a camada
// de apresentação.
type Profile struct {
	ClienteID     int64   `json:"clienteId"`
	Nome          string  `json:"nome"`
	Email         string  `json:"email"`
	CPF           string  `json:"cpf"`
	LocacaoID     *int64  `json:"locacaoId"`
	Placa         *string `json:"placa"`
	DataSaida     *string `json:"dataSaida"`
	DataDevolucao *string `json:"dataDevolucao"`
}

// Service busca o perfil do cliente na API.
type Service struct {
	gw *gateway.Gateway
}

// NewService cria o serviço de perfil.
func NewService(gw *gateway.Gateway) *Service {
	return &Service{gw: gw}
}

// MyProfile consulta o perfil autenticado. A resposta precisa declarar
// content-type JSON; páginas de erro HTML servidas com status 200 são
// rejeitadas com o corpo cru como mensagem.
func (s *Service) MyProfile(ctx context.Context) (Profile, error) {
	resp, err := s.gw.Request(ctx, http.MethodGet, "/profile/me", nil, nil)
	if err != nil {
		return Profile{}, err
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		raw, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = "Resposta não é JSON"
		}
		return Profile{}, errors.New(msg)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
