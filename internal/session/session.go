package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/safeyard/patio/internal/gateway"
	"github.com/safeyard/patio/internal/store"
	"github.com/safeyard/patio/internal/util"
)

// ValidationError indica campo de formulário rejeitado antes de
// qualquer chamada de rede.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// LoginError indica falha após esgotar as tentativas de login.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string { return e.Message }

// RegistrationError indica falha no cadastro de usuário.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string { return e.Message }

// Manager concentra cadastro, login, decodificação de token e logout.
type Manager struct {
	gw    *gateway.Gateway
	store store.Store
}

// NewManager cria o gerenciador de sessão.
func NewManager(gw *gateway.Gateway, st store.Store) *Manager {
	return &Manager{gw: gw, store: st}
}

// RegisterInput descreve o formulário de cadastro. A confirmação de
// senha é responsabilidade da camada de apresentação.
type RegisterInput struct {
	Nome  string
	CPF   string
	Email string
	Senha string
}

// Register valida e normaliza o formulário e chama o endpoint de
// cadastro. Não autentica o usuário recém-criado.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (map[string]any, error) {
	if err := util.RequireString(in.Nome, "nome"); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := util.ValidateCPF(in.CPF); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := util.ValidateEmail(in.Email); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := util.ValidatePassword(in.Senha); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	body := map[string]string{
		"nome":  strings.TrimSpace(in.Nome),
		"cpf":   util.OnlyDigits(in.CPF),
		"email": strings.ToLower(strings.TrimSpace(in.Email)),
		"senha": in.Senha,
	}

	var created map[string]any
	if err := m.gw.JSON(ctx, http.MethodPost, "/auth/register", body, &created); err != nil {
		var reqErr *gateway.RequestError
		if errors.As(err, &reqErr) {
			fallback := fmt.Sprintf("Falha no cadastro (HTTP %d)", reqErr.Status)
			return nil, &RegistrationError{Message: serverMessage(reqErr.Body, fallback)}
		}
		return nil, err
	}

	return created, nil
}

// loginPayloads lista as formas de corpo aceitas por diferentes versões
// do servidor, na ordem de tentativa.
func loginPayloads(email, senha string) []map[string]string {
	return []map[string]string{
		{"email": email, "password": senha},
		{"email": email, "senha": senha},
		{"username": email, "password": senha},
	}
}

// Login autentica o usuário tentando cada forma de payload em
// sequência. Vence a primeira resposta 2xx que traga um campo de token
// decifrável (token, access_token ou jwt, nessa ordem). O token vencedor
// é persistido na sessão antes de ser retornado.
func (m *Manager) Login(ctx context.Context, email, senha string) (string, error) {
	if err := util.RequireString(email, "email"); err != nil {
		return "", &ValidationError{Message: err.Error()}
	}
	if err := util.RequireString(senha, "senha"); err != nil {
		return "", &ValidationError{Message: err.Error()}
	}
	if err := util.ValidateEmail(email); err != nil {
		return "", &ValidationError{Message: err.Error()}
	}
	if err := util.ValidatePassword(senha); err != nil {
		return "", &ValidationError{Message: err.Error()}
	}

	lastMessage := "Falha no login"
	for attempt, payload := range loginPayloads(email, senha) {
		resp, err := m.gw.Request(ctx, http.MethodPost, "/auth/login", payload, nil)
		if err != nil {
			var reqErr *gateway.RequestError
			if errors.As(err, &reqErr) {
				fallback := fmt.Sprintf("HTTP %d %s", reqErr.Status, reqErr.StatusText)
				lastMessage = serverMessage(reqErr.Body, fallback)
			} else {
				lastMessage = err.Error()
			}
			log.Debug().Int("attempt", attempt+1).Str("detail", lastMessage).Msg("login_attempt_failed")
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastMessage = err.Error()
			continue
		}

		token := tokenFromResponse(data)
		if token == "" {
			lastMessage = "Token não retornado pela API."
			continue
		}

		if err := m.store.Set(ctx, store.KeyToken, token); err != nil {
			log.Warn().Err(err).Msg("falha ao persistir token da sessão")
		}
		return token, nil
	}

	return "", &LoginError{Message: lastMessage}
}

// tokenFromResponse procura o token nos campos aceitos, em ordem de
// prioridade.
func tokenFromResponse(body []byte) string {
	for _, field := range []string{"token", "access_token", "jwt"} {
		if value := gjson.GetBytes(body, field); value.Type == gjson.String && value.String() != "" {
			return value.String()
		}
	}
	return ""
}

// WhoAmI consulta o endpoint de usuário corrente da API.
func (m *Manager) WhoAmI(ctx context.Context) (map[string]any, error) {
	var me map[string]any
	if err := m.gw.JSON(ctx, http.MethodGet, "/auth/me", nil, &me); err != nil {
		return nil, err
	}
	return me, nil
}

// Logout descarta o token persistido. Falha de armazenamento vira
// retorno false, nunca erro, para a interface poder limpar a sessão de
// qualquer forma.
func (m *Manager) Logout(ctx context.Context) bool {
	if err := m.store.Remove(ctx, store.KeyToken); err != nil {
		log.Warn().Err(err).Msg("falha ao remover token da sessão")
		return false
	}
	return true
}

// serverMessage extrai a melhor mensagem disponível de um corpo de
// erro: campo message ou error de um JSON, senão o texto cru, senão o
// fallback informado.
func serverMessage(body, fallback string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return fallback
	}
	if gjson.Valid(body) {
		for _, field := range []string{"message", "error"} {
			if value := gjson.Get(body, field); value.Type == gjson.String && value.String() != "" {
				return value.String()
			}
		}
	}
	return body
}
