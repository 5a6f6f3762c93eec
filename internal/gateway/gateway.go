package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/safeyard/patio/internal/store"
)

// maxErrBody limita o trecho do corpo carregado em erros de requisição.
const maxErrBody = 64 * 1024

// Gateway resolve URLs relativas contra a API remota, injeta cabeçalhos
// padrão e o bearer token da sessão, e normaliza respostas não-2xx em
// RequestError. A interpretação do corpo fica a cargo de quem chama.
type Gateway struct {
	base       string
	store      store.Store
	httpClient *http.Client
}

// New cria o gateway apontando para a URL base informada. A barra final
// da base é descartada; caminhos relativos recebem o prefixo /api.
func New(baseURL string, st store.Store, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Gateway{
		base:       strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		store:      st,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetHTTPClient substitui o transporte, útil em testes.
func (g *Gateway) SetHTTPClient(client *http.Client) {
	if client != nil {
		g.httpClient = client
	}
}

// RequestError descreve uma resposta não-2xx da API.
type RequestError struct {
	Method     string
	Path       string
	Status     int
	StatusText string
	Body       string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s %s -> HTTP %d %s", e.Method, e.Path, e.Status, e.StatusText)
	if e.Body != "" {
		msg += " " + e.Body
	}
	return msg
}

// Request monta e executa a chamada. body não-nulo é serializado como
// JSON. Cabeçalhos do chamador sobrescrevem os padrões, mas nunca o
// Authorization, que é imposto sempre que há token na sessão. Em
// sucesso devolve a resposta crua; quem chama fecha o corpo.
func (g *Gateway) Request(ctx context.Context, method, path string, body any, headers http.Header) (*http.Response, error) {
	req, err := g.newRequest(ctx, method, path, body, headers)
	if err != nil {
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api_request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		resp.Body.Close()
		return nil, &RequestError{
			Method:     method,
			Path:       path,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(detail)),
		}
	}

	return resp, nil
}

// JSON executa a chamada e decodifica o corpo em out (quando não nulo).
func (g *Gateway) JSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := g.Request(ctx, method, path, body, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *Gateway) newRequest(ctx context.Context, method, path string, body any, headers http.Header) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.resolve(path), reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for key, values := range headers {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	if token := g.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// resolve prefixa o namespace /api em caminhos relativos; URLs
// absolutas passam intactas.
func (g *Gateway) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return g.base + "/api" + path
}

// token lê o bearer token da sessão. Falha de leitura vale como
// ausência de token; o servidor rejeita chamadas sem credencial.
func (g *Gateway) token(ctx context.Context) string {
	token, err := g.store.Get(ctx, store.KeyToken)
	if err != nil {
		return ""
	}
	return token
}
