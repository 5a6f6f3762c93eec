// Package mockapi implementa, em memória, o contrato da API remota do
// SafeYard, para desenvolvimento e testes de ponta a ponta do cliente
// sem depender do servidor de produção.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/safeyard/patio/internal/auth"
	"github.com/safeyard/patio/internal/util"
)

type user struct {
	ID     int64    `json:"clienteId"`
	Nome   string   `json:"nome"`
	CPF    string   `json:"cpf"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	Perfil string   `json:"perfil"`
	hash   string
}

type locacao struct {
	ID            string `json:"id"`
	CPF           string `json:"cpf"`
	Nome          string `json:"nome"`
	Placa         string `json:"placa"`
	DataRetirada  string `json:"dataRetirada"`
	DataDevolucao string `json:"dataDevolucao"`
}

// Server guarda usuários e locações em memória. O estado é perdido ao
// encerrar o processo; isso é deliberado para um servidor de
// desenvolvimento.
type Server struct {
	jwt *auth.JWTManager

	mu       sync.Mutex
	users    map[string]*user
	nextID   int64
	locacoes map[string]*locacao
	order    []string
}

// NewServer cria o servidor com um administrador e um cliente de
// exemplo já cadastrados (admin@safeyard.com/admin123 e
// ana@safeyard.com/cliente123).
func NewServer(jwtManager *auth.JWTManager) (*Server, error) {
	s := &Server{
		jwt:      jwtManager,
		users:    make(map[string]*user),
		locacoes: make(map[string]*locacao),
		nextID:   1,
	}

	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) seed() error {
	adminHash, err := auth.HashSenha("admin123")
	if err != nil {
		return err
	}
	s.addUser(&user{
		Nome:   "Administrador",
		CPF:    "00000000000",
		Email:  "admin@safeyard.com",
		Roles:  []string{"ROLE_ADMIN"},
		Perfil: "admin",
		hash:   adminHash,
	})

	clienteHash, err := auth.HashSenha("cliente123")
	if err != nil {
		return err
	}
	s.addUser(&user{
		Nome:   "Ana Souza",
		CPF:    "12345678901",
		Email:  "ana@safeyard.com",
		Roles:  []string{"CLIENTE"},
		Perfil: "cliente",
		hash:   clienteHash,
	})

	s.addLocacao(&locacao{
		ID:            util.NewID(),
		CPF:           "12345678901",
		Nome:          "Ana Souza",
		Placa:         "ABC1234",
		DataRetirada:  "2025-06-01T00:00:00",
		DataDevolucao: "2025-06-10T00:00:00",
	})

	return nil
}

func (s *Server) addUser(u *user) {
	u.ID = s.nextID
	s.nextID++
	s.users[strings.ToLower(u.Email)] = u
}

func (s *Server) addLocacao(l *locacao) {
	s.locacoes[l.ID] = l
	s.order = append(s.order, l.ID)
}

// Handler monta o roteador com o namespace /api e a pilha de
// middlewares.
func (s *Server) Handler() http.Handler {
	limiter := newRateLimiter(50, 100)

	r := chi.NewRouter()
	r.Use(recoverer, logging, limiter.limitByIP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth(s.jwt))

			r.Get("/auth/me", s.handleMe)
			r.Get("/profile/me", s.handleProfile)
			r.Get("/locacoes/form", s.handleListLocacoes)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Post("/locacoes/form", s.handleCreateLocacao)
				r.Put("/locacoes/{id}", s.handleUpdateLocacao)
				r.Delete("/locacoes/{id}", s.handleDeleteLocacao)
			})
		})
	})

	return r
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Nome  string `json:"nome"`
		CPF   string `json:"cpf"`
		Email string `json:"email"`
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "corpo inválido")
		return
	}

	if strings.TrimSpace(body.Nome) == "" || strings.TrimSpace(body.Email) == "" || body.Senha == "" {
		writeError(w, http.StatusBadRequest, "nome, email e senha são obrigatórios")
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		writeError(w, http.StatusConflict, "email já cadastrado")
		return
	}

	hash, err := auth.HashSenha(body.Senha)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "erro interno")
		return
	}

	created := &user{
		Nome:   strings.TrimSpace(body.Nome),
		CPF:    util.OnlyDigits(body.CPF),
		Email:  email,
		Roles:  []string{"CLIENTE"},
		Perfil: "cliente",
		hash:   hash,
	}
	s.addUser(created)

	log.Info().Str("email", email).Msg("usuário cadastrado")
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "corpo inválido")
		return
	}

	// Versões diferentes do app enviam email/username e senha/password.
	email := body["email"]
	if email == "" {
		email = body["username"]
	}
	senha := body["senha"]
	if senha == "" {
		senha = body["password"]
	}

	if email == "" || senha == "" {
		writeError(w, http.StatusBadRequest, "credenciais incompletas")
		return
	}

	s.mu.Lock()
	account, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "credenciais inválidas")
		return
	}

	match, err := auth.VerificaSenha(senha, account.hash)
	if err != nil || !match {
		writeError(w, http.StatusUnauthorized, "credenciais inválidas")
		return
	}

	token, err := s.jwt.GenerateAccessToken(account.Email, account.Roles, account.Perfil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "erro interno")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	account, ok := s.users[subjectFrom(r.Context())]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "usuário não encontrado")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.users[subjectFrom(r.Context())]
	if !ok {
		writeError(w, http.StatusNotFound, "usuário não encontrado")
		return
	}

	profile := map[string]any{
		"clienteId": account.ID,
		"nome":      account.Nome,
		"email":     account.Email,
		"cpf":       account.CPF,
	}

	// Locação ativa: a mais recente com o CPF do cliente.
	for i := len(s.order) - 1; i >= 0; i-- {
		if l := s.locacoes[s.order[i]]; l != nil && l.CPF == account.CPF {
			profile["locacaoId"] = i + 1
			profile["placa"] = l.Placa
			profile["dataSaida"] = l.DataRetirada
			profile["dataDevolucao"] = l.DataDevolucao
			break
		}
	}

	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCreateLocacao(w http.ResponseWriter, r *http.Request) {
	var body locacao
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "corpo inválido")
		return
	}

	if body.CPF == "" || body.Placa == "" {
		writeError(w, http.StatusBadRequest, "cpf e placa são obrigatórios")
		return
	}

	body.ID = util.NewID()

	s.mu.Lock()
	s.addLocacao(&body)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, body)
}

func (s *Server) handleListLocacoes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]locacao, 0, len(s.order))
	for _, id := range s.order {
		if l := s.locacoes[id]; l != nil {
			list = append(list, *l)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdateLocacao(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "corpo inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.locacoes[id]
	if !ok {
		writeError(w, http.StatusNotFound, "locação não encontrada")
		return
	}

	if v, ok := body["cpf"]; ok {
		existing.CPF = v
	}
	if v, ok := body["nome"]; ok {
		existing.Nome = v
	}
	if v, ok := body["placa"]; ok {
		existing.Placa = v
	}
	if v, ok := body["dataRetirada"]; ok {
		existing.DataRetirada = v
	}
	if v, ok := body["dataDevolucao"]; ok {
		existing.DataDevolucao = v
	}

	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDeleteLocacao(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locacoes[id]; !ok {
		writeError(w, http.StatusNotFound, "locação não encontrada")
		return
	}

	delete(s.locacoes, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
