package alugacao

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/safeyard/patio/internal/gateway"
	"github.com/safeyard/patio/internal/store"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw := gateway.New(srv.URL, store.NewMemory(), 5*time.Second)
	return NewService(gw), srv
}

func TestCreateNormalizaParaOFio(t *testing.T) {
	var received map[string]string

	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/locacoes/form" {
			t.Errorf("chamada inesperada: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decodificando corpo: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            42,
			"cpf":           received["cpf"],
			"nome":          received["nome"],
			"placa":         received["placa"],
			"dataRetirada":  received["dataRetirada"],
			"dataDevolucao": received["dataDevolucao"],
		})
	}))

	card, err := svc.Create(context.Background(), Form{
		CPF:           "123.456.789-01",
		Nome:          " Ana Souza ",
		Placa:         "ABC-1234",
		DataRetirada:  "01/06/2025",
		DataDevolucao: "10/06/2025",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wire := map[string]string{
		"cpf":           "12345678901",
		"nome":          "Ana Souza",
		"placa":         "ABC1234",
		"dataRetirada":  "2025-06-01T00:00:00",
		"dataDevolucao": "2025-06-10T00:00:00",
	}
	for field, want := range wire {
		if received[field] != want {
			t.Errorf("payload %s = %q, esperado %q", field, received[field], want)
		}
	}

	if card.ID != "42" {
		t.Errorf("id coagido = %q, esperado \"42\"", card.ID)
	}
	if card.DataRetirada != "01/06/2025" || card.DataDevolucao != "10/06/2025" {
		t.Errorf("datas de exibição = %q / %q", card.DataRetirada, card.DataDevolucao)
	}
}

func TestListMapeiaParaExibicao(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a1","cpf":"12345678901","nome":"Ana","placa":"ABC1234","dataRetirada":"2025-06-01T00:00:00","dataDevolucao":"2025-06-10T00:00:00"}]`))
	}))

	cards, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("len = %d, esperado 1", len(cards))
	}
	if cards[0].DataRetirada != "01/06/2025" {
		t.Errorf("dataRetirada = %q", cards[0].DataRetirada)
	}
}

func TestListCorpoNaoArrayViraListaVazia(t *testing.T) {
	bodies := []string{`{"message":"sem dados"}`, `null`, `"texto"`, ``}

	for _, body := range bodies {
		body := body
		svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))

		cards, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List com corpo %q: %v", body, err)
		}
		if len(cards) != 0 {
			t.Errorf("corpo %q: len = %d, esperado 0", body, len(cards))
		}
	}
}

func TestUpdateEnviaApenasCamposPreenchidos(t *testing.T) {
	var received map[string]any

	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/locacoes/a1" {
			t.Errorf("chamada inesperada: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decodificando corpo: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"a1","placa":"XYZ9876"}`))
	}))

	placa := "xyz-9876"
	devolucao := "15/06/2025"
	_, err := svc.Update(context.Background(), "a1", Partial{Placa: &placa, DataDevolucao: &devolucao})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(received) != 2 {
		t.Fatalf("corpo com %d campos, esperado 2: %v", len(received), received)
	}
	if received["placa"] != "XYZ9876" {
		t.Errorf("placa = %v", received["placa"])
	}
	if received["dataDevolucao"] != "2025-06-15T00:00:00" {
		t.Errorf("dataDevolucao = %v", received["dataDevolucao"])
	}
}

func TestDeleteInexistenteFalhaComRequestError(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	err := svc.Delete(context.Background(), "nao-existe")
	if err == nil {
		t.Fatal("Delete deveria falhar")
	}

	var reqErr *gateway.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("erro %T, esperado *gateway.RequestError", err)
	}
	if reqErr.Status != http.StatusNotFound {
		t.Errorf("status = %d", reqErr.Status)
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "not found") {
		t.Errorf("mensagem sem diagnóstico: %q", err.Error())
	}
}
