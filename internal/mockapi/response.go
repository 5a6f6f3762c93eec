package mockapi

import (
	"encoding/json"
	"net/http"
)

// writeJSON serializa o valor como o corpo inteiro da resposta. O
// formato é plano, sem envelope, igual ao da API de produção.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responde {"message": ...}, o campo que o cliente procura
// primeiro ao montar mensagens de erro.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
