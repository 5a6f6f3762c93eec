package util

import "github.com/google/uuid"

// NewID gera o identificador de registros criados localmente.
func NewID() string {
	return uuid.NewString()
}
