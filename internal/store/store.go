package store

import (
	"context"
	"errors"
)

// Chaves fixas usadas pelo núcleo do aplicativo. Os valores preservam o
// prefixo usado pelo app móvel para que um mesmo backend possa ser
// compartilhado entre as duas versões.
const (
	KeyToken    = "@safeyard:token"
	KeyTheme    = "@safeyard:themeMode"
	KeyLanguage = "@safeyard:language"
)

// ErrNotFound indica chave ausente no backend.
var ErrNotFound = errors.New("store: chave não encontrada")

// Store define o armazenamento chave-valor persistente do aplicativo.
// Sem garantias transacionais; último gravador vence.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
