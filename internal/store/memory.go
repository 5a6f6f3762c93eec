package store

import (
	"context"
	"sync"
)

// Memory guarda valores em memória. Útil em testes e em sessões
// efêmeras sem diretório de configuração disponível.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory cria um armazenamento vazio.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get retorna o valor da chave ou ErrNotFound.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set grava o valor, sobrescrevendo qualquer anterior.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Remove apaga a chave; remover chave inexistente não é erro.
func (m *Memory) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
