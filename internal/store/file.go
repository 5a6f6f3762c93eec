package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// File persiste valores em um único arquivo JSON, equivalente local do
// armazenamento assíncrono do dispositivo. Cada escrita reescreve o
// arquivo inteiro; o volume é de poucas chaves, então isso basta.
type File struct {
	mu   sync.Mutex
	path string
}

// DefaultFilePath resolve o caminho padrão do arquivo de estado
// (~/.safeyard/store.json).
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".safeyard", "store.json"), nil
}

// NewFile cria um armazenamento apontando para o arquivo informado.
// O arquivo e seu diretório são criados sob demanda, na primeira escrita.
func NewFile(path string) *File {
	return &File{path: path}
}

// Get lê o arquivo e retorna o valor da chave ou ErrNotFound.
func (f *File) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set grava o valor e persiste o arquivo inteiro.
func (f *File) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	values[key] = value
	return f.save(values)
}

// Remove apaga a chave; chave inexistente não é erro.
func (f *File) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)
	return f.save(values)
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		// Arquivo corrompido vale como vazio; a próxima escrita o refaz.
		return map[string]string{}, nil
	}
	return values, nil
}

func (f *File) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
