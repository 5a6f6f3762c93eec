package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis usa um servidor Redis como backend, para cenários em que a
// sessão precisa sobreviver a múltiplos dispositivos ou processos.
type Redis struct {
	client *redis.Client
}

// NewRedis cria o armazenamento a partir de uma URL (redis://...).
func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &Redis{client: redis.NewClient(opts)}, nil
}

// Close encerra a conexão com o servidor.
func (r *Redis) Close() error {
	return r.client.Close()
}

// Get retorna o valor da chave ou ErrNotFound.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set grava o valor sem expiração; os valores do app não expiram.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

// Remove apaga a chave; chave inexistente não é erro.
func (r *Redis) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
