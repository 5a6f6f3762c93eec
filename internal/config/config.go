package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza a configuração do cliente carregada do ambiente.
type Config struct {
	APIURL      string
	HTTPTimeout time.Duration
	StorePath   string
	RedisURL    string
}

// ServerConfig descreve a configuração do servidor de desenvolvimento.
type ServerConfig struct {
	Port      int
	JWTSecret string
	JWTTTL    time.Duration
}

// Load carrega variáveis de ambiente do cliente e aplica defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.APIURL = strings.TrimSpace(getEnv("API_URL", ""))
	if cfg.APIURL == "" {
		return nil, errors.New("API_URL obrigatória")
	}

	timeout, err := parseDurationEnv("HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.StorePath = strings.TrimSpace(getEnv("SAFEYARD_STORE", ""))
	cfg.RedisURL = strings.TrimSpace(getEnv("REDIS_URL", ""))

	return cfg, nil
}

// LoadServer carrega a configuração do servidor de desenvolvimento.
func LoadServer() (*ServerConfig, error) {
	_ = godotenv.Load()

	cfg := &ServerConfig{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "safeyard-dev-secret-nao-use-em-producao"
	}

	ttl, err := parseDurationEnv("JWT_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTTTL = ttl

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
