package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims é o payload emitido pelo servidor de desenvolvimento. Os
// papéis vão no campo roles e o perfil textual em perfil, duas das
// formas que o cliente reconhece.
type Claims struct {
	Roles  []string `json:"roles,omitempty"`
	Perfil string   `json:"perfil,omitempty"`
	jwt.RegisteredClaims
}

// JWTManager encapsula geração e validação de tokens de acesso.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager cria o gerenciador com segredo e TTL configurados.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// GenerateAccessToken cria um JWT HS256 para o usuário informado.
func (m *JWTManager) GenerateAccessToken(subject string, roles []string, perfil string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Roles:  roles,
		Perfil: perfil,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseAndValidate verifica assinatura e expiração.
func (m *JWTManager) ParseAndValidate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token inválido")
	}

	return claims, nil
}
