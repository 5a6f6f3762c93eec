package auth

import "github.com/alexedwards/argon2id"

// Parâmetros moderados: o servidor de desenvolvimento roda na máquina
// da pessoa desenvolvedora, não precisa do custo de produção.
var params = &argon2id.Params{
	Memory:      32 * 1024,
	Iterations:  2,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// HashSenha gera um hash Argon2id (os parâmetros ficam embutidos no hash).
func HashSenha(senha string) (string, error) {
	return argon2id.CreateHash(senha, params)
}

// VerificaSenha compara a senha com o hash Argon2id.
func VerificaSenha(senha, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(senha, hash)
}
