package utils

import "golang.org/x/crypto/bcrypt"

// HashSenha gera o hash bcrypt gravado no cadastro do usuário.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha confere a senha em texto puro contra o hash gravado.
func VerificarSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
