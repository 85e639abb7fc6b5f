package auth

import (
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecretOnce sync.Once
	jwtSecret     []byte
)

// Resolvida na primeira assinatura/validação, depois do godotenv.Load
// do boot. Sem segredo não há como emitir token: aborta.
func secret() []byte {
	jwtSecretOnce.Do(func() {
		s := os.Getenv("JWT_SECRET")
		if s == "" {
			log.Fatal("JWT_SECRET não definida")
		}
		jwtSecret = []byte(s)
	})
	return jwtSecret
}

// Claims do access token (RBAC simples: IsAdvogado)
type Claims struct {
	UserID     uint `json:"userId"`
	IsAdvogado bool `json:"isAdvogado"`
	jwt.RegisteredClaims
}

// Tempo de vida do access token
const AccessTTL = 15 * time.Minute

// GerarToken emite um JWT HS256 para o usuário autenticado
func GerarToken(userID uint, isAdvogado bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:     userID,
		IsAdvogado: isAdvogado,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret())
}

// ValidarToken valida assinatura e expiração
func ValidarToken(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return nil, errors.New("token expirado")
	}

	return c, nil
}
