package auth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "segredo-de-teste")
	os.Exit(m.Run())
}

func TestGerarEValidarToken(t *testing.T) {
	tok, err := GerarToken(42, true)
	if err != nil {
		t.Fatalf("GerarToken: %v", err)
	}

	claims, err := ValidarToken(tok)
	if err != nil {
		t.Fatalf("ValidarToken: %v", err)
	}
	if claims.UserID != 42 || !claims.IsAdvogado {
		t.Errorf("claims = %+v, esperava userID 42 advogado", claims)
	}
}

func TestValidarTokenAdulterado(t *testing.T) {
	tok, err := GerarToken(1, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidarToken(tok + "x"); err == nil {
		t.Errorf("token adulterado deveria ser rejeitado")
	}
	if _, err := ValidarToken("nem-é-um-jwt"); err == nil {
		t.Errorf("lixo deveria ser rejeitado")
	}
}

func TestMiddlewareAutenticacao(t *testing.T) {
	alvo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := r.Context().Value(CtxUserID).(uint)
		if id != 7 {
			t.Errorf("CtxUserID = %d, esperava 7", id)
		}
		w.WriteHeader(http.StatusOK)
	})
	mw := MiddlewareAutenticacao(alvo)

	// Sem header.
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest("GET", "/processos", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("sem token: status %d, esperava 401", rec.Code)
	}

	// Token inválido.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/processos", nil)
	req.Header.Set("Authorization", "Bearer abc")
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("token inválido: status %d, esperava 401", rec.Code)
	}

	// Token válido popula o contexto.
	tok, err := GerarToken(7, false)
	if err != nil {
		t.Fatal(err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/processos", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("token válido: status %d, esperava 200", rec.Code)
	}
}

func TestRequireAdvogado(t *testing.T) {
	alvo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := MiddlewareAutenticacao(RequireAdvogado(alvo))

	tok, err := GerarToken(3, false)
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/advogado/resumo", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	mw.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("cliente em rota de advogado: status %d, esperava 403", rec.Code)
	}
}
