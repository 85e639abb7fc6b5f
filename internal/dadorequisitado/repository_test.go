package dadorequisitado

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrindo sqlite em memória: %v", err)
	}
	if err := db.AutoMigrate(&DadoRequisitado{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func novoItem(t *testing.T, db *gorm.DB, repo Repository, processoID uint) *DadoRequisitado {
	t.Helper()
	d := &DadoRequisitado{
		ProcessoID:  processoID,
		Tipo:        TipoDocumento,
		Descricao:   "Comprovante de renda",
		Responsavel: ResponsavelCliente,
	}
	if err := repo.Criar(db, d); err != nil {
		t.Fatalf("Criar: %v", err)
	}
	return d
}

func TestCumprirVinculaDocumento(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	d := novoItem(t, db, repo, 1)

	quando := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	if err := repo.Cumprir(db, d.ID, 77, quando); err != nil {
		t.Fatalf("Cumprir: %v", err)
	}

	cumprido, err := repo.BuscarPorID(db, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !cumprido.Enviado || cumprido.DocumentoID == nil || *cumprido.DocumentoID != 77 {
		t.Errorf("item não ficou cumprido/vinculado: %+v", cumprido)
	}
	if cumprido.EnviadoEm == nil || !cumprido.EnviadoEm.Equal(quando) {
		t.Errorf("enviadoEm = %v, esperava %v", cumprido.EnviadoEm, quando)
	}
}

func TestCumprirDuasVezesExigeReabertura(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()
	d := novoItem(t, db, repo, 1)

	if err := repo.Cumprir(db, d.ID, 1, time.Now()); err != nil {
		t.Fatal(err)
	}
	err := repo.Cumprir(db, d.ID, 2, time.Now())
	if !errors.Is(err, ErrItemJaEnviado) {
		t.Fatalf("err = %v, esperava ErrItemJaEnviado", err)
	}

	// Depois de reaberto, um novo envio é aceito.
	if err := repo.Reabrir(db, d.ID); err != nil {
		t.Fatal(err)
	}
	reaberto, _ := repo.BuscarPorID(db, d.ID)
	if reaberto.Enviado || reaberto.DocumentoID != nil || reaberto.EnviadoEm != nil {
		t.Fatalf("reabertura não limpou o item: %+v", reaberto)
	}
	if err := repo.Cumprir(db, d.ID, 2, time.Now()); err != nil {
		t.Fatalf("segundo envio após reabertura: %v", err)
	}
}

func TestTodosEnviados(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	// Processo sem itens não conta como completo.
	ok, err := repo.TodosEnviados(db, 1)
	if err != nil || ok {
		t.Fatalf("sem itens: ok=%v err=%v, esperava false", ok, err)
	}

	a := novoItem(t, db, repo, 1)
	b := novoItem(t, db, repo, 1)

	if err := repo.Cumprir(db, a.ID, 10, time.Now()); err != nil {
		t.Fatal(err)
	}
	if ok, _ := repo.TodosEnviados(db, 1); ok {
		t.Errorf("ainda há item pendente")
	}

	if err := repo.Cumprir(db, b.ID, 11, time.Now()); err != nil {
		t.Fatal(err)
	}
	if ok, _ := repo.TodosEnviados(db, 1); !ok {
		t.Errorf("todos enviados deveria valer true")
	}
}

func TestReabrirEnviadosDoProcesso(t *testing.T) {
	db := testDB(t)
	repo := NewRepository()

	a := novoItem(t, db, repo, 1)
	b := novoItem(t, db, repo, 1)
	outro := novoItem(t, db, repo, 2)

	if err := repo.Cumprir(db, a.ID, 1, time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := repo.Cumprir(db, b.ID, 2, time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := repo.Cumprir(db, outro.ID, 3, time.Now()); err != nil {
		t.Fatal(err)
	}

	if err := repo.ReabrirEnviadosDoProcesso(db, 1); err != nil {
		t.Fatal(err)
	}

	itens, _ := repo.ListarPorProcesso(db, 1)
	for _, it := range itens {
		if it.Enviado {
			t.Errorf("item %d do processo 1 deveria estar reaberto", it.ID)
		}
	}
	intacto, _ := repo.BuscarPorID(db, outro.ID)
	if !intacto.Enviado {
		t.Errorf("item de outro processo não deveria ser afetado")
	}
}
