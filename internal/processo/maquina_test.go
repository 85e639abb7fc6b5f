package processo

import (
	"errors"
	"testing"
	"time"

	"github.com/Avocus/api-juridico/internal/dadorequisitado"
	"github.com/Avocus/api-juridico/internal/documento"
	"github.com/Avocus/api-juridico/internal/notificacao"
	"github.com/Avocus/api-juridico/internal/timeline"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("abrindo sqlite em memória: %v", err)
	}
	if err := db.AutoMigrate(
		&Processo{},
		&timeline.Entrada{},
		&dadorequisitado.DadoRequisitado{},
		&documento.Documento{},
		&notificacao.Notificacao{},
	); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

// Relógio determinístico: cada chamada avança um minuto, garantindo
// ordem estável na timeline.
func relogioFixo() func() time.Time {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
}

func maquinaDeTeste(t *testing.T) (*Maquina, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	m := NovaMaquina(db)
	m.Now = relogioFixo()
	return m, db
}

func novoProcesso(t *testing.T, m *Maquina) *Processo {
	t.Helper()
	p := &Processo{
		Titulo:    "Revisão de contrato de aluguel",
		Tipo:      TipoCivil,
		Descricao: "Cláusula de reajuste abusiva",
		Urgencia:  UrgenciaMedia,
		ClienteID: 1,
	}
	criado, err := m.CriarProcesso(p, timeline.AutorCliente)
	if err != nil {
		t.Fatalf("CriarProcesso: %v", err)
	}
	return criado
}

func TestCriarProcessoRegistraEntradaInicial(t *testing.T) {
	m, db := maquinaDeTeste(t)
	p := novoProcesso(t, m)

	if p.Status != StatusRascunho {
		t.Fatalf("status = %s, esperava RASCUNHO", p.Status)
	}

	entradas, err := m.Timeline.ListarPorProcesso(db, p.ID)
	if err != nil {
		t.Fatalf("ListarPorProcesso: %v", err)
	}
	if len(entradas) != 1 {
		t.Fatalf("timeline tem %d entradas, esperava 1", len(entradas))
	}
	if entradas[0].StatusAnterior != nil {
		t.Errorf("entrada inicial não deveria ter status anterior")
	}
	if entradas[0].NovoStatus != string(StatusRascunho) {
		t.Errorf("novoStatus = %s, esperava RASCUNHO", entradas[0].NovoStatus)
	}
}

func TestTransicaoAceitaAvancaStatusETimeline(t *testing.T) {
	m, db := maquinaDeTeste(t)
	p := novoProcesso(t, m)

	atualizado, err := m.SolicitarTransicao(p.ID, timeline.AutorAdvogado, StatusEmAnalise, "Análise iniciada", "")
	if err != nil {
		t.Fatalf("SolicitarTransicao: %v", err)
	}
	if atualizado.Status != StatusEmAnalise {
		t.Fatalf("status = %s, esperava EM_ANALISE", atualizado.Status)
	}

	entradas, _ := m.Timeline.ListarPorProcesso(db, p.ID)
	if len(entradas) != 2 {
		t.Fatalf("timeline tem %d entradas, esperava 2", len(entradas))
	}
	ultima := entradas[len(entradas)-1]
	if ultima.NovoStatus != string(atualizado.Status) {
		t.Errorf("status do processo (%s) difere do novoStatus da última entrada (%s)",
			atualizado.Status, ultima.NovoStatus)
	}
	if ultima.StatusAnterior == nil || *ultima.StatusAnterior != string(StatusRascunho) {
		t.Errorf("statusAnterior da última entrada deveria ser RASCUNHO")
	}
}

func TestTransicaoForaDaTabelaNaoGravaNada(t *testing.T) {
	m, db := maquinaDeTeste(t)
	p := novoProcesso(t, m)

	_, err := m.SolicitarTransicao(p.ID, timeline.AutorAdvogado, StatusConcluido, "", "")
	if !errors.Is(err, ErrTransicaoInvalida) {
		t.Fatalf("err = %v, esperava ErrTransicaoInvalida", err)
	}

	recarregado, _ := m.Processos.BuscarPorID(db, p.ID)
	if recarregado.Status != StatusRascunho {
		t.Errorf("status mudou para %s após transição rejeitada", recarregado.Status)
	}
	entradas, _ := m.Timeline.ListarPorProcesso(db, p.ID)
	if len(entradas) != 1 {
		t.Errorf("timeline cresceu após transição rejeitada: %d entradas", len(entradas))
	}
}

func TestStatusDesconhecidoRejeitado(t *testing.T) {
	m, _ := maquinaDeTeste(t)
	p := novoProcesso(t, m)

	_, err := m.SolicitarTransicao(p.ID, timeline.AutorSistema, StatusProcesso("INEXISTENTE"), "", "")
	if !errors.Is(err, ErrStatusInvalido) {
		t.Fatalf("err = %v, esperava ErrStatusInvalido", err)
	}
}

func TestFluxoFelizGeraCincoEntradas(t *testing.T) {
	m, db := maquinaDeTeste(t)
	p := novoProcesso(t, m)
	const advogadoID = 42

	// Advogado reivindica.
	if _, err := m.Reivindicar(p.ID, advogadoID, ""); err != nil {
		t.Fatalf("Reivindicar: %v", err)
	}
	// E confirma: atribui sem gerar entrada.
	confirmado, err := m.ConfirmarReivindicacao(p.ID, advogadoID)
	if err != nil {
		t.Fatalf("ConfirmarReivindicacao: %v", err)
	}
	if confirmado.AdvogadoID == nil || *confirmado.AdvogadoID != advogadoID {
		t.Fatalf("advogado não atribuído após confirmação")
	}
	if confirmado.Status != StatusPendente {
		t.Fatalf("confirmação não deveria mudar o status, veio %s", confirmado.Status)
	}

	// Advogado solicita documentos.
	if _, err := m.SolicitarTransicao(p.ID, timeline.AutorAdvogado, StatusAguardandoDados, "Documentos solicitados", ""); err != nil {
		t.Fatalf("transição para AGUARDANDO_DADOS: %v", err)
	}
	item := dadorequisitado.DadoRequisitado{
		ProcessoID:  p.ID,
		Tipo:        dadorequisitado.TipoDocumento,
		Descricao:   "RG e CPF",
		Responsavel: dadorequisitado.ResponsavelCliente,
	}
	if err := m.Dados.Criar(db, &item); err != nil {
		t.Fatalf("criando dado requisitado: %v", err)
	}

	// Cliente envia e cumpre o item; o sistema avança para análise.
	doc := documento.Documento{ProcessoID: p.ID, Nome: "rg.pdf", Chave: "chave-1", URL: "s3://bucket/rg.pdf"}
	if err := m.Documentos.Criar(db, &doc); err != nil {
		t.Fatalf("criando documento: %v", err)
	}
	if err := m.Dados.Cumprir(db, item.ID, doc.ID, m.Now()); err != nil {
		t.Fatalf("Cumprir: %v", err)
	}
	if _, err := m.SolicitarTransicao(p.ID, timeline.AutorSistema, StatusAguardandoAnaliseDados, "Todos os dados requisitados foram enviados", ""); err != nil {
		t.Fatalf("transição para AGUARDANDO_ANALISE_DADOS: %v", err)
	}

	// Advogado aprova.
	final, err := m.SolicitarTransicao(p.ID, timeline.AutorAdvogado, StatusEmAndamento, "Documentos aprovados", "")
	if err != nil {
		t.Fatalf("transição para EM_ANDAMENTO: %v", err)
	}
	if final.Status != StatusEmAndamento {
		t.Fatalf("status final = %s, esperava EM_ANDAMENTO", final.Status)
	}

	entradas, _ := m.Timeline.ListarPorProcesso(db, p.ID)
	esperado := []StatusProcesso{
		StatusRascunho,
		StatusPendente,
		StatusAguardandoDados,
		StatusAguardandoAnaliseDados,
		StatusEmAndamento,
	}
	if len(entradas) != len(esperado) {
		t.Fatalf("timeline tem %d entradas, esperava %d", len(entradas), len(esperado))
	}
	for i, e := range entradas {
		if e.NovoStatus != string(esperado[i]) {
			t.Errorf("entrada %d: novoStatus = %s, esperava %s", i, e.NovoStatus, esperado[i])
		}
	}

	cumprido, _ := m.Dados.BuscarPorID(db, item.ID)
	if !cumprido.Enviado || cumprido.DocumentoID == nil {
		t.Errorf("item deveria estar cumprido e vinculado ao documento")
	}
}

func TestRejeicaoLimpaAnexosDoClienteEReabreItens(t *testing.T) {
	m, db := maquinaDeTeste(t)
	p := novoProcesso(t, m)
	const advogadoID = 7

	if _, err := m.Reivindicar(p.ID, advogadoID, ""); err != nil {
		t.Fatalf("Reivindicar: %v", err)
	}
	if _, err := m.ConfirmarReivindicacao(p.ID, advogadoID); err != nil {
		t.Fatalf("ConfirmarReivindicacao: %v", err)
	}
	if _, err := m.SolicitarTransicao(p.ID, timeline.AutorAdvogado, StatusAguardandoDados, "", ""); err != nil {
		t.Fatalf("transição: %v", err)
	}

	item := dadorequisitado.DadoRequisitado{
		ProcessoID: p.ID, Tipo: dadorequisitado.TipoDocumento,
		Descricao: "Comprovante de residência", Responsavel: dadorequisitado.ResponsavelCliente,
	}
	if err := m.Dados.Criar(db, &item); err != nil {
		t.Fatal(err)
	}
	docCliente := documento.Documento{ProcessoID: p.ID, Nome: "conta.pdf", Chave: "c-1", URL: "s3://b/conta.pdf"}
	docAdvogado := documento.Documento{ProcessoID: p.ID, Nome: "peticao.pdf", Chave: "c-2", URL: "s3://b/peticao.pdf", EnviadoPorAdvogado: true}
	if err := m.Documentos.Criar(db, &docCliente); err != nil {
		t.Fatal(err)
	}
	if err := m.Documentos.Criar(db, &docAdvogado); err != nil {
		t.Fatal(err)
	}
	if err := m.Dados.Cumprir(db, item.ID, docCliente.ID, m.Now()); err != nil {
		t.Fatal(err)
	}
	if _, err := m.SolicitarTransicao(p.ID, timeline.AutorSistema, StatusAguardandoAnaliseDados, "", ""); err != nil {
		t.Fatal(err)
	}

	// Advogado rejeita a documentação.
	rejeitado, err := m.SolicitarTransicao(p.ID, timeline.AutorAdvogado, StatusAguardandoDados, "Documento ilegível", "")
	if err != nil {
		t.Fatalf("rejeição: %v", err)
	}
	if rejeitado.Status != StatusAguardandoDados {
		t.Fatalf("status = %s, esperava AGUARDANDO_DADOS", rejeitado.Status)
	}

	docs, _ := m.Documentos.ListarPorProcesso(db, p.ID)
	if len(docs) != 1 || !docs[0].EnviadoPorAdvogado {
		t.Errorf("só o anexo do advogado deveria sobrar, restaram %d", len(docs))
	}

	reaberto, _ := m.Dados.BuscarPorID(db, item.ID)
	if reaberto.Enviado || reaberto.DocumentoID != nil || reaberto.EnviadoEm != nil {
		t.Errorf("item deveria ter sido reaberto: %+v", reaberto)
	}
}

func TestReivindicarProcessoJaAtribuido(t *testing.T) {
	m, db := maquinaDeTeste(t)
	p := novoProcesso(t, m)

	advogadoID := uint(3)
	if err := db.Model(&Processo{}).Where("id = ?", p.ID).Update("advogado_id", advogadoID).Error; err != nil {
		t.Fatal(err)
	}

	_, err := m.Reivindicar(p.ID, 9, "")
	if !errors.Is(err, ErrJaAtribuido) {
		t.Fatalf("err = %v, esperava ErrJaAtribuido", err)
	}

	recarregado, _ := m.Processos.BuscarPorID(db, p.ID)
	if recarregado.Status != StatusRascunho || recarregado.PretendenteID != nil {
		t.Errorf("reivindicação rejeitada não deveria alterar o processo")
	}
}

func TestConfirmarReivindicacaoDeOutroPretendente(t *testing.T) {
	m, _ := maquinaDeTeste(t)
	p := novoProcesso(t, m)

	if _, err := m.Reivindicar(p.ID, 5, ""); err != nil {
		t.Fatal(err)
	}
	_, err := m.ConfirmarReivindicacao(p.ID, 6)
	if !errors.Is(err, ErrOutroPretendente) {
		t.Fatalf("err = %v, esperava ErrOutroPretendente", err)
	}
}

func TestAbandonarReivindicacaoVoltaParaRascunho(t *testing.T) {
	m, db := maquinaDeTeste(t)
	p := novoProcesso(t, m)

	if _, err := m.Reivindicar(p.ID, 5, ""); err != nil {
		t.Fatal(err)
	}
	abandonado, err := m.AbandonarReivindicacao(p.ID)
	if err != nil {
		t.Fatalf("AbandonarReivindicacao: %v", err)
	}
	if abandonado.Status != StatusRascunho {
		t.Errorf("status = %s, esperava RASCUNHO", abandonado.Status)
	}
	if abandonado.AdvogadoID != nil || abandonado.PretendenteID != nil {
		t.Errorf("abandono deveria limpar advogado e pretendente")
	}

	entradas, _ := m.Timeline.ListarPorProcesso(db, p.ID)
	ultima := entradas[len(entradas)-1]
	if ultima.Autor != timeline.AutorSistema || ultima.NovoStatus != string(StatusRascunho) {
		t.Errorf("última entrada deveria registrar a volta ao rascunho pelo sistema")
	}
}

func TestAbandonarSemReivindicacao(t *testing.T) {
	m, _ := maquinaDeTeste(t)
	p := novoProcesso(t, m)

	_, err := m.AbandonarReivindicacao(p.ID)
	if !errors.Is(err, ErrSemReivindicacao) {
		t.Fatalf("err = %v, esperava ErrSemReivindicacao", err)
	}
}

func TestMotivoRejeicaoGravado(t *testing.T) {
	m, db := maquinaDeTeste(t)
	p := novoProcesso(t, m)

	if _, err := m.SolicitarTransicao(p.ID, timeline.AutorAdvogado, StatusEmAnalise, "", ""); err != nil {
		t.Fatal(err)
	}
	rejeitado, err := m.SolicitarTransicao(p.ID, timeline.AutorAdvogado, StatusRejeitado, "Fora da área de atuação", "")
	if err != nil {
		t.Fatal(err)
	}
	if rejeitado.MotivoRejeicao != "Fora da área de atuação" {
		t.Errorf("motivoRejeicao = %q", rejeitado.MotivoRejeicao)
	}

	// E a contraparte foi notificada.
	var notificacoes []notificacao.Notificacao
	if err := db.Where("usuario_id = ?", p.ClienteID).Find(&notificacoes).Error; err != nil {
		t.Fatal(err)
	}
	if len(notificacoes) == 0 {
		t.Errorf("cliente deveria ter sido notificado da rejeição")
	}
}
