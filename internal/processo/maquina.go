package processo

import (
	"errors"
	"fmt"
	"time"

	"github.com/Avocus/api-juridico/internal/dadorequisitado"
	"github.com/Avocus/api-juridico/internal/documento"
	"github.com/Avocus/api-juridico/internal/notificacao"
	"github.com/Avocus/api-juridico/internal/timeline"
	"gorm.io/gorm"
)

var (
	ErrTransicaoInvalida  = errors.New("transição de status não permitida")
	ErrStatusInvalido     = errors.New("status desconhecido")
	ErrAutorInvalido      = errors.New("autor da transição inválido")
	ErrJaAtribuido        = errors.New("processo já possui advogado responsável")
	ErrJaReivindicado     = errors.New("processo já possui reivindicação pendente")
	ErrSemReivindicacao   = errors.New("processo não possui reivindicação pendente")
	ErrOutroPretendente   = errors.New("reivindicação pendente pertence a outro advogado")
)

// Maquina concentra toda mutação de ciclo de vida de um processo. Cada
// operação roda em uma transação: ou o snapshot inteiro avança (status,
// timeline, efeitos colaterais, notificação) ou nada é gravado.
type Maquina struct {
	DB           *gorm.DB
	Processos    Repository
	Timeline     timeline.Repository
	Dados        dadorequisitado.Repository
	Documentos   documento.Repository
	Notificacoes notificacao.Repository
	Now          func() time.Time
}

func NovaMaquina(db *gorm.DB) *Maquina {
	return &Maquina{
		DB:           db,
		Processos:    NewRepository(),
		Timeline:     timeline.NewRepository(),
		Dados:        dadorequisitado.NewRepository(),
		Documentos:   documento.NewRepository(),
		Notificacoes: notificacao.NewRepository(),
		Now:          time.Now,
	}
}

func (m *Maquina) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// CriarProcesso grava o processo em RASCUNHO junto com a entrada inicial
// da timeline (sem status anterior).
func (m *Maquina) CriarProcesso(p *Processo, autor timeline.Autor) (*Processo, error) {
	if !autor.Valido() {
		return nil, ErrAutorInvalido
	}

	tx := m.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	p.Status = StatusRascunho
	if err := tx.Create(p).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	entrada := timeline.Nova(p.ID, "", string(StatusRascunho), autor, "Processo criado", "")
	entrada.CreatedAt = m.now()
	if err := m.Timeline.Criar(tx, &entrada); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	p.Timeline = append(p.Timeline, entrada)
	return p, nil
}

// SolicitarTransicao valida o pedido contra a tabela de transições e, se
// aceito, aplica status, timeline, efeitos colaterais e notificação em
// uma única transação. Retorna o snapshot pós-commit.
func (m *Maquina) SolicitarTransicao(processoID uint, autor timeline.Autor, novo StatusProcesso, descricao, observacoes string) (*Processo, error) {
	if !autor.Valido() {
		return nil, ErrAutorInvalido
	}
	if !novo.Valido() {
		return nil, ErrStatusInvalido
	}

	tx := m.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var p Processo
	if err := tx.First(&p, processoID).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	anterior := p.Status
	if !TransicaoPermitida(autor, anterior, novo) {
		_ = tx.Rollback()
		return nil, ErrTransicaoInvalida
	}

	if descricao == "" {
		descricao = fmt.Sprintf("Status alterado de %s para %s", anterior.Label(), novo.Label())
	}
	entrada := timeline.Nova(p.ID, string(anterior), string(novo), autor, descricao, observacoes)
	entrada.CreatedAt = m.now()
	if err := m.Timeline.Criar(tx, &entrada); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	updates := map[string]interface{}{"status": novo}
	if novo == StatusRejeitado {
		updates["motivo_rejeicao"] = descricao
	}
	if err := tx.Model(&p).Updates(updates).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	// Rejeição da documentação: limpa anexos do cliente e reabre os itens
	// cumpridos naquela submissão.
	if anterior == StatusAguardandoAnaliseDados && novo == StatusAguardandoDados {
		if err := m.Documentos.DeletarDoClientePorProcesso(tx, p.ID); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		if err := m.Dados.ReabrirEnviadosDoProcesso(tx, p.ID); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}

	if err := m.notificarTransicao(tx, &p, autor, novo, descricao); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	// Alerta externo só após o commit, fora do caminho crítico.
	if novo == StatusConcluido || novo == StatusArquivado {
		go notificacao.EnviarWebhookAlerta(p.ID, string(novo))
	}

	return m.Processos.BuscarPorID(m.DB, p.ID)
}

// Reivindicar marca o processo como tentativamente reivindicado pelo
// advogado. Não atribui o responsável ainda.
func (m *Maquina) Reivindicar(processoID, advogadoID uint, descricao string) (*Processo, error) {
	tx := m.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var p Processo
	if err := tx.First(&p, processoID).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if p.AdvogadoID != nil {
		_ = tx.Rollback()
		return nil, ErrJaAtribuido
	}
	if p.Status == StatusPendente {
		_ = tx.Rollback()
		return nil, ErrJaReivindicado
	}

	if descricao == "" {
		descricao = "Processo reivindicado por um advogado"
	}
	entrada := timeline.Nova(p.ID, string(p.Status), string(StatusPendente), timeline.AutorAdvogado, descricao, "")
	entrada.CreatedAt = m.now()
	if err := m.Timeline.Criar(tx, &entrada); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Model(&p).Updates(map[string]interface{}{
		"status":         StatusPendente,
		"pretendente_id": advogadoID,
	}).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	n := notificacao.Notificacao{
		UsuarioID:  p.ClienteID,
		ProcessoID: &p.ID,
		Tipo:       notificacao.TipoAtualizacaoProcesso,
		Titulo:     "Processo reivindicado",
		Mensagem:   "Um advogado demonstrou interesse no seu processo.",
	}
	if err := m.Notificacoes.Criar(tx, &n); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return m.Processos.BuscarPorID(m.DB, p.ID)
}

// ConfirmarReivindicacao atribui o advogado ao processo. O status não
// muda aqui; o avanço (ACEITO, EM_ANDAMENTO...) é um pedido separado.
func (m *Maquina) ConfirmarReivindicacao(processoID, advogadoID uint) (*Processo, error) {
	tx := m.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var p Processo
	if err := tx.First(&p, processoID).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if p.Status != StatusPendente {
		_ = tx.Rollback()
		return nil, ErrSemReivindicacao
	}
	if p.PretendenteID != nil && *p.PretendenteID != advogadoID {
		_ = tx.Rollback()
		return nil, ErrOutroPretendente
	}

	if err := tx.Model(&p).Updates(map[string]interface{}{
		"advogado_id":    advogadoID,
		"pretendente_id": nil,
	}).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	n := notificacao.Notificacao{
		UsuarioID:  p.ClienteID,
		ProcessoID: &p.ID,
		Tipo:       notificacao.TipoAtualizacaoProcesso,
		Titulo:     "Advogado atribuído",
		Mensagem:   "Seu processo agora tem um advogado responsável.",
	}
	if err := m.Notificacoes.Criar(tx, &n); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return m.Processos.BuscarPorID(m.DB, p.ID)
}

// AbandonarReivindicacao devolve o processo a RASCUNHO e limpa a
// reivindicação pendente.
func (m *Maquina) AbandonarReivindicacao(processoID uint) (*Processo, error) {
	tx := m.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var p Processo
	if err := tx.First(&p, processoID).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if p.Status != StatusPendente {
		_ = tx.Rollback()
		return nil, ErrSemReivindicacao
	}

	entrada := timeline.Nova(p.ID, string(StatusPendente), string(StatusRascunho), timeline.AutorSistema,
		"Reivindicação abandonada; processo devolvido ao rascunho", "")
	entrada.CreatedAt = m.now()
	if err := m.Timeline.Criar(tx, &entrada); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Model(&p).Updates(map[string]interface{}{
		"status":         StatusRascunho,
		"advogado_id":    nil,
		"pretendente_id": nil,
	}).Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	n := notificacao.Notificacao{
		UsuarioID:  p.ClienteID,
		ProcessoID: &p.ID,
		Tipo:       notificacao.TipoAtualizacaoProcesso,
		Titulo:     "Reivindicação abandonada",
		Mensagem:   "O advogado desistiu do seu processo; ele voltou para a fila.",
	}
	if err := m.Notificacoes.Criar(tx, &n); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return m.Processos.BuscarPorID(m.DB, p.ID)
}

// notificarTransicao avisa a contraparte da mudança de status.
func (m *Maquina) notificarTransicao(tx *gorm.DB, p *Processo, autor timeline.Autor, novo StatusProcesso, descricao string) error {
	var destino uint
	switch autor {
	case timeline.AutorCliente:
		if p.AdvogadoID == nil {
			return nil
		}
		destino = *p.AdvogadoID
	default:
		destino = p.ClienteID
	}

	n := notificacao.Notificacao{
		UsuarioID:  destino,
		ProcessoID: &p.ID,
		Tipo:       notificacao.TipoAtualizacaoProcesso,
		Titulo:     fmt.Sprintf("Processo atualizado: %s", novo.Label()),
		Mensagem:   descricao,
	}
	return m.Notificacoes.Criar(tx, &n)
}
