package notificacao

import "time"

// Tipos de notificação
const (
	TipoAtualizacaoProcesso = "ATUALIZACAO_PROCESSO"
	TipoDocumento           = "DOCUMENTO"
	TipoSistema             = "SISTEMA"
)

// Notificacao é o aviso in-app gerado pelas transições de um processo.
type Notificacao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UsuarioID  uint   `gorm:"not null;index" json:"usuarioId"`
	ProcessoID *uint  `gorm:"index" json:"processoId,omitempty"`
	Tipo       string `gorm:"size:40;not null" json:"tipo"`
	Titulo     string `gorm:"size:255;not null" json:"titulo"`
	Mensagem   string `gorm:"type:text" json:"mensagem"`

	LidaEm *time.Time `json:"lidaEm,omitempty"`
}

func (n *Notificacao) Lida() bool {
	return n.LidaEm != nil
}
