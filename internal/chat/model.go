package chat

import "time"

// Mensagem trocada entre cliente e advogado dentro de um processo.
type Mensagem struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	ProcessoID uint      `gorm:"not null;index" json:"processoId"`
	UsuarioID  uint      `gorm:"not null" json:"-"`
	SenderType string    `gorm:"size:20;not null" json:"senderType"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	SenderCliente  = "cliente"
	SenderAdvogado = "advogado"
)
