package documento

import "time"

// Documento guarda os metadados de um arquivo anexado a um processo.
// Imutável depois de salvo, exceto pela remoção (advogado a qualquer
// momento; cliente apenas enquanto o status do processo permitir).
type Documento struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProcessoID uint      `gorm:"not null;index" json:"processoId"`
	CreatedAt  time.Time `json:"enviadoEm"`

	Nome     string `gorm:"size:255;not null" json:"nome"`
	MimeType string `gorm:"size:100" json:"mimeType"`
	Tamanho  int64  `json:"tamanho"`

	// Chave de armazenamento (UUID) e URL de acesso ao conteúdo.
	Chave string `gorm:"size:64;uniqueIndex" json:"chave"`
	URL   string `gorm:"not null" json:"url"`

	EnviadoPorAdvogado bool `gorm:"not null;default:false" json:"enviadoPorAdvogado"`
}
