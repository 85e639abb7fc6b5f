package dadorequisitado

import "time"

// Tipo do item solicitado pelo advogado.
type Tipo string

const (
	TipoDocumento  Tipo = "DOCUMENTO"
	TipoInformacao Tipo = "INFORMACAO"
)

func (t Tipo) Valido() bool {
	return t == TipoDocumento || t == TipoInformacao
}

// Responsavel indica quem deve providenciar o item.
type Responsavel string

const (
	ResponsavelCliente  Responsavel = "CLIENTE"
	ResponsavelAdvogado Responsavel = "ADVOGADO"
	ResponsavelAmbos    Responsavel = "AMBOS"
)

func (r Responsavel) Valido() bool {
	return r == ResponsavelCliente || r == ResponsavelAdvogado || r == ResponsavelAmbos
}

// DadoRequisitado representa um documento ou informação que o advogado
// solicitou ao cliente em um processo.
type DadoRequisitado struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProcessoID uint      `gorm:"not null;index" json:"processoId"`
	CreatedAt  time.Time `json:"createdAt"`

	Tipo        Tipo        `gorm:"size:20;not null" json:"tipo"`
	Descricao   string      `gorm:"type:text;not null" json:"descricao"`
	Responsavel Responsavel `gorm:"size:20;not null;default:CLIENTE" json:"responsavel"`
	Prazo       *time.Time  `json:"prazo,omitempty"`
	Observacoes string      `gorm:"type:text" json:"observacoes,omitempty"`

	Enviado     bool       `gorm:"not null;default:false" json:"enviado"`
	EnviadoEm   *time.Time `json:"enviadoEm,omitempty"`
	DocumentoID *uint      `gorm:"index" json:"documentoId,omitempty"`
}
