package processo

import (
	"time"

	"github.com/Avocus/api-juridico/internal/dadorequisitado"
	"github.com/Avocus/api-juridico/internal/documento"
	"github.com/Avocus/api-juridico/internal/timeline"
)

// Processo representa um caso jurídico da plataforma. Nunca é removido
// fisicamente: o encerramento se dá pelo status ARQUIVADO.
type Processo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Imutáveis após a criação
	Titulo        string       `gorm:"size:255;not null" json:"titulo"`
	Tipo          TipoProcesso `gorm:"size:30;not null" json:"tipo"`
	Descricao     string       `gorm:"type:text" json:"descricao"`
	SituacaoAtual string       `gorm:"type:text" json:"situacaoAtual"`
	Objetivos     string       `gorm:"type:text" json:"objetivos"`
	Urgencia      Urgencia     `gorm:"size:10;not null;default:MEDIA" json:"urgencia"`

	Status         StatusProcesso `gorm:"size:40;not null;default:RASCUNHO;index" json:"status"`
	MotivoRejeicao string         `gorm:"type:text" json:"motivoRejeicao,omitempty"`

	ClienteID uint `gorm:"not null;index" json:"clienteId"`
	// Advogado responsável; nil até a confirmação da reivindicação.
	AdvogadoID *uint `gorm:"index" json:"advogadoId,omitempty"`
	// Advogado com reivindicação pendente (status PENDENTE).
	PretendenteID *uint `gorm:"index" json:"pretendenteId,omitempty"`

	Documentos        []documento.Documento             `gorm:"foreignKey:ProcessoID" json:"documentosAnexados"`
	DadosRequisitados []dadorequisitado.DadoRequisitado `gorm:"foreignKey:ProcessoID" json:"dadosRequisitados"`
	Timeline          []timeline.Entrada                `gorm:"foreignKey:ProcessoID" json:"timeline"`
}
