package timeline

import "time"

// Autor identifica quem originou uma transição de status.
type Autor string

const (
	AutorCliente  Autor = "cliente"
	AutorAdvogado Autor = "advogado"
	AutorSistema  Autor = "sistema"
)

func (a Autor) Valido() bool {
	return a == AutorCliente || a == AutorAdvogado || a == AutorSistema
}

// Entrada registra uma transição de status de um processo.
// O histórico é append-only: entradas nunca são alteradas nem removidas.
type Entrada struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProcessoID uint      `gorm:"not null;index" json:"processoId"`
	CreatedAt  time.Time `json:"data"`

	// Nil na entrada de criação do processo.
	StatusAnterior *string `gorm:"size:40" json:"statusAnterior,omitempty"`
	NovoStatus     string  `gorm:"size:40;not null" json:"novoStatus"`
	Descricao      string  `gorm:"type:text" json:"descricao"`
	Autor          Autor   `gorm:"size:20;not null" json:"autor"`
	Observacoes    string  `gorm:"type:text" json:"observacoes,omitempty"`
}

// Nova monta uma entrada de transição. statusAnterior vazio indica criação.
func Nova(processoID uint, statusAnterior, novoStatus string, autor Autor, descricao, observacoes string) Entrada {
	e := Entrada{
		ProcessoID:  processoID,
		NovoStatus:  novoStatus,
		Descricao:   descricao,
		Autor:       autor,
		Observacoes: observacoes,
	}
	if statusAnterior != "" {
		anterior := statusAnterior
		e.StatusAnterior = &anterior
	}
	return e
}
