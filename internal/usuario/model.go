package usuario

import (
	"gorm.io/gorm"
)

// Usuario cobre os dois papéis da plataforma: cliente e advogado.
type Usuario struct {
	gorm.Model
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	CPF       string `json:"cpf" gorm:"uniqueIndex"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Telefone  string `json:"telefone"`
	Foto      string `json:"foto"`
	Senha     string `json:"-"`

	IsAdvogado bool `gorm:"not null;default:false" json:"isAdvogado"`
	// Registro na ordem, obrigatório para advogados.
	OAB string `gorm:"size:20" json:"oab,omitempty"`

	// Dados gerais complementares do perfil
	DataNascimento string `gorm:"size:10" json:"dataNascimento,omitempty"`
	Endereco       string `json:"endereco,omitempty"`
	Cidade         string `json:"cidade,omitempty"`
	UF             string `gorm:"size:2" json:"uf,omitempty"`
}

// CamposPendentes lista o que falta para o perfil ser considerado
// completo, por papel.
func (u *Usuario) CamposPendentes() []string {
	var faltando []string
	if u.Nome == "" {
		faltando = append(faltando, "nome")
	}
	if u.CPF == "" {
		faltando = append(faltando, "cpf")
	}
	if u.Telefone == "" {
		faltando = append(faltando, "telefone")
	}
	if u.Endereco == "" {
		faltando = append(faltando, "endereco")
	}
	if u.IsAdvogado && u.OAB == "" {
		faltando = append(faltando, "oab")
	}
	return faltando
}

func (u *Usuario) PerfilCompleto() bool {
	return len(u.CamposPendentes()) == 0
}
