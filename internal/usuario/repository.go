package usuario

import (
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorEmailOuCPF(db *gorm.DB, valor string) (*Usuario, error)
	Salvar(db *gorm.DB, u *Usuario) error
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Usuario) error
	ClientesDoAdvogado(db *gorm.DB, advogadoID uint) ([]Usuario, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Busca primeiro por e-mail, depois por CPF, para evitar ambiguidade
func (r *repositoryImpl) BuscarPorEmailOuCPF(db *gorm.DB, valor string) (*Usuario, error) {
	var u Usuario

	if err := db.Where("email = ?", valor).First(&u).Error; err == nil {
		return &u, nil
	}
	if err := db.Where("cpf = ?", valor).First(&u).Error; err == nil {
		return &u, nil
	}

	return nil, gorm.ErrRecordNotFound
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Usuario) error {
	var existente Usuario
	if err := db.First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nome = novosDados.Nome
	existente.Sobrenome = novosDados.Sobrenome
	existente.CPF = novosDados.CPF
	existente.Telefone = novosDados.Telefone
	existente.Foto = novosDados.Foto
	existente.OAB = novosDados.OAB
	existente.DataNascimento = novosDados.DataNascimento
	existente.Endereco = novosDados.Endereco
	existente.Cidade = novosDados.Cidade
	existente.UF = novosDados.UF

	return db.Save(&existente).Error
}

// ClientesDoAdvogado lista os clientes com processo atribuído ao advogado.
func (r *repositoryImpl) ClientesDoAdvogado(db *gorm.DB, advogadoID uint) ([]Usuario, error) {
	var clientes []Usuario
	sub := db.Table("processos").Select("cliente_id").Where("advogado_id = ?", advogadoID)
	err := db.Where("id IN (?)", sub).Find(&clientes).Error
	return clientes, err
}
