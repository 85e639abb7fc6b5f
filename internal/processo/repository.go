package processo

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, p *Processo) error
	BuscarPorID(db *gorm.DB, id uint) (*Processo, error)
	ListarPorCliente(db *gorm.DB, clienteID uint) ([]Processo, error)
	ListarPorAdvogado(db *gorm.DB, advogadoID uint) ([]Processo, error)
	ListarDisponiveis(db *gorm.DB) ([]Processo, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Processo) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Processo, error) {
	var p Processo
	err := db.
		Preload("Documentos").
		Preload("DadosRequisitados").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListarPorCliente(db *gorm.DB, clienteID uint) ([]Processo, error) {
	var list []Processo
	err := db.
		Where("cliente_id = ?", clienteID).
		Preload("DadosRequisitados").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorAdvogado(db *gorm.DB, advogadoID uint) ([]Processo, error) {
	var list []Processo
	err := db.
		Where("advogado_id = ? OR pretendente_id = ?", advogadoID, advogadoID).
		Preload("DadosRequisitados").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListarDisponiveis retorna rascunhos ainda sem advogado, que podem ser
// reivindicados.
func (r *repositoryImpl) ListarDisponiveis(db *gorm.DB) ([]Processo, error) {
	var list []Processo
	err := db.
		Where("status = ? AND advogado_id IS NULL", StatusRascunho).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}
