package timeline

import "gorm.io/gorm"

// Repository expõe apenas criação e leitura: o histórico não admite
// atualização nem remoção de entradas.
type Repository interface {
	Criar(db *gorm.DB, e *Entrada) error
	ListarPorProcesso(db *gorm.DB, processoID uint) ([]Entrada, error)
	UltimaDoProcesso(db *gorm.DB, processoID uint) (*Entrada, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, e *Entrada) error {
	return db.Create(e).Error
}

func (r *repositoryImpl) ListarPorProcesso(db *gorm.DB, processoID uint) ([]Entrada, error) {
	var entradas []Entrada
	err := db.
		Where("processo_id = ?", processoID).
		Order("created_at ASC, id ASC").
		Find(&entradas).Error
	return entradas, err
}

func (r *repositoryImpl) UltimaDoProcesso(db *gorm.DB, processoID uint) (*Entrada, error) {
	var e Entrada
	err := db.
		Where("processo_id = ?", processoID).
		Order("created_at DESC, id DESC").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}
