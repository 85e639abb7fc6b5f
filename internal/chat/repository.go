package chat

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, m *Mensagem) error
	ListarPorProcesso(db *gorm.DB, processoID uint) ([]Mensagem, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, m *Mensagem) error {
	return db.Create(m).Error
}

// Histórico em ordem cronológica.
func (r *repositoryImpl) ListarPorProcesso(db *gorm.DB, processoID uint) ([]Mensagem, error) {
	var msgs []Mensagem
	err := db.Where("processo_id = ?", processoID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}
