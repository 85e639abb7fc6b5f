package notificacao

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, n *Notificacao) error
	ListarPorUsuario(db *gorm.DB, usuarioID uint) ([]Notificacao, error)
	BuscarPorID(db *gorm.DB, id uint) (*Notificacao, error)
	MarcarLida(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, n *Notificacao) error {
	return db.Create(n).Error
}

func (r *repositoryImpl) ListarPorUsuario(db *gorm.DB, usuarioID uint) ([]Notificacao, error) {
	var list []Notificacao
	err := db.
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Notificacao, error) {
	var n Notificacao
	err := db.First(&n, id).Error
	return &n, err
}

func (r *repositoryImpl) MarcarLida(db *gorm.DB, id uint) error {
	now := time.Now()
	return db.Model(&Notificacao{}).Where("id = ?", id).Update("lida_em", &now).Error
}
