package documento

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, d *Documento) error
	BuscarPorID(db *gorm.DB, id uint) (*Documento, error)
	ListarPorProcesso(db *gorm.DB, processoID uint) ([]Documento, error)
	Deletar(db *gorm.DB, id uint) error
	DeletarDoClientePorProcesso(db *gorm.DB, processoID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, d *Documento) error {
	return db.Create(d).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Documento, error) {
	var d Documento
	err := db.First(&d, id).Error
	return &d, err
}

func (r *repositoryImpl) ListarPorProcesso(db *gorm.DB, processoID uint) ([]Documento, error) {
	var docs []Documento
	err := db.Where("processo_id = ?", processoID).Order("id ASC").Find(&docs).Error
	return docs, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Documento{}, id).Error
}

// DeletarDoClientePorProcesso remove os anexos enviados pelo cliente,
// usado quando o advogado rejeita a documentação submetida.
func (r *repositoryImpl) DeletarDoClientePorProcesso(db *gorm.DB, processoID uint) error {
	return db.
		Where("processo_id = ? AND enviado_por_advogado = ?", processoID, false).
		Delete(&Documento{}).Error
}
