package dadorequisitado

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrItemJaEnviado impede que um item cumprido receba um segundo envio
// sem antes ser reaberto.
var ErrItemJaEnviado = errors.New("dado requisitado já foi enviado")

type Repository interface {
	Criar(db *gorm.DB, d *DadoRequisitado) error
	BuscarPorID(db *gorm.DB, id uint) (*DadoRequisitado, error)
	ListarPorProcesso(db *gorm.DB, processoID uint) ([]DadoRequisitado, error)
	Cumprir(db *gorm.DB, id uint, documentoID uint, quando time.Time) error
	Reabrir(db *gorm.DB, id uint) error
	ReabrirEnviadosDoProcesso(db *gorm.DB, processoID uint) error
	TodosEnviados(db *gorm.DB, processoID uint) (bool, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, d *DadoRequisitado) error {
	return db.Create(d).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*DadoRequisitado, error) {
	var d DadoRequisitado
	err := db.First(&d, id).Error
	return &d, err
}

func (r *repositoryImpl) ListarPorProcesso(db *gorm.DB, processoID uint) ([]DadoRequisitado, error) {
	var itens []DadoRequisitado
	err := db.Where("processo_id = ?", processoID).Order("id ASC").Find(&itens).Error
	return itens, err
}

// Cumprir marca o item como enviado e vincula o documento. Itens de
// informação não têm anexo (documentoID zero). Item já enviado precisa
// ser reaberto antes de um novo envio.
func (r *repositoryImpl) Cumprir(db *gorm.DB, id uint, documentoID uint, quando time.Time) error {
	var d DadoRequisitado
	if err := db.First(&d, id).Error; err != nil {
		return err
	}
	if d.Enviado {
		return ErrItemJaEnviado
	}
	updates := map[string]interface{}{
		"enviado":    true,
		"enviado_em": &quando,
	}
	if documentoID != 0 {
		updates["documento_id"] = documentoID
	}
	return db.Model(&d).Updates(updates).Error
}

// Reabrir desfaz o cumprimento e desvincula o documento (rejeição do advogado).
func (r *repositoryImpl) Reabrir(db *gorm.DB, id uint) error {
	return db.Model(&DadoRequisitado{}).Where("id = ?", id).Updates(map[string]interface{}{
		"enviado":      false,
		"enviado_em":   nil,
		"documento_id": nil,
	}).Error
}

func (r *repositoryImpl) ReabrirEnviadosDoProcesso(db *gorm.DB, processoID uint) error {
	return db.Model(&DadoRequisitado{}).
		Where("processo_id = ? AND enviado = ?", processoID, true).
		Updates(map[string]interface{}{
			"enviado":      false,
			"enviado_em":   nil,
			"documento_id": nil,
		}).Error
}

func (r *repositoryImpl) TodosEnviados(db *gorm.DB, processoID uint) (bool, error) {
	var total, pendentes int64
	if err := db.Model(&DadoRequisitado{}).Where("processo_id = ?", processoID).Count(&total).Error; err != nil {
		return false, err
	}
	if total == 0 {
		return false, nil
	}
	if err := db.Model(&DadoRequisitado{}).
		Where("processo_id = ? AND enviado = ?", processoID, false).
		Count(&pendentes).Error; err != nil {
		return false, err
	}
	return pendentes == 0, nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&DadoRequisitado{}, id).Error
}
