package activity

import (
	"github.com/hfpartners/case-api/internal/models"
	"gorm.io/gorm"
)

// Repository is append-only: activities are never updated or deleted, they
// disappear only when their case does.
type Repository interface {
	Create(db *gorm.DB, a *models.Activity) error
	GetByID(db *gorm.DB, id uint) (*models.Activity, error)
	ListByCase(db *gorm.DB, caseID uint) ([]models.Activity, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, a *models.Activity) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*models.Activity, error) {
	var a models.Activity
	err := db.Preload("User").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) ListByCase(db *gorm.DB, caseID uint) ([]models.Activity, error) {
	var list []models.Activity
	err := db.
		Where("case_id = ?", caseID).
		Preload("User").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
