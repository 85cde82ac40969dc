package cases

import (
	"errors"

	"github.com/hfpartners/case-api/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, c *models.Case) error
	List(db *gorm.DB) ([]models.Case, error)
	GetByID(db *gorm.DB, id uint) (*models.Case, error)
	Save(db *gorm.DB, c *models.Case) error
	Delete(db *gorm.DB, id uint) error
	LatestCaseNumber(db *gorm.DB) (string, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *models.Case) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) List(db *gorm.DB) ([]models.Case, error) {
	var list []models.Case
	err := db.
		Preload("Client").
		Preload("Advisor").
		Order("updated_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*models.Case, error) {
	var c models.Case
	err := db.
		Preload("Client").
		Preload("Advisor").
		Preload("Activities", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Preload("Activities.User").
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Save(db *gorm.DB, c *models.Case) error {
	return db.Save(c).Error
}

// Delete removes the case and, via the FK cascade, its activities. Hard
// delete: cases have no soft-delete column.
func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&models.Case{}, id).Error
}

// LatestCaseNumber returns the most recently assigned case number, or ""
// when none exists yet.
func (r *repositoryImpl) LatestCaseNumber(db *gorm.DB) (string, error) {
	var c models.Case
	err := db.
		Where("case_number IS NOT NULL").
		Order("id DESC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if c.CaseNumber == nil {
		return "", nil
	}
	return *c.CaseNumber, nil
}
