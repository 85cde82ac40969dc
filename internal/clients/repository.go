package clients

import (
	"github.com/hfpartners/case-api/internal/models"
	"gorm.io/gorm"
)

// Patch carries a partial client update. Nil means "not supplied": only
// supplied fields are written, the rest keep their stored values.
type Patch struct {
	Name    *string
	Name2   *string
	Name3   *string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

type Repository interface {
	Create(db *gorm.DB, c *models.Client) error
	List(db *gorm.DB) ([]models.Client, error)
	GetByID(db *gorm.DB, id uint) (*models.Client, error)
	Update(db *gorm.DB, id uint, p Patch) (*models.Client, error)
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, c *models.Client) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) List(db *gorm.DB) ([]models.Client, error) {
	var list []models.Client
	err := db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*models.Client, error) {
	var c models.Client
	err := db.
		Preload("Cases", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("updated_at DESC")
		}).
		First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Update(db *gorm.DB, id uint, p Patch) (*models.Client, error) {
	var existing models.Client
	if err := db.First(&existing, id).Error; err != nil {
		return nil, err
	}

	if p.Name != nil {
		existing.Name = *p.Name
	}
	if p.Name2 != nil {
		existing.Name2 = *p.Name2
	}
	if p.Name3 != nil {
		existing.Name3 = *p.Name3
	}
	if p.Email != nil {
		existing.Email = *p.Email
	}
	if p.Phone != nil {
		existing.Phone = *p.Phone
	}
	if p.Address != nil {
		existing.Address = *p.Address
	}
	if p.Notes != nil {
		existing.Notes = *p.Notes
	}

	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&models.Client{}, id).Error
}
