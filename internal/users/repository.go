package users

import (
	"github.com/hfpartners/case-api/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Create(db *gorm.DB, u *models.User) error
	List(db *gorm.DB) ([]models.User, error)
	GetByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FirstUser(db *gorm.DB) (*models.User, error)
	Update(db *gorm.DB, u *models.User) error
	Delete(db *gorm.DB, id uint) error

	SaveInvitation(db *gorm.DB, inv *models.Invitation) error
	FindInvitationByEmail(db *gorm.DB, email string) (*models.Invitation, error)
	FindInvitationByToken(db *gorm.DB, token string) (*models.Invitation, error)
	DeleteInvitation(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Create(db *gorm.DB, u *models.User) error {
	return db.Create(u).Error
}

func (r *repositoryImpl) List(db *gorm.DB) ([]models.User, error) {
	var list []models.User
	err := db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) GetByID(db *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var u models.User
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FirstUser returns the oldest account. It backs the permissive fallback
// actor used when a request carries no identity.
func (r *repositoryImpl) FirstUser(db *gorm.DB) (*models.User, error) {
	var u models.User
	if err := db.Order("id ASC").First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) Update(db *gorm.DB, u *models.User) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&models.User{}, id).Error
}

func (r *repositoryImpl) SaveInvitation(db *gorm.DB, inv *models.Invitation) error {
	return db.Save(inv).Error
}

func (r *repositoryImpl) FindInvitationByEmail(db *gorm.DB, email string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := db.Where("email = ?", email).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repositoryImpl) FindInvitationByToken(db *gorm.DB, token string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := db.Where("token = ?", token).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repositoryImpl) DeleteInvitation(db *gorm.DB, id uint) error {
	return db.Delete(&models.Invitation{}, id).Error
}
