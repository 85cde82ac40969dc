package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles and account states for advisors.
const (
	RoleAdmin   = "ADMIN"
	RoleAdvisor = "ADVISOR"

	StatusActive  = "ACTIVE"
	StatusInvited = "INVITED"
)

// User is an advisor account. The password hash is never serialized.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// Invitation is a pending advisor invite. The token is single use and
// expires 24 hours after it is issued.
type Invitation struct {
	gorm.Model
	Email   string    `json:"email" gorm:"unique"`
	Token   string    `json:"-" gorm:"unique"`
	Role    string    `json:"role"`
	Expires time.Time `json:"expires"`
}
