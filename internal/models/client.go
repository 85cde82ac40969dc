package models

import "gorm.io/gorm"

// Client is the person (or couple) a case is run for. Name2/Name3 hold
// additional applicant names.
type Client struct {
	gorm.Model
	Name    string `json:"name"`
	Name2   string `json:"name2,omitempty"`
	Name3   string `json:"name3,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`

	Cases []Case `gorm:"foreignKey:ClientID" json:"cases,omitempty"`
}
