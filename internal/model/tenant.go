package model

import (
	"time"
)

// Tenant is a renter identified by its identity-provider subject
type Tenant struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	CognitoID   string     `json:"cognitoId" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name        string     `json:"name" gorm:"type:varchar(255);not null"`
	Email       string     `json:"email" gorm:"type:varchar(255);not null"`
	PhoneNumber string     `json:"phoneNumber" gorm:"type:varchar(50)"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Favorites   []Property `json:"favorites" gorm:"many2many:tenant_favorites;"`
}

// Favorite is the tenant_favorites join row. The composite primary key
// keeps a (tenant, property) pair unique.
type Favorite struct {
	TenantID   uint      `gorm:"primaryKey"`
	PropertyID uint      `gorm:"primaryKey"`
	CreatedAt  time.Time
}

// TableName pins the join table name shared with Tenant.Favorites
func (Favorite) TableName() string {
	return "tenant_favorites"
}

// Manager publishes and manages property listings
type Manager struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CognitoID   string    `json:"cognitoId" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Email       string    `json:"email" gorm:"type:varchar(255);not null"`
	PhoneNumber string    `json:"phoneNumber" gorm:"type:varchar(50)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
