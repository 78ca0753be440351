package model

import (
	"time"

	"github.com/Prashant-2024/Rental-App/internal/geo"
)

// PropertyType of a listing
type PropertyType string

const (
	PropertyTypeRooms     PropertyType = "Rooms"
	PropertyTypeTinyhouse PropertyType = "Tinyhouse"
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeVilla     PropertyType = "Villa"
	PropertyTypeTownhouse PropertyType = "Townhouse"
	PropertyTypeCottage   PropertyType = "Cottage"
)

// Property is a rentable listing owned by a manager
type Property struct {
	ID                uint         `json:"id" gorm:"primaryKey"`
	Name              string       `json:"name" gorm:"type:varchar(255);not null"`
	Description       string       `json:"description" gorm:"type:text"`
	PricePerMonth     float64      `json:"pricePerMonth" gorm:"not null"`
	SecurityDeposit   float64      `json:"securityDeposit"`
	ApplicationFee    float64      `json:"applicationFee"`
	IsPetsAllowed     bool         `json:"isPetsAllowed" gorm:"default:false"`
	IsParkingIncluded bool         `json:"isParkingIncluded" gorm:"default:false"`
	Beds              int          `json:"beds"`
	Baths             float64      `json:"baths"`
	SquareFeet        int          `json:"squareFeet"`
	PropertyType      PropertyType `json:"propertyType" gorm:"type:varchar(50)"`
	PostedDate        time.Time    `json:"postedDate" gorm:"autoCreateTime"`
	AverageRating     float64      `json:"averageRating" gorm:"default:0"`
	NumberOfReviews   int          `json:"numberOfReviews" gorm:"default:0"`
	LocationID        uint         `json:"locationId" gorm:"uniqueIndex;not null"`
	Location          *Location    `json:"location,omitempty"`
	ManagerCognitoID  string       `json:"managerCognitoId" gorm:"type:varchar(255);index;not null"`
}

// Location is the address and position of exactly one property.
// Coordinates is written through the ORM but only read back through
// the geometry path; Position carries that converted result.
type Location struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Address     string           `json:"address" gorm:"type:varchar(255)"`
	City        string           `json:"city" gorm:"type:varchar(100)"`
	State       string           `json:"state" gorm:"type:varchar(100)"`
	Country     string           `json:"country" gorm:"type:varchar(100)"`
	PostalCode  string           `json:"postalCode" gorm:"type:varchar(20)"`
	Coordinates Point            `json:"-" gorm:"not null;<-:create;->:false"`
	Position    *geo.Coordinates `json:"coordinates,omitempty" gorm:"-"`
}

// Lease links a tenant to the property it currently rents
type Lease struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Rent            float64   `json:"rent"`
	Deposit         float64   `json:"deposit"`
	PropertyID      uint      `json:"propertyId" gorm:"index;not null"`
	TenantCognitoID string    `json:"tenantCognitoId" gorm:"type:varchar(255);index;not null"`
}

// ApplicationStatus of a rental application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationDenied   ApplicationStatus = "Denied"
	ApplicationApproved ApplicationStatus = "Approved"
)

// Application is a tenant's request to rent a property
type Application struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	ApplicationDate time.Time         `json:"applicationDate" gorm:"autoCreateTime"`
	Status          ApplicationStatus `json:"status" gorm:"type:varchar(20);default:'Pending'"`
	PropertyID      uint              `json:"propertyId" gorm:"index;not null"`
	TenantCognitoID string            `json:"tenantCognitoId" gorm:"type:varchar(255);index;not null"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	PhoneNumber     string            `json:"phoneNumber"`
	Message         string            `json:"message" gorm:"type:text"`
	LeaseID         *uint             `json:"leaseId,omitempty" gorm:"uniqueIndex"`
}
