// Package models contains the persistence models for the registry,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a row of the suppliers table. The name is unique.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dog is a row of the dogs table. Deleted is a plain flag rather than
// gorm.DeletedAt so that soft-deleted rows stay visible to lookups by ID.
type Dog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"not null"`
	Breed         string     `gorm:"not null"`
	SupplierID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Supplier      Supplier   `gorm:"foreignKey:SupplierID"`
	BadgeID       *string    `gorm:"uniqueIndex"`
	CurrentStatus string     `gorm:"not null"`
	Gender        *string
	LeavingReason *string
	BirthDate     *time.Time `gorm:"type:date"`
	DateAcquired  *time.Time `gorm:"type:date"`
	LeavingDate   *time.Time `gorm:"type:date"`
	Deleted       bool       `gorm:"not null;default:false;index"`

	KennellingCharacteristics []KennelCharacteristic `gorm:"foreignKey:DogID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// KennelCharacteristic maps a dog to one characteristic string.
// The composite key keeps the set unique per dog.
type KennelCharacteristic struct {
	DogID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Characteristic string    `gorm:"primaryKey"`
}

func (KennelCharacteristic) TableName() string {
	return "dog_kennel_characteristics"
}
