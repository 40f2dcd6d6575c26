// Package models defines the core domain models for the dog registry.
// It includes Dog, DogUpdate, Supplier and the enumerations used by them.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CurrentStatus represents where a dog is in its working life.
type CurrentStatus string

const (
	InTraining CurrentStatus = "IN_TRAINING"
	InService  CurrentStatus = "IN_SERVICE"
	Retired    CurrentStatus = "RETIRED"
	Left       CurrentStatus = "LEFT"
)

// Valid reports whether s is a known status.
func (s CurrentStatus) Valid() bool {
	switch s {
	case InTraining, InService, Retired, Left:
		return true
	}
	return false
}

// Gender of a dog.
type Gender string

const (
	Male   Gender = "MALE"
	Female Gender = "FEMALE"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// LeavingReason records why a dog left the service.
type LeavingReason string

const (
	Transferred    LeavingReason = "TRANSFERRED"
	RetiredPutDown LeavingReason = "RETIRED_PUT_DOWN"
	KIA            LeavingReason = "KIA"
	Rejected       LeavingReason = "REJECTED"
	RetiredRehomed LeavingReason = "RETIRED_REHOMED"
	Died           LeavingReason = "DIED"
)

// Valid reports whether r is a known leaving reason.
func (r LeavingReason) Valid() bool {
	switch r {
	case Transferred, RetiredPutDown, KIA, Rejected, RetiredRehomed, Died:
		return true
	}
	return false
}

// Supplier is the organisation a dog was acquired from.
// Suppliers are identified by their unique name.
type Supplier struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Dog defines the domain model for a dog record.
type Dog struct {
	// ID is the unique identifier for the dog.
	ID uuid.UUID `json:"id"`
	// Name is the dog's name.
	Name  string `json:"name"`
	Breed string `json:"breed"`
	// Supplier is set once at creation and never changes afterwards.
	Supplier      Supplier       `json:"supplier"`
	BadgeID       *string        `json:"badgeId,omitempty"`
	CurrentStatus CurrentStatus  `json:"currentStatus"`
	Gender        *Gender        `json:"gender,omitempty"`
	BirthDate     *time.Time     `json:"birthDate,omitempty"`
	DateAcquired  *time.Time     `json:"dateAcquired,omitempty"`
	LeavingDate   *time.Time     `json:"leavingDate,omitempty"`
	LeavingReason *LeavingReason `json:"leavingReason,omitempty"`
	// KennellingCharacteristics is a set; order carries no meaning.
	KennellingCharacteristics []string `json:"kennellingCharacteristics"`
	// Deleted marks a soft-deleted record. Deleted dogs stay readable by ID.
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DogUpdate represents the fields that can be updated for a Dog.
// Pointer types are used to allow partial updates; the supplier is
// deliberately absent.
type DogUpdate struct {
	// ID is the unique identifier for the dog to update.
	ID            uuid.UUID
	Name          *string
	Breed         *string
	BadgeID       *string
	Gender        *Gender
	BirthDate     *time.Time
	DateAcquired  *time.Time
	CurrentStatus *CurrentStatus
	LeavingDate   *time.Time
	LeavingReason *LeavingReason
	// KennellingCharacteristics replaces the whole set when non-nil.
	KennellingCharacteristics []string
}

// Apply copies every non-nil field of u onto d.
func (d *Dog) Apply(u *DogUpdate) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Breed != nil {
		d.Breed = *u.Breed
	}
	if u.BadgeID != nil {
		d.BadgeID = u.BadgeID
	}
	if u.Gender != nil {
		d.Gender = u.Gender
	}
	if u.BirthDate != nil {
		d.BirthDate = u.BirthDate
	}
	if u.DateAcquired != nil {
		d.DateAcquired = u.DateAcquired
	}
	if u.CurrentStatus != nil {
		d.CurrentStatus = *u.CurrentStatus
	}
	if u.LeavingDate != nil {
		d.LeavingDate = u.LeavingDate
	}
	if u.LeavingReason != nil {
		d.LeavingReason = u.LeavingReason
	}
	if u.KennellingCharacteristics != nil {
		d.KennellingCharacteristics = UniqueStrings(u.KennellingCharacteristics)
	}
}

// UniqueStrings returns values with duplicates removed, keeping first-seen order.
func UniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
