package db

import (
	dbmodels "github.com/gartstein/dogs/internal/dogs/db/models"
	"github.com/gartstein/dogs/internal/dogs/models"
	"github.com/gartstein/dogs/internal/pkg/utils"
	"github.com/google/uuid"
)

func toSupplierRow(s *models.Supplier) dbmodels.Supplier {
	return dbmodels.Supplier{
		ID:   s.ID,
		Name: s.Name,
	}
}

func toSupplierModel(row dbmodels.Supplier) *models.Supplier {
	return &models.Supplier{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

func toDogRow(d *models.Dog) dbmodels.Dog {
	return dbmodels.Dog{
		ID:            d.ID,
		Name:          d.Name,
		Breed:         d.Breed,
		SupplierID:    d.Supplier.ID,
		BadgeID:       d.BadgeID,
		CurrentStatus: string(d.CurrentStatus),
		Gender:        enumString(d.Gender),
		LeavingReason: enumString(d.LeavingReason),
		BirthDate:     d.BirthDate,
		DateAcquired:  d.DateAcquired,
		LeavingDate:   d.LeavingDate,
		Deleted:       d.Deleted,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func toDogModel(row dbmodels.Dog) *models.Dog {
	characteristics := make([]string, 0, len(row.KennellingCharacteristics))
	for _, c := range row.KennellingCharacteristics {
		characteristics = append(characteristics, c.Characteristic)
	}

	return &models.Dog{
		ID:                        row.ID,
		Name:                      row.Name,
		Breed:                     row.Breed,
		Supplier:                  *toSupplierModel(row.Supplier),
		BadgeID:                   row.BadgeID,
		CurrentStatus:             models.CurrentStatus(row.CurrentStatus),
		Gender:                    enumPtr[models.Gender](row.Gender),
		LeavingReason:             enumPtr[models.LeavingReason](row.LeavingReason),
		BirthDate:                 row.BirthDate,
		DateAcquired:              row.DateAcquired,
		LeavingDate:               row.LeavingDate,
		KennellingCharacteristics: characteristics,
		Deleted:                   row.Deleted,
		CreatedAt:                 row.CreatedAt,
		UpdatedAt:                 row.UpdatedAt,
	}
}

func toCharacteristicRows(dogID uuid.UUID, values []string) []dbmodels.KennelCharacteristic {
	unique := models.UniqueStrings(values)
	rows := make([]dbmodels.KennelCharacteristic, 0, len(unique))
	for _, v := range unique {
		rows = append(rows, dbmodels.KennelCharacteristic{DogID: dogID, Characteristic: v})
	}
	return rows
}

func enumString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	return utils.Ptr(string(*v))
}

func enumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	return utils.Ptr(T(*s))
}
