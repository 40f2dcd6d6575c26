package models

import (
	"math"
	"testing"
	"time"

	"github.com/gartstein/dogs/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestNewDogFilter(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   DogFilter
	}{
		{name: "no params", params: nil, want: DogFilter{}},
		{name: "unknown key", params: map[string]string{"colour": "black"}, want: DogFilter{}},
		{name: "name only", params: map[string]string{"name": "rock"}, want: DogFilter{Field: FilterName, Value: "rock"}},
		{name: "breed only", params: map[string]string{"breed": "Lab"}, want: DogFilter{Field: FilterBreed, Value: "Lab"}},
		{name: "supplier only", params: map[string]string{"supplier": "acme"}, want: DogFilter{Field: FilterSupplier, Value: "acme"}},
		{
			name:   "name beats breed and supplier",
			params: map[string]string{"supplier": "acme", "breed": "Lab", "name": "rock"},
			want:   DogFilter{Field: FilterName, Value: "rock"},
		},
		{
			name:   "breed beats supplier",
			params: map[string]string{"supplier": "acme", "breed": "Lab", "page": "0"},
			want:   DogFilter{Field: FilterBreed, Value: "Lab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewDogFilter(tt.params))
		})
	}
}

func TestDogApply(t *testing.T) {
	birth := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	dog := Dog{
		Name:                      "Rocky",
		Breed:                     "Labrador",
		Supplier:                  Supplier{Name: "SupplierA"},
		BadgeID:                   utils.Ptr("B-1"),
		CurrentStatus:             InService,
		BirthDate:                 &birth,
		KennellingCharacteristics: []string{"calm", "quiet"},
	}

	t.Run("only name changes", func(t *testing.T) {
		d := dog
		d.Apply(&DogUpdate{Name: utils.Ptr("Max")})

		assert.Equal(t, "Max", d.Name)
		assert.Equal(t, "Labrador", d.Breed)
		assert.Equal(t, "B-1", *d.BadgeID)
		assert.Equal(t, InService, d.CurrentStatus)
		assert.Equal(t, &birth, d.BirthDate)
		assert.Equal(t, []string{"calm", "quiet"}, d.KennellingCharacteristics)
	})

	t.Run("characteristics are replaced not merged", func(t *testing.T) {
		d := dog
		d.Apply(&DogUpdate{KennellingCharacteristics: []string{"noisy", "noisy"}})

		assert.Equal(t, []string{"noisy"}, d.KennellingCharacteristics)
	})

	t.Run("empty characteristics clear the set", func(t *testing.T) {
		d := dog
		d.Apply(&DogUpdate{KennellingCharacteristics: []string{}})

		assert.Empty(t, d.KennellingCharacteristics)
	})

	t.Run("enums and dates", func(t *testing.T) {
		d := dog
		left := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		d.Apply(&DogUpdate{
			CurrentStatus: utils.Ptr(Left),
			LeavingDate:   &left,
			LeavingReason: utils.Ptr(RetiredRehomed),
			Gender:        utils.Ptr(Female),
		})

		assert.Equal(t, Left, d.CurrentStatus)
		assert.Equal(t, &left, d.LeavingDate)
		assert.Equal(t, RetiredRehomed, *d.LeavingReason)
		assert.Equal(t, Female, *d.Gender)
		assert.Equal(t, "Rocky", d.Name)
	})
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, PageRequest{Page: 1, Size: 2}, 5)

	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(5), p.TotalElements)
	assert.Equal(t, 2, PageRequest{Page: 1, Size: 2}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt / 2, Size: 20}.Offset())
	assert.Equal(t, 0, PageRequest{Page: 3}.Offset())

	mapped := MapPage(p, func(i int) string { return string(rune('a' + i)) })
	assert.Equal(t, []string{"b", "c"}, mapped.Content)
	assert.Equal(t, 3, mapped.TotalPages)
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, InService.Valid())
	assert.False(t, CurrentStatus("SLEEPING").Valid())
	assert.True(t, Male.Valid())
	assert.False(t, Gender("").Valid())
	assert.True(t, KIA.Valid())
	assert.False(t, LeavingReason("BORED").Valid())
}
