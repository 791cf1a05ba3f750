package census_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/census"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

func TestValidateCensus(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	before := start.Add(-24 * time.Hour)

	cases := []struct {
		name  string
		c     entity.Census
		valid bool
	}{
		{"completo", entity.Census{Year: 2025, LocationID: "hall"}, true},
		{"sin año", entity.Census{LocationID: "hall"}, false},
		{"sin ubicación", entity.Census{Year: 2025, LocationID: "  "}, false},
		{"fin antes de inicio", entity.Census{Year: 2025, LocationID: "hall", StartDate: &start, EndDate: &before}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := census.ValidateCensus(&tc.c)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestValidateLineItem(t *testing.T) {
	ok := entity.CensusLineItem{Name: "Chair", QuantityFound: 0, PricePerUnit: decimal.Zero}
	assert.NoError(t, census.ValidateLineItem(&ok))

	noName := ok
	noName.Name = ""
	assert.ErrorIs(t, census.ValidateLineItem(&noName), domain.ErrInvalidInput)

	negQty := ok
	negQty.QuantityFound = -1
	assert.ErrorIs(t, census.ValidateLineItem(&negQty), domain.ErrInvalidInput)

	negPrice := ok
	negPrice.PricePerUnit = decimal.NewFromInt(-1)
	assert.ErrorIs(t, census.ValidateLineItem(&negPrice), domain.ErrInvalidInput)
}

func TestNormalizeCommittee(t *testing.T) {
	got := census.NormalizeCommittee([]string{" Ana ", "", "Piotr", "   "})
	assert.Equal(t, []string{"Ana", "Piotr"}, got)
}
