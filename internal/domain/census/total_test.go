package census_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ekspresi/itm-sub002/internal/domain/census"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
)

func item(qty int64, price string) *entity.CensusLineItem {
	return &entity.CensusLineItem{Name: "x", QuantityFound: qty, PricePerUnit: decimal.RequireFromString(price)}
}

func TestTotal_SumaCantidadPorPrecio(t *testing.T) {
	items := []*entity.CensusLineItem{item(10, "25.00"), item(2, "99.99")}

	got := census.Total(items)

	assert.True(t, decimal.RequireFromString("449.98").Equal(got), "got %s", got)
}

func TestTotal_SinLineasEsCero(t *testing.T) {
	assert.True(t, census.Total(nil).IsZero())
}

// El total interno conserva precisión completa; solo la presentación redondea.
func TestTotal_NoRedondea(t *testing.T) {
	items := []*entity.CensusLineItem{item(3, "0.333"), item(1, "0.001")}

	got := census.Total(items)

	assert.Equal(t, "1", got.String())
}

func TestTotal_Idempotente(t *testing.T) {
	items := []*entity.CensusLineItem{item(7, "13.37"), item(0, "500")}
	assert.True(t, census.Total(items).Equal(census.Total(items)))
}

func TestSumTotals(t *testing.T) {
	cs := []*entity.Census{
		{TotalValue: decimal.RequireFromString("100.00")},
		nil,
		{TotalValue: decimal.RequireFromString("250.50")},
	}
	assert.Equal(t, "350.5", census.SumTotals(cs).String())
}
