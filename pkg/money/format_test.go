package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ekspresi/itm-sub002/pkg/money"
)

func TestFormatter_RedondeaADosDecimales(t *testing.T) {
	f := money.NewFormatter("en", "$")

	assert.Equal(t, "$ 1,234.50", f.Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$ 449.98", f.Money(decimal.RequireFromString("449.98")))
	assert.Equal(t, "0.01", f.Amount(decimal.RequireFromString("0.005")))
	assert.Equal(t, "0.00", f.Amount(decimal.Zero))
}

func TestFormatter_SinSimbolo(t *testing.T) {
	f := money.NewFormatter("en", "  ")
	assert.Equal(t, "250.00", f.Money(decimal.NewFromInt(250)))
}

func TestFormatter_LocaleInvalidoUsaIngles(t *testing.T) {
	f := money.NewFormatter("!!", "")
	assert.Equal(t, "10,000", f.Quantity(10000))
}
