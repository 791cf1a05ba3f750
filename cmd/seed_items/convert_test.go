package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestReadRows_DecodificaWindows1250(t *testing.T) {
	src := "nombre;unidad;ubicacion;responsable;valor\n" +
		"Krzesło;szt;Sala główna;Łukasz;1 234,50\n" +
		";;;;\n" +
		"Mesa;;Sala główna;;99.99\n"
	encoded, err := charmap.Windows1250.NewEncoder().String(src)
	require.NoError(t, err)

	rows, err := readRows(transform.NewReader(bytes.NewReader([]byte(encoded)), charmap.Windows1250.NewDecoder()))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Krzesło", rows[0].Name)
	assert.Equal(t, "Sala główna", rows[0].Location)
	assert.Equal(t, "Łukasz", rows[0].Responsible)
	assert.Equal(t, "1234.5", rows[0].Value.String())
	assert.Equal(t, "pcs", rows[1].Unit, "unidad vacía cae a pcs")
}

func TestParseAmount(t *testing.T) {
	d, err := parseAmount("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = parseAmount("1.234,56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", d.String())

	_, err = parseAmount("abc")
	assert.Error(t, err)

	_, err = parseAmount("-5")
	assert.Error(t, err)
}

func TestBuildSQL_IDsEstablesYEscapado(t *testing.T) {
	rows := []itemRow{{Name: "O'Brien chair", Unit: "pcs", Location: "Hall", Value: mustDec("10")}}

	first := buildSQL(rows)
	second := buildSQL(rows)

	assert.Equal(t, first, second, "el seed debe ser determinista")
	assert.Contains(t, first, "'O''Brien chair'")
	assert.Contains(t, first, "INSERT INTO locations")
	assert.Equal(t, 2, strings.Count(first, "ON CONFLICT (id) DO NOTHING"))
}

func TestBuildSQL_SinUbicaciones(t *testing.T) {
	out := buildSQL([]itemRow{{Name: "Suelto", Unit: "pcs", Value: mustDec("1")}})

	assert.NotContains(t, out, "INSERT INTO locations")
	assert.Contains(t, out, "NULL")
}

func TestItemKeys_NoDependenDelOrden(t *testing.T) {
	chair := itemRow{Name: "Chair", Location: "Hall"}
	piano := itemRow{Name: "Piano", Location: "Hall"}
	shelf := itemRow{Name: "Shelf", Location: "Storage"}

	first := itemKeys([]itemRow{chair, piano, shelf})
	reordered := itemKeys([]itemRow{shelf, chair, piano})

	assert.Equal(t, first[0], reordered[1])
	assert.Equal(t, first[1], reordered[2])
	assert.Equal(t, first[2], reordered[0])
}

func TestItemKeys_RepeticionesSonItemsDistintos(t *testing.T) {
	chair := itemRow{Name: "Chair", Location: "Hall"}

	single := itemKeys([]itemRow{chair})
	keys := itemKeys([]itemRow{chair, {Name: "Piano", Location: "Hall"}, {Name: "CHAIR", Location: "hall"}})

	assert.Equal(t, single[0], keys[0], "agregar una repetición no cambia el ID existente")
	assert.NotEqual(t, keys[0], keys[2])
	assert.Equal(t, "chair|hall#2", keys[2])
}

func TestBuildSQL_ReordenarNoCambiaIDs(t *testing.T) {
	a := itemRow{Name: "Chair", Unit: "pcs", Location: "Hall", Value: mustDec("10")}
	b := itemRow{Name: "Piano", Unit: "pcs", Location: "Hall", Value: mustDec("5000")}

	itemLine := func(sql, name string) string {
		for _, l := range strings.Split(sql, "\n") {
			if strings.Contains(l, "'"+name+"'") && strings.Contains(l, "'pcs'") {
				return strings.TrimSuffix(strings.TrimSpace(l), ",")
			}
		}
		return ""
	}
	first := buildSQL([]itemRow{a, b})
	second := buildSQL([]itemRow{b, a})
	for _, name := range []string{"Chair", "Piano"} {
		require.NotEmpty(t, itemLine(first, name))
		assert.Equal(t, itemLine(first, name), itemLine(second, name))
	}
}

func mustDec(s string) decimal.Decimal {
	d, _ := parseAmount(s)
	return d
}
