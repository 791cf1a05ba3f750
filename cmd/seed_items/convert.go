package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// namespace para derivar IDs estables: volver a correr el seed no duplica filas.
var seedNamespace = uuid.MustParse("6f1c2a4e-7d0b-4c61-9a55-2e8f3b1d9c07")

type itemRow struct {
	Name        string
	Unit        string
	Location    string
	Responsible string
	Value       decimal.Decimal
}

// readRows lee el CSV ya decodificado a UTF-8. Omite la cabecera y las filas sin nombre.
func readRows(r io.Reader) ([]itemRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []itemRow
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 {
			continue
		}
		rec = append(rec, make([]string, 5)...)
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		value, err := parseAmount(rec[4])
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		unit := strings.TrimSpace(rec[1])
		if unit == "" {
			unit = "pcs"
		}
		out = append(out, itemRow{
			Name:        name,
			Unit:        unit,
			Location:    strings.TrimSpace(rec[2]),
			Responsible: strings.TrimSpace(rec[3]),
			Value:       value,
		})
	}
	return out, nil
}

// parseAmount acepta "1 234,50", "1234.50" y vacío (cero).
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(" ", "", " ", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor inválido %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor negativo %q", s)
	}
	return d, nil
}

func stableID(kind, key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+strings.ToLower(key))).String()
}

// itemKeys identifica cada fila por nombre y ubicación, sin depender de su posición
// en el CSV. Las repeticiones exactas (varias sillas iguales en la misma sala) son
// ítems distintos: la primera usa la clave base y las siguientes agregan "#2", "#3"...
// Así reordenar el archivo o agregar una repetición no cambia los IDs ya sembrados.
func itemKeys(rows []itemRow) []string {
	seen := make(map[string]int, len(rows))
	keys := make([]string, len(rows))
	for i, r := range rows {
		base := strings.ToLower(r.Name) + "|" + strings.ToLower(r.Location)
		seen[base]++
		if n := seen[base]; n > 1 {
			keys[i] = fmt.Sprintf("%s#%d", base, n)
			continue
		}
		keys[i] = base
	}
	return keys
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// buildSQL genera los INSERT idempotentes de ubicaciones e ítems.
func buildSQL(rows []itemRow) string {
	locations := make(map[string]string) // nombre -> responsable
	for _, r := range rows {
		if r.Location == "" {
			continue
		}
		if _, ok := locations[r.Location]; !ok || locations[r.Location] == "" {
			locations[r.Location] = r.Responsible
		}
	}
	names := make([]string, 0, len(locations))
	for n := range locations {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("-- Generado por cmd/seed_items. No editar a mano.\n\n")
	if len(names) > 0 {
		b.WriteString("INSERT INTO locations (id, name, responsible_person) VALUES\n")
		for i, n := range names {
			fmt.Fprintf(&b, "    (%s, %s, %s)%s\n", quote(stableID("location", n)), quote(n), quote(locations[n]), listSep(i, len(names)))
		}
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n\n")
	}

	if len(rows) == 0 {
		return b.String()
	}
	keys := itemKeys(rows)
	b.WriteString("INSERT INTO master_items (id, name, unit, current_location_id, purchase_value) VALUES\n")
	for i, r := range rows {
		loc := "NULL"
		if r.Location != "" {
			loc = quote(stableID("location", r.Location))
		}
		fmt.Fprintf(&b, "    (%s, %s, %s, %s, %s)%s\n",
			quote(stableID("item", keys[i])), quote(r.Name), quote(r.Unit), loc, r.Value.String(), listSep(i, len(rows)))
	}
	b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
	return b.String()
}

func listSep(i, n int) string {
	if i == n-1 {
		return ""
	}
	return ","
}
