// Package money formatea montos decimales según el locale configurado.
// Los cálculos se hacen siempre con decimal.Decimal a precisión completa;
// el redondeo a 2 decimales ocurre solo aquí, al presentar.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter convierte montos y cantidades a texto localizado.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter construye un formatter para el locale BCP 47 dado (ej. "es-CO").
// Un locale inválido cae a inglés.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: strings.TrimSpace(symbol)}
}

// Amount devuelve el monto con separadores del locale y exactamente 2 decimales, sin símbolo.
func (f *Formatter) Amount(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// Money devuelve el monto con el símbolo de moneda: "$ 1,234.50".
func (f *Formatter) Money(d decimal.Decimal) string {
	if f.symbol == "" {
		return f.Amount(d)
	}
	return f.symbol + " " + f.Amount(d)
}

// Quantity formatea una cantidad entera con separador de miles.
func (f *Formatter) Quantity(q int64) string {
	return f.printer.Sprint(number.Decimal(q))
}
