package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders money values for a display locale. Formatting is a
// presentation stage only; calculation code never consumes its output.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a formatter for the given locale and currency symbol.
func NewFormatter(tag language.Tag, symbol string) Formatter {
	return Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// IDRFormatter formats rupiah amounts the way Indonesian booking pages
// show them, e.g. "Rp 1.165.500".
func IDRFormatter() Formatter {
	return NewFormatter(language.Indonesian, "Rp")
}

// Format renders the amount with locale digit grouping and the symbol prefix.
func (f Formatter) Format(m Money) string {
	if f.printer == nil {
		return IDRFormatter().Format(m)
	}
	return f.printer.Sprintf("%s %v", f.symbol, number.Decimal(m.Amount))
}
