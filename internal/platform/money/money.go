package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DefaultLocale = "en-IN"
	DefaultSymbol = "₹"
)

// Formatter renders whole-unit currency amounts with locale digit grouping.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

func NewFormatter(locale, symbol string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return Formatter{symbol: symbol, printer: message.NewPrinter(tag)}
}

func Default() Formatter {
	return NewFormatter(DefaultLocale, DefaultSymbol)
}

func (f Formatter) Symbol() string {
	if f.symbol == "" {
		return DefaultSymbol
	}
	return f.symbol
}

// Format rounds to zero decimals. Display only: the output is not meant to be parsed back.
func (f Formatter) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return f.Symbol() + "?"
	}
	p, symbol := f.printer, f.symbol
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	if symbol == "" {
		symbol = DefaultSymbol
	}
	rounded := int64(math.Round(amount))
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	return sign + symbol + p.Sprintf("%d", rounded)
}
