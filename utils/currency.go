package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	CurrencyLKR = "LKR"
	CurrencyUSD = "USD"
)

var currencySymbols = map[string]string{
	CurrencyLKR: "Rs. ",
	CurrencyUSD: "$",
}

var moneyPrinter = message.NewPrinter(language.English)

func IsSupportedCurrency(code string) bool {
	_, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// FormatMoney renders an amount for display, e.g. "Rs. 1,512.00" or
// "$1,512.00". It never converts between currencies.
func FormatMoney(amount float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}

	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + symbol + moneyPrinter.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}
