// Package payments is the consumer-facing wrapper around the deployed
// stripe-payment function. Storefront code talks to the function
// endpoint through this client so the processor secret key never ships
// to a browser or mobile build; only the publishable key travels with
// the request.
package payments

import (
	"fmt"
	"strconv"
	"strings"
)

// SupportedPaymentMethods lists the payment-method identifiers the
// checkout accepts. The payment function requests automatic method
// selection with redirect-based methods disabled, so everything here
// completes without leaving the page.
var SupportedPaymentMethods = []string{
	"card",
	"apple_pay",
	"google_pay",
	"link",
}

// zeroDecimal holds ISO codes whose minor unit equals the major unit.
var zeroDecimal = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
}

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
}

// FormatAmount renders an amount in minor units as a display string,
// e.g. FormatAmount(1999, "usd") == "$19.99". Unknown currencies fall
// back to "19.99 XXX".
func FormatAmount(minorUnits int64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}

	negative := minorUnits < 0
	units := minorUnits
	if negative {
		units = -units
	}

	var value string
	if zeroDecimal[code] {
		value = strconv.FormatInt(units, 10)
	} else {
		value = fmt.Sprintf("%d.%02d", units/100, units%100)
	}

	// The sign precedes the symbol: -$19.99, not $-19.99.
	sign := ""
	if negative {
		sign = "-"
	}
	if symbol, ok := symbols[code]; ok {
		return sign + symbol + value
	}
	return sign + value + " " + code
}
