package models

// ExpiryValue is the payoff of an option exercised at the given underlying price.
func ExpiryValue(kind OptionKind, strike float64, price float64) float64 {
	expiryValue := 0.
	if kind == Call {
		expiryValue = price - strike
	} else if kind == Put {
		expiryValue = strike - price
	}
	if expiryValue < 0 {
		expiryValue = 0
	}
	return expiryValue
}

// DigitalValue pays one unit when the underlying finishes above the strike.
func DigitalValue(strike float64, price float64) float64 {
	if price > strike {
		return 1
	}
	return 0
}
