package domain

import (
	"encoding/json"

	"github.com/BlurryShady/gear-store-frontend/internal/money"
)

// Price is a normalized monetary amount. The remote catalog serializes
// prices either as JSON numbers or as currency-formatted strings such as
// "$19.99"; both decode into the canonical float64 form. Decoding is
// fail-soft: anything that cannot be normalized becomes 0.
type Price float64

// PriceOf normalizes a raw price value into a Price.
func PriceOf(raw any) Price {
	return Price(money.Normalize(raw))
}

// Amount returns the normalized amount.
func (p Price) Amount() float64 {
	return float64(p)
}

// Display renders the price for presentation, e.g. "$19.99".
func (p Price) Display() string {
	return money.Format(float64(p))
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = 0
		return nil
	}
	*p = PriceOf(raw)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}
