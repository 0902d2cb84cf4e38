package donation

import (
	"math"
	"net/http"
	"strings"

	"github.com/erikvaldez23/foundation-api/internal/common"
)

// Donations below one major unit are rejected before any provider call to
// avoid sub-unit charges.
const minMajorUnits = 1.0

// minorUnitsPerMajor is fixed at 100; every currency the site accepts is
// a two-decimal currency.
const minorUnitsPerMajor = 100

// maxMajorUnits bounds the amount so the minor-unit conversion stays within
// int64. Anything above it would overflow during rounding and reach the
// provider as garbage.
const maxMajorUnits = math.MaxInt64 / (minorUnitsPerMajor * 10)

// ErrInvalidAmount is returned when a donation amount is missing, not a
// finite number, or below the one-major-unit floor.
var ErrInvalidAmount = common.NewAppError("INVALID_AMOUNT", "Invalid amount", http.StatusBadRequest, nil)

// Request is the decoded body of the create-payment-intent endpoint.
// Amount is expressed in major currency units (e.g. dollars); a nil
// Amount means the field was absent.
type Request struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}

// MinorUnits validates the request and converts the amount to the
// provider's minor-unit integer representation, rounding to the nearest
// unit (19.995 -> 2000, 19.994 -> 1999).
func (r Request) MinorUnits() (int64, error) {
	if r.Amount == nil {
		return 0, ErrInvalidAmount
	}
	amount := *r.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < minMajorUnits || amount > maxMajorUnits {
		return 0, ErrInvalidAmount
	}
	// Round at a tenth of a minor unit first so decimal inputs like 19.995,
	// which land just below the halfway point in binary floating point,
	// still round up to the nearest whole unit.
	tenths := math.Round(amount * minorUnitsPerMajor * 10)
	return int64(math.Round(tenths / 10)), nil
}

// CurrencyOrDefault returns the requested currency lowercased, falling back
// to the provided default when absent.
func (r Request) CurrencyOrDefault(fallback string) string {
	currency := strings.ToLower(strings.TrimSpace(r.Currency))
	if currency == "" {
		return fallback
	}
	return currency
}
