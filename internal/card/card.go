// Package card validates payment card details locally before any
// network call is made.  The same checks run again server-side before
// authorization; local validation only exists to fail fast and to
// attribute errors to individual form fields.
package card

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Details carries the card fields entered for one payment attempt.
// The struct is ephemeral: it is consumed by the validation and
// authorization calls and never persisted.  Only the last four digits
// survive, via Summary, for display purposes.
type Details struct {
	Number string `json:"card_number" validate:"required,luhn"`
	Expiry string `json:"card_expiry" validate:"required,cardexpiry"`
	CVC    string `json:"card_cvc" validate:"required,min=3,max=4,numeric"`
	Holder string `json:"card_holder" validate:"required,holdername"`
}

var holderRe = regexp.MustCompile(`^[A-Za-z ]+$`)

// NewValidator returns a validator instance with the card-specific
// rules (luhn, cardexpiry, holdername) registered.  Handlers reuse a
// single instance for request binding.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("luhn", func(fl validator.FieldLevel) bool {
		return Luhn(fl.Field().String())
	})
	_ = v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return expiryValid(fl.Field().String(), time.Now().UTC())
	})
	_ = v.RegisterValidation("holdername", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		return len(name) >= 2 && holderRe.MatchString(name)
	})
	return v
}

var defaultValidator = NewValidator()

// Validate runs all local checks and returns one message per failing
// field, keyed by the JSON field name.  A nil map means the details
// passed.  No network traffic is involved.
func (d Details) Validate() map[string]string {
	err := defaultValidator.Struct(d)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"card": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Number":
			out["card_number"] = "valid card number is required"
		case "Expiry":
			out["card_expiry"] = "valid expiry date is required (MM/YY)"
		case "CVC":
			out["card_cvc"] = "valid CVC is required"
		case "Holder":
			out["card_holder"] = "cardholder name is required"
		}
	}
	return out
}

// Summary returns the masked form of the card number retained for
// display, e.g. "**** **** **** 1111".  Everything but the last four
// digits is discarded.
func (d Details) Summary() string {
	digits := digitsOnly(d.Number)
	if len(digits) < 4 {
		return "****"
	}
	return fmt.Sprintf("**** **** **** %s", digits[len(digits)-4:])
}

// Luhn reports whether the given card number passes the mod-10
// checksum: walking from the rightmost digit, every second digit is
// doubled and digit-summed, and the total must divide by ten.
func Luhn(number string) bool {
	digits := digitsOnly(number)
	if len(digits) < 12 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// expiryValid parses an MM/YY expiry and reports whether it is not in
// the past at month granularity: a card expiring in the current month
// is still accepted.
func expiryValid(expiry string, now time.Time) bool {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 {
		return false
	}
	t, err := time.Parse("01/06", parts[0]+"/"+parts[1])
	if err != nil {
		return false
	}
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return !t.Before(thisMonth)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
