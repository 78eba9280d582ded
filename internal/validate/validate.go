// Package validate holds the stateless form validators used by the
// checkout and auth handlers. Everything here is a pure function: no
// internal state, no failure mode beyond false or an error list.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	postalRe = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z][ -]?\d[A-Za-z]\d$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	cardRe   = regexp.MustCompile(`^\d{16}$`)
	cvvRe    = regexp.MustCompile(`^\d{3,4}$`)

	jsProtoRe = regexp.MustCompile(`(?i)javascript:`)
	handlerRe = regexp.MustCompile(`(?i)on\w+=`)
)

// allowedCountries the storefront ships to.
var allowedCountries = []string{"Canada", "United States", "United Kingdom"}

// PostalCode reports whether s is a Canadian postal code (A1A 1A1).
func PostalCode(s string) bool {
	return postalRe.MatchString(s)
}

// Email is a deliberate has-@-and-dot check, not RFC 5322.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

func Phone(s string) bool {
	return phoneRe.MatchString(strings.ReplaceAll(s, " ", ""))
}

// CardNumber requires 16 digits passing the Luhn checksum.
func CardNumber(s string) bool {
	clean := strings.ReplaceAll(s, " ", "")
	if !cardRe.MatchString(clean) {
		return false
	}

	sum := 0
	double := false
	for i := len(clean) - 1; i >= 0; i-- {
		digit := int(clean[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

func CVV(s string) bool {
	return cvvRe.MatchString(s)
}

// Expiry checks an MM/YY card expiry against the current date.
func Expiry(s string) bool {
	return ExpiryValidAt(s, time.Now())
}

// ExpiryValidAt is Expiry with an injected clock: the expiry is valid when
// the month is in [1,12] and MM/YY is not strictly before now's month/year.
func ExpiryValidAt(s string, now time.Time) bool {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	month, errM := strconv.Atoi(parts[0])
	year, errY := strconv.Atoi(parts[1])
	if errM != nil || errY != nil {
		return false
	}

	if month < 1 || month > 12 {
		return false
	}

	nowYear := now.Year() % 100
	nowMonth := int(now.Month())
	if year < nowYear || (year == nowYear && month < nowMonth) {
		return false
	}

	return true
}

type Address struct {
	Street     string
	City       string
	Province   string
	PostalCode string
	Country    string
}

// AddressErrors returns every violated rule, not just the first.
// A nil result means the address passed.
func AddressErrors(a Address) []string {
	var errs []string

	if len(a.Street) < 5 {
		errs = append(errs, "street address must be at least 5 characters long")
	}
	if len(a.City) < 2 {
		errs = append(errs, "city must be at least 2 characters long")
	}
	if len(a.Province) < 2 {
		errs = append(errs, "province must be at least 2 characters long")
	}
	if !PostalCode(a.PostalCode) {
		errs = append(errs, "invalid postal code format")
	}

	valid := false
	for _, c := range allowedCountries {
		if a.Country == c {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, "please select a valid country")
	}

	return errs
}

// PaymentAmount bounds a charge to the storefront's sane range.
func PaymentAmount(amount float64) bool {
	return amount > 0 && amount <= 10000
}

// SanitizeInput strips the obvious XSS vectors from free-text fields.
func SanitizeInput(s string) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	s = jsProtoRe.ReplaceAllString(s, "")
	s = handlerRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
