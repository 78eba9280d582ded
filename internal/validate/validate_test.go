package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostalCode(t *testing.T) {
	valid := []string{"B3J 1V9", "b3j 1v9", "B3J1V9", "B3J-1V9", "K1A 0B1"}
	for _, s := range valid {
		assert.True(t, PostalCode(s), "expected %q to be valid", s)
	}

	invalid := []string{"12345", "B3J 1V", "3BJ 1V9", "B3J  1V9", "", "B3J 1V9X"}
	for _, s := range invalid {
		assert.False(t, PostalCode(s), "expected %q to be invalid", s)
	}
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("fan@example.com"))
	assert.True(t, Email("a.b+c@sub.example.co"))

	assert.False(t, Email("no-at-sign"))
	assert.False(t, Email("missing@dot"))
	assert.False(t, Email("spaces in@example.com"))
	assert.False(t, Email(""))
}

func TestPhone(t *testing.T) {
	assert.True(t, Phone("+14165551234"))
	assert.True(t, Phone("4165551234"))
	assert.True(t, Phone("+44 20 7946 0958"))

	assert.False(t, Phone("0123456789")) // leading zero
	assert.False(t, Phone("+1-416-555-1234"))
	assert.False(t, Phone(""))
}

func TestCardNumber_Luhn(t *testing.T) {
	assert.True(t, CardNumber("4242424242424242"))
	assert.True(t, CardNumber("4242 4242 4242 4242"))
	assert.True(t, CardNumber("5555555555554444"))

	// One altered digit breaks the checksum
	assert.False(t, CardNumber("4242424242424243"))
	assert.False(t, CardNumber("1234567812345678"))
}

func TestCardNumber_Format(t *testing.T) {
	assert.False(t, CardNumber("424242424242424"))   // 15 digits
	assert.False(t, CardNumber("42424242424242424")) // 17 digits
	assert.False(t, CardNumber("4242-4242-4242-4242"))
	assert.False(t, CardNumber(""))
}

func TestCVV(t *testing.T) {
	assert.True(t, CVV("123"))
	assert.True(t, CVV("1234"))

	assert.False(t, CVV("12"))
	assert.False(t, CVV("12345"))
	assert.False(t, CVV("12a"))
	assert.False(t, CVV(""))
}

func TestExpiryValidAt(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, ExpiryValidAt("06/24", now), "current month is still valid")
	assert.True(t, ExpiryValidAt("07/24", now))
	assert.True(t, ExpiryValidAt("12/99", now))

	assert.False(t, ExpiryValidAt("05/24", now), "previous month has expired")
	assert.False(t, ExpiryValidAt("01/20", now))
	assert.False(t, ExpiryValidAt("13/25", now))
	assert.False(t, ExpiryValidAt("00/25", now))
	assert.False(t, ExpiryValidAt("0625", now))
	assert.False(t, ExpiryValidAt("aa/bb", now))
	assert.False(t, ExpiryValidAt("", now))
}

func TestAddressErrors_Valid(t *testing.T) {
	errs := AddressErrors(Address{
		Street:     "123 Main Street",
		City:       "Halifax",
		Province:   "NS",
		PostalCode: "B3J 1V9",
		Country:    "Canada",
	})
	assert.Nil(t, errs)
}

func TestAddressErrors_CollectsEveryViolation(t *testing.T) {
	errs := AddressErrors(Address{
		Street:     "abc",
		City:       "x",
		Province:   "y",
		PostalCode: "12345",
		Country:    "France",
	})
	assert.Len(t, errs, 5)
}

func TestAddressErrors_Country(t *testing.T) {
	base := Address{
		Street:     "123 Main Street",
		City:       "Halifax",
		Province:   "NS",
		PostalCode: "B3J 1V9",
	}

	for _, country := range []string{"Canada", "United States", "United Kingdom"} {
		a := base
		a.Country = country
		assert.Nil(t, AddressErrors(a), "expected %s to be allowed", country)
	}

	a := base
	a.Country = "canada" // case-sensitive
	assert.NotNil(t, AddressErrors(a))
}

func TestPaymentAmount(t *testing.T) {
	assert.True(t, PaymentAmount(0.01))
	assert.True(t, PaymentAmount(130.00))
	assert.True(t, PaymentAmount(10000))

	assert.False(t, PaymentAmount(0))
	assert.False(t, PaymentAmount(-5))
	assert.False(t, PaymentAmount(10000.01))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", SanitizeInput("<script>alert(1)</script>"))
	assert.Equal(t, "alert(1)", SanitizeInput("javascript:alert(1)"))
	assert.Equal(t, "img src=x", SanitizeInput(`img src=x onerror=`))
	assert.Equal(t, "plain text", SanitizeInput("  plain text  "))
}
