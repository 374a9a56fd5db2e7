// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	alphabet         = "abcdefghijklmnopqrstuvwxyz"
	referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	digits           = "0123456789"

	// ReferencePrefix starts every transfer reference number.
	ReferencePrefix = "TRF-"
	// AccountNumberPrefix starts every savings account number.
	AccountNumberPrefix = "SA"

	referenceLength     = 10
	accountNumberLength = 8
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// IntBetween generates a random integer between min and max.
func IntBetween(min, max int) int32 {
	return int32(Intn(max+min)) - int32(min)
}

// FloatBetween generates a random decimal number between min and max rounded to 4 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*10_000) / 10_000
}

func fromCharset(charset string, n int) string {
	var sb strings.Builder

	k := len(charset)

	for i := 0; i < n; i++ {
		c := charset[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random string of length n.
func String(n int) string {
	return fromCharset(alphabet, n)
}

// Owner generates a random owner name.
func Owner() string {
	return String(6)
}

// MoneyAmountBetween generates a random amount of money between min and max rounded to 4 decimals.
func MoneyAmountBetween(min, max float64) string {
	return decimal.NewFromFloat(FloatBetween(min, max)).String()
}

// Currency generates a random currency code.
func Currency() string {
	currencies := []string{"USD", "EUR", "GBP"}
	return currencies[Intn(len(currencies))]
}

// ReferenceNumber generates a caller-facing transfer reference number.
//
// Uniqueness is not guaranteed here; callers must collision-check against
// persisted transfers and regenerate.
func ReferenceNumber() string {
	return ReferencePrefix + fromCharset(referenceCharset, referenceLength)
}

// AccountNumber generates a savings account number.
//
// As with ReferenceNumber, uniqueness is the caller's concern.
func AccountNumber() string {
	return AccountNumberPrefix + fromCharset(digits, accountNumberLength)
}
