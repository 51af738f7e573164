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
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
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
func IntBetween(min, max int) int64 {
	return int64(min) + Intn(max-min+1)
}

// FloatBetween generates a random decimal number between min and max rounded to 2 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*100) / 100
}

func fromAlphabet(a string, n int) string {
	var sb strings.Builder

	k := len(a)

	for i := 0; i < n; i++ {
		c := a[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random string of length n.
func String(n int) string {
	return fromAlphabet(alphabet, n)
}

// Holder generates a random account holder name.
func Holder() string {
	return strings.ToUpper(String(1)) + String(7)
}

// AccountNumber generates a random account number.
func AccountNumber() string {
	return "ACC" + fromAlphabet(digits, 10)
}

// MoneyAmountBetween generates a random amount of money between min and max rounded to 2 decimals.
func MoneyAmountBetween(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(FloatBetween(min, max))
}

// AccountType generates a random account type.
func AccountType() string {
	types := []string{"Savings", "Current"}
	return types[Intn(len(types))]
}
