// Package cpf validates Brazilian individual taxpayer numbers.
//
// A CPF has nine base digits followed by two check digits. Each check digit is
// a weighted sum mod 11 over the digits before it: weights run from len+1 down
// to 2, and a remainder below 2 maps to 0, otherwise to 11 minus the remainder.
package cpf

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of digits in a normalised CPF.
const Length = 11

var (
	// ErrInvalidFormat means the input does not contain exactly 11 digits.
	ErrInvalidFormat = errors.New("CPF deve conter exatamente 11 dígitos")
	// ErrInvalidChecksum means the digits are well-formed but the check digits do not match.
	ErrInvalidChecksum = errors.New("CPF inválido")
)

// Validate strips every non-digit from raw and checks the result.
// It returns the normalised 11-digit string.
func Validate(raw string) (string, error) {
	digits := Normalize(raw)
	if len(digits) != Length {
		return "", ErrInvalidFormat
	}
	if allSame(digits) {
		return "", ErrInvalidChecksum
	}
	if checkDigit(digits[:9]) != digits[9] || checkDigit(digits[:10]) != digits[10] {
		return "", ErrInvalidChecksum
	}
	return digits, nil
}

// IsValid reports whether raw is a valid CPF.
func IsValid(raw string) bool {
	_, err := Validate(raw)
	return err == nil
}

// Normalize drops every character that is not an ASCII digit.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CheckDigits completes nine base digits into a valid CPF.
func CheckDigits(first9 string) (string, error) {
	base := Normalize(first9)
	if len(base) != 9 || len(first9) != 9 {
		return "", fmt.Errorf("cpf: need 9 digits, got %q", first9)
	}
	withFirst := base + string(checkDigit(base))
	return withFirst + string(checkDigit(withFirst)), nil
}

// Format renders a valid CPF as 000.000.000-00.
func Format(raw string) (string, error) {
	digits, err := Validate(raw)
	if err != nil {
		return "", err
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11], nil
}

func checkDigit(digits string) byte {
	weight := len(digits) + 1
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
