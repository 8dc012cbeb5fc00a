// Package validation holds the pure field validators that gate every mutating
// operation. All validators are total: any input string, including empty,
// yields a boolean and never a panic.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	nricPattern   = regexp.MustCompile(`(?i)^[ST]\d{7}[A-Z]$`)
	cardPattern   = regexp.MustCompile(`^\d{16}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/?(\d{2})$`)
	cvcPattern    = regexp.MustCompile(`^\d{3}$`)
	emailPattern  = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// NRIC reports whether s is a well-formed identity document: S or T, seven
// digits, one trailing letter. The whole match is case-insensitive.
// Format-only; the checksum letter is not verified.
func NRIC(s string) bool {
	return nricPattern.MatchString(s)
}

// CardNumber reports whether s is exactly 16 digits once whitespace is
// stripped. Entry forms group digits as "1234 5678 9012 3456".
func CardNumber(s string) bool {
	cleaned := strings.ReplaceAll(s, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "\t", "")
	return cardPattern.MatchString(cleaned)
}

// Expiry reports whether s is a valid MM/YY card expiry not in the past,
// judged against the wall clock.
func Expiry(s string) bool {
	return ExpiryAt(s, time.Now())
}

// ExpiryAt is Expiry with an explicit current time.
//
// The comparison uses two-digit years with no century disambiguation, matching
// how payment forms treat "YY". "01/99" therefore reads as the far-future
// 2099 and passes, and a year below the current one always reads as expired.
func ExpiryAt(s string, now time.Time) bool {
	m := expiryPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())

	if year < currentYear {
		return false
	}
	if year == currentYear && month < currentMonth {
		return false
	}
	return true
}

// SecurityCode reports whether s is exactly three digits.
func SecurityCode(s string) bool {
	return cvcPattern.MatchString(s)
}

// Email applies a deliberately permissive shape check: something before an @,
// and a dot somewhere in the domain part. Full RFC validation is out of scope.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// DonationAmount reports whether s parses as a number of at least one dollar.
func DonationAmount(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && v >= 1
}
