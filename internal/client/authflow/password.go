package authflow

import (
	"errors"
	"unicode"
)

const otpLength = 6

// minPasswordLen applies in strict (production) mode only.
const minPasswordLen = 8

// NormalizeOTP discards everything but digits and caps the result at the
// code length, so malformed input is filtered at entry rather than rejected
// at submit.
func NormalizeOTP(s string) string {
	out := make([]rune, 0, otpLength)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, r)
			if len(out) == otpLength {
				break
			}
		}
	}
	return string(out)
}

// IsPasswordValid reports whether pw satisfies the password policy. Strict
// mode (production builds) requires at least 8 characters with an uppercase
// letter, a lowercase letter, a digit, and a special character; lenient mode
// only requires a non-empty password.
//
// Pure function: no I/O, unit-testable in isolation.
func IsPasswordValid(pw string, strict bool) bool {
	if pw == "" {
		return false
	}
	if !strict {
		return true
	}
	if len(pw) < minPasswordLen {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}

// ValidatePasswordPair checks the new/confirm pair locally, before anything
// reaches the backend. The returned error text is the user-facing message.
func ValidatePasswordPair(newPassword, confirmPassword string, strict bool) error {
	if newPassword == "" || confirmPassword == "" {
		return errors.New("both password fields are required")
	}
	if newPassword != confirmPassword {
		return errors.New("passwords do not match")
	}
	if !IsPasswordValid(newPassword, strict) {
		return errors.New("password must be at least 8 characters and include uppercase, lowercase, a digit, and a special character")
	}
	return nil
}
