package validators

import "unicode/utf8"

// PasswordSpecialCharacters is the set a password must draw at least one character from
const PasswordSpecialCharacters = `!@#$%^&*(),.?":{}|<>`

const (
	PasswordMinLength = 8
	PasswordMaxLength = 64
)

var (
	ErrPasswordLength    = RuleError{"Password must be between 8 and 64 characters long."}
	ErrPasswordUppercase = RuleError{"Password must contain at least one uppercase letter."}
	ErrPasswordLowercase = RuleError{"Password must contain at least one lowercase letter."}
	ErrPasswordDigit     = RuleError{"Password must contain at least one digit."}
	ErrPasswordSpecial   = RuleError{"Password must contain at least one special character."}
)

// ValidatePassword checks password strength. Conditions are evaluated in the
// order length, uppercase, lowercase, digit, special and the first failure is
// returned.
func ValidatePassword(password string) error {
	if n := utf8.RuneCountInString(password); n < PasswordMinLength || n > PasswordMaxLength {
		return ErrPasswordLength
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case isSpecial(r):
			special = true
		}
	}

	switch {
	case !upper:
		return ErrPasswordUppercase
	case !lower:
		return ErrPasswordLowercase
	case !digit:
		return ErrPasswordDigit
	case !special:
		return ErrPasswordSpecial
	}
	return nil
}

func isSpecial(r rune) bool {
	for _, s := range PasswordSpecialCharacters {
		if r == s {
			return true
		}
	}
	return false
}
