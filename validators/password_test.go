package validators

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid minimum length", "Aa1!aaaa", nil},
		{"valid maximum length", "Aa1!" + strings.Repeat("a", 60), nil},
		{"too short", "Aa1!aaa", ErrPasswordLength},
		{"too long", "Aa1!" + strings.Repeat("a", 61), ErrPasswordLength},
		{"empty", "", ErrPasswordLength},
		{"missing uppercase", "aa1!aaaa", ErrPasswordUppercase},
		{"missing lowercase", "AA1!AAAA", ErrPasswordLowercase},
		{"missing digit", "Aab!aaaa", ErrPasswordDigit},
		{"missing special", "Aa1aaaaa", ErrPasswordSpecial},
		{"space is not special", "Aa1 aaaa", ErrPasswordSpecial},
		{"quote counts as special", `Aa1"aaaa`, nil},
		{"length checked first", "a", ErrPasswordLength},
		{"uppercase reported before digit", "abcdefgh!", ErrPasswordUppercase},
		{"non-ascii letters do not count", "ÄA1!aaaa", nil},
		{"non-ascii uppercase alone is not enough", "Ää1!aaaa", ErrPasswordUppercase},
		{"length counts characters not bytes", "Aa1!éééé", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}

// ValidatePassword succeeds iff every condition holds
func TestValidatePasswordMatchesDefinition(t *testing.T) {
	alphabet := []rune("aZ9!é ")
	var walk func(prefix []rune, depth int)
	walk = func(prefix []rune, depth int) {
		for _, filler := range []int{0, 4} {
			candidate := string(prefix) + strings.Repeat("x", filler)
			assert.Equal(t, definition(candidate), ValidatePassword(candidate) == nil, "password %q", candidate)
		}
		if depth == 0 {
			return
		}
		for _, r := range alphabet {
			walk(append(prefix, r), depth-1)
		}
	}
	walk(nil, 4)
}

func definition(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 8 && n <= 64 &&
		strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") &&
		strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") &&
		strings.ContainsAny(s, "0123456789") &&
		strings.ContainsAny(s, PasswordSpecialCharacters)
}

func TestPasswordErrorMessages(t *testing.T) {
	assert.EqualError(t, ValidatePassword("short"), "Password must be between 8 and 64 characters long.")
	assert.EqualError(t, ValidatePassword("Aa1aaaaa"), "Password must contain at least one special character.")
}
