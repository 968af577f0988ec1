package validators

import "unicode/utf8"

// MinPasswordLength is the minimum number of characters of a password.
const MinPasswordLength = 8

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// ValidatePassword applies the password policy. Rules are checked in a fixed
// order and the first failing rule is returned: length, then an uppercase
// letter (A-Z), then a digit (0-9), then the bcrypt input limit.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	if !hasUpper {
		return ErrPasswordNoUppercase
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
