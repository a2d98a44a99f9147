package utils

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const MinPasswordLength = 6

var (
	nameRegexp = regexp.MustCompile(`^[A-Z][a-zA-Z][^#&<>"~;$^%{}?]{0,20}$`)

	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

func IsValidName(name string) bool {
	return nameRegexp.MatchString(name)
}

func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// IsValidPhoneNumber expects international format; parsing without a default
// region rejects bare national numbers.
func IsValidPhoneNumber(phoneNumber string) bool {
	_, err := phonenumbers.Parse(phoneNumber, "")
	return err == nil
}

func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
