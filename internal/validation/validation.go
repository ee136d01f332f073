// Package validation contains the pure format checks applied to registration
// input before it reaches the services.
package validation

import (
	"regexp"
	"time"
)

// BirthdayFormat is the wire format for birthdays ("YYYY-MM-DD").
const BirthdayFormat = "2006-01-02"

var emailRe = regexp.MustCompile(
	`^[A-Za-z0-9_]+([.-]?[A-Za-z0-9_]+)*@[A-Za-z0-9_]+([.-]?[A-Za-z0-9_]+)*(\.[A-Za-z0-9_]{2,3})+$`,
)

// ValidEmail reports whether email matches the accepted address shape.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidBirthday reports whether birthday parses as "YYYY-MM-DD".
func ValidBirthday(birthday string) bool {
	_, err := time.Parse(BirthdayFormat, birthday)
	return err == nil
}

// ParseBirthday converts a "YYYY-MM-DD" birthday into epoch seconds (UTC
// midnight), which is how profiles store it.
func ParseBirthday(birthday string) (int64, error) {
	t, err := time.Parse(BirthdayFormat, birthday)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
