package service

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidPassword(password string) bool {
	return len(password) >= MinPasswordLen
}

// RequiredErrors returns "<field> is required" for every field whose value
// is empty or whitespace, preserving field order.
func RequiredErrors(fields map[string]string, order ...string) []string {
	var errs []string
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			errs = append(errs, name+" is required")
		}
	}
	return errs
}
