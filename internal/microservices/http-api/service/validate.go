package service

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxUsernameLen = 150
	maxEmailLen    = 254
	maxPersonName  = 150
	maxNameLen     = 256
	maxSlugLen     = 50
	minScore       = 1
	maxScore       = 10
)

var (
	// only the first character is constrained: a word character or . @ + -
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// now is swapped in tests that pin the current year.
var now = time.Now

func checkUsername(errs fieldErrors, username string) {
	switch {
	case username == "":
		errs.add("username", "this field is required")
	case utf8.RuneCountInString(username) > maxUsernameLen:
		errs.add("username", fmt.Sprintf("ensure this field has no more than %d characters", maxUsernameLen))
	case !usernamePattern.MatchString(username):
		errs.add("username", "enter a valid username: it must start with a letter, digit or @/./+/-/_")
	case username == "me":
		errs.add("username", ErrReservedUsername.Error())
	}
}

func checkEmail(errs fieldErrors, email string) {
	switch {
	case email == "":
		errs.add("email", "this field is required")
	case len(email) > maxEmailLen:
		errs.add("email", fmt.Sprintf("email length longer than %d chars", maxEmailLen))
	default:
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			errs.add("email", "enter a valid email address")
		}
	}
}

func checkMaxLen(errs fieldErrors, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		errs.add(field, fmt.Sprintf("ensure this field has no more than %d characters", max))
	}
}

func checkName(errs fieldErrors, name string) {
	if strings.TrimSpace(name) == "" {
		errs.add("name", "this field is required")
		return
	}
	checkMaxLen(errs, "name", name, maxNameLen)
}

func checkSlug(errs fieldErrors, slug string) {
	switch {
	case slug == "":
		errs.add("slug", "this field is required")
	case len(slug) > maxSlugLen:
		errs.add("slug", fmt.Sprintf("ensure this field has no more than %d characters", maxSlugLen))
	case !slugPattern.MatchString(slug):
		errs.add("slug", "enter a valid slug: letters, numbers, underscores or hyphens")
	}
}

func checkYear(errs fieldErrors, year int) {
	if year > now().Year() {
		errs.add("year", "the release year has not come yet")
	}
}

func checkScore(errs fieldErrors, score int) {
	if score < minScore || score > maxScore {
		errs.add("score", fmt.Sprintf("score must be between %d and %d", minScore, maxScore))
	}
}
