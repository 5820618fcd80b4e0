package service

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/domain"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 128
	maxUsernameLen = 8
	minNameLen     = 3
	minTitleLen    = 3
	minReviewLen   = 2
	maxReviewLen   = 50
	maxTagLen      = 50
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid("email", "must be a valid email address")
	}
	return nil
}

func validatePassword(pw string) error {
	n := utf8.RuneCountInString(pw)
	if n < minPasswordLen {
		return invalid("password", "must be at least %d characters", minPasswordLen)
	}
	if n > maxPasswordLen {
		return invalid("password", "must be at most %d characters", maxPasswordLen)
	}
	return nil
}

func validateLength(field, v string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(v)
	if n < minLen {
		return invalid(field, "must be at least %d characters", minLen)
	}
	if maxLen > 0 && n > maxLen {
		return invalid(field, "must be at most %d characters", maxLen)
	}
	return nil
}

func validateRating(field string, r int) error {
	if r < 1 || r > 5 {
		return invalid(field, "must be between 1 and 5")
	}
	return nil
}

// validateAccount trims the form in place and checks every field.
func validateAccount(username, email, first, last *string, password string) error {
	*username = strings.TrimSpace(*username)
	*email = normalizeEmail(*email)
	*first = strings.TrimSpace(*first)
	*last = strings.TrimSpace(*last)

	if err := validateLength("username", *username, 1, maxUsernameLen); err != nil {
		return err
	}
	if err := validateEmail(*email); err != nil {
		return err
	}
	if err := validateLength("first_name", *first, minNameLen, 0); err != nil {
		return err
	}
	if err := validateLength("last_name", *last, minNameLen, 0); err != nil {
		return err
	}
	return validatePassword(password)
}

func validateBook(in *domain.BookInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Publisher = strings.TrimSpace(in.Publisher)
	in.Language = strings.TrimSpace(in.Language)

	if err := validateLength("title", in.Title, minTitleLen, 0); err != nil {
		return err
	}
	if err := validateLength("author", in.Author, minTitleLen, 0); err != nil {
		return err
	}
	if err := validateDate("published_date", in.PublishedDate); err != nil {
		return err
	}
	if in.PageCount < 0 {
		return invalid("page_count", "must not be negative")
	}
	return validateRating("rating", in.Rating)
}

func validateBookUpdate(upd domain.BookUpdate) error {
	if upd.Title != nil {
		if err := validateLength("title", strings.TrimSpace(*upd.Title), minTitleLen, 0); err != nil {
			return err
		}
	}
	if upd.Author != nil {
		if err := validateLength("author", strings.TrimSpace(*upd.Author), minTitleLen, 0); err != nil {
			return err
		}
	}
	if upd.PublishedDate != nil {
		if err := validateDate("published_date", *upd.PublishedDate); err != nil {
			return err
		}
	}
	if upd.PageCount != nil && *upd.PageCount < 0 {
		return invalid("page_count", "must not be negative")
	}
	if upd.Rating != nil {
		return validateRating("rating", *upd.Rating)
	}
	return nil
}

func validateDate(field, v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, v); err != nil {
		return invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return nil
}

func normalizeTag(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if err := validateLength("name", name, 1, maxTagLen); err != nil {
		return "", err
	}
	return name, nil
}
