// Package validate holds the facade's field validation. Shape checks live
// here; referential existence is re-verified by the storage tier.
package validate

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/filmorate/filmorate-backend/internal/models"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MinInt(field string, v, min int64) *ErrField {
	if v < min {
		return &ErrField{Field: field, Msg: "must be >= " + strconv.FormatInt(min, 10)}
	}
	return nil
}

func MaxRunes(field, value string, max int) *ErrField {
	if utf8.RuneCountInString(value) > max {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(max) + " characters"}
	}
	return nil
}

func hasWhitespace(s string) bool {
	return strings.IndexFunc(s, unicode.IsSpace) >= 0
}

func appendErr(errs Errs, e *ErrField) Errs {
	if e != nil {
		errs = append(errs, *e)
	}
	return errs
}

// User checks the field constraints of a user record. Returns nil when valid.
func User(u models.User) Errs {
	var errs Errs
	errs = appendErr(errs, Required("email", u.Email))
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		errs = append(errs, ErrField{Field: "email", Msg: "must contain @"})
	}
	errs = appendErr(errs, Required("login", u.Login))
	if u.Login != "" && hasWhitespace(u.Login) {
		errs = append(errs, ErrField{Field: "login", Msg: "must not contain whitespace"})
	}
	if !u.Birthday.IsZero() && u.Birthday.After(time.Now()) {
		errs = append(errs, ErrField{Field: "birthday", Msg: "must not be in the future"})
	}
	return errs
}

// Film checks the field constraints of a film record. Returns nil when valid.
func Film(f models.Film) Errs {
	var errs Errs
	errs = appendErr(errs, Required("name", f.Name))
	errs = appendErr(errs, MaxRunes("description", f.Description, 200))
	if f.ReleaseDate.IsZero() {
		errs = append(errs, ErrField{Field: "releaseDate", Msg: "required"})
	} else if f.ReleaseDate.Before(models.EarliestReleaseDate.Time) {
		errs = append(errs, ErrField{Field: "releaseDate", Msg: "must not be before 1895-12-28"})
	}
	if f.Duration <= 0 {
		errs = append(errs, ErrField{Field: "duration", Msg: "must be positive"})
	}
	return errs
}
