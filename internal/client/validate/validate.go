// Package validate checks the sign-in and sign-up forms before anything is
// sent over the network. A form either passes (nil) or fails with Errors
// describing each offending field.
package validate

import (
	"errors"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/dmitrijs2005/mediacatalog/internal/client/models"
)

const (
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldRepeatPassword = "repeatPassword"
)

const (
	MsgRequired        = "Can’t be empty"
	MsgInvalidEmail    = "Invalid email"
	MsgInvalidPassword = "Invalid Password"
	MsgWeakPassword    = "It's too weak"
	MsgMismatch        = "Don't match"
)

var ErrInvalid = errors.New("invalid form")

var (
	emailPattern = regexp2.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`, regexp2.None)
	// at least one letter and one digit, five or more characters from the allowed set
	passwordPattern = regexp2.MustCompile(`^(?=.*[A-Za-z])(?=.*\d)[A-Za-z\d.,!@#$%^&*()_+{}\[\]:;<>,.?/~\\-]{5,}$`, regexp2.None)
)

// Errors maps a form field to the message shown next to it.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error {
	return ErrInvalid
}

func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return match(emailPattern, s)
}

// Password reports whether s satisfies the password rule.
func Password(s string) bool {
	return match(passwordPattern, s)
}

func SignIn(c models.Credentials) error {
	errs := Errors{}
	checkEmail(errs, c.Email)
	checkPassword(errs, c.Password, MsgInvalidPassword)
	return errs.orNil()
}

// SignUp also requires the repeated password to equal the password.
func SignUp(r models.Registration) error {
	errs := Errors{}
	checkEmail(errs, r.Email)
	checkPassword(errs, r.Password, MsgWeakPassword)

	switch {
	case r.RepeatPassword == "":
		errs[FieldRepeatPassword] = MsgRequired
	case r.RepeatPassword != r.Password:
		errs[FieldRepeatPassword] = MsgMismatch
	}
	return errs.orNil()
}

func checkEmail(errs Errors, email string) {
	switch {
	case email == "":
		errs[FieldEmail] = MsgRequired
	case !Email(email):
		errs[FieldEmail] = MsgInvalidEmail
	}
}

func checkPassword(errs Errors, password, invalidMsg string) {
	switch {
	case password == "":
		errs[FieldPassword] = MsgRequired
	case !Password(password):
		errs[FieldPassword] = invalidMsg
	}
}

func match(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}
