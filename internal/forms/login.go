package forms

import (
	"net/url"
	"strings"
)

// LoginInput is a validated email/password pair. It is never persisted.
type LoginInput struct {
	Email    string
	Password string
}

type loginForm struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=6,max=255"`
}

// ParseLoginForm checks credential shape only; it never contacts the
// credentials provider.
func ParseLoginForm(values url.Values) (*LoginInput, Errors) {
	form := loginForm{
		Email:    strings.TrimSpace(values.Get("email")),
		Password: values.Get("password"),
	}

	errs := Errors{}
	if err := validate.Struct(form); err != nil {
		for _, fe := range fieldErrors(err) {
			switch fe.Field() {
			case "Email":
				errs.add("email", "Please enter a valid email.")
			case "Password":
				errs.add("password", "Password must be between 6 and 255 characters.")
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &LoginInput{Email: form.Email, Password: form.Password}, nil
}
