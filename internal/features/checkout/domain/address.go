package domain

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DefaultCountry is used when the form leaves the country blank.
const DefaultCountry = "India"

// ShippingAddress is the checkout form. It doubles as the billing address.
type ShippingAddress struct {
	FullName     string `json:"full_name" validate:"required,min=2,max=50,personname"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,phone"`
	AddressLine1 string `json:"address_line1" validate:"required,min=10,max=200"`
	AddressLine2 string `json:"address_line2,omitempty" validate:"omitempty,max=200"`
	City         string `json:"city" validate:"required,min=2,max=50,alphaspace"`
	State        string `json:"state" validate:"required,min=2,max=50,alphaspace"`
	Pincode      string `json:"pincode" validate:"required,pincode"`
	Country      string `json:"country,omitempty"`
}

// Normalize trims every field and fills in the default country.
func (a *ShippingAddress) Normalize() {
	for _, f := range []*string{&a.FullName, &a.Email, &a.Phone, &a.AddressLine1, &a.AddressLine2, &a.City, &a.State, &a.Pincode, &a.Country} {
		*f = strings.TrimSpace(*f)
	}
	if a.Country == "" {
		a.Country = DefaultCountry
	}
}

// ValidationErrors maps a form field to the message shown next to it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid checkout form: " + strings.Join(parts, "; ")
}

var (
	personNameRe = regexp.MustCompile(`^[\p{L} .'\-]+$`)
	alphaSpaceRe = regexp.MustCompile(`^[\p{L} ]+$`)
	phoneCharsRe = regexp.MustCompile(`^[0-9 +\-()]+$`)
	pincodeRe    = regexp.MustCompile(`^[0-9]{6}$`)
)

// phoneDigits strips formatting and an optional 91 or 0 prefix, leaving the subscriber number.
func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return digits[1:]
	}
	return digits
}

func validPhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	return phoneCharsRe.MatchString(phone) && len(phoneDigits(phone)) == 10
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			return name
		})
		_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
			return personNameRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
			return alphaSpaceRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
			return pincodeRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("phone", validPhone)
		validate = v
	})
	return validate
}

// fieldMessages holds the text shown for each field when any of its rules fails.
var fieldMessages = map[string]string{
	"full_name":     "Name must be 2-50 characters and contain only letters, spaces, periods, apostrophes or hyphens",
	"email":         "Please enter a valid email address",
	"phone":         "Please enter a valid 10-digit phone number",
	"address_line1": "Address must be 10-200 characters",
	"address_line2": "Address line 2 must be at most 200 characters",
	"city":          "City must be 2-50 characters and contain only letters and spaces",
	"state":         "State must be 2-50 characters and contain only letters and spaces",
	"pincode":       "Pincode must be exactly 6 digits",
}

var requiredMessages = map[string]string{
	"full_name":     "Full name is required",
	"email":         "Email is required",
	"phone":         "Phone number is required",
	"address_line1": "Address is required",
	"city":          "City is required",
	"state":         "State is required",
	"pincode":       "Pincode is required",
}

// Validate checks the form and returns nil when every field is acceptable.
func (a ShippingAddress) Validate() ValidationErrors {
	err := formValidator().Struct(a)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{"form": err.Error()}
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if fe.Tag() == "required" {
			out[field] = requiredMessages[field]
			continue
		}
		out[field] = fieldMessages[field]
	}
	return out
}
