package domain

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Rules for single values. They mirror the struct tags on Client.
const (
	nameRule       = "required,max=20"
	addressRule    = "required,max=50"
	postalCodeRule = "required,max=7,postalcode"
	phoneRule      = "max=13,phone"
	clientTypeRule = "oneof=C R"
	searchIDRule   = "required,max=4,digits"
)

var (
	postalCodePattern = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z] \d[A-Za-z]\d$`)
	phonePattern      = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	digitsPattern     = regexp.MustCompile(`^[0-9]+$`)
)

// fieldNames maps Client struct fields to their column names
var fieldNames = map[string]string{
	"FirstName":   "firstName",
	"LastName":    "lastName",
	"Address":     "address",
	"PostalCode":  "postalCode",
	"PhoneNumber": "phoneNumber",
	"Type":        "clientType",
}

var reasons = map[string]string{
	"firstName":   "First name cannot be empty and must be at most 20 characters",
	"lastName":    "Last name cannot be empty and must be at most 20 characters",
	"address":     "Address cannot be empty and must be at most 50 characters",
	"postalCode":  "Postal code must be in the format A1A 1A1",
	"phoneNumber": "Phone number must be in the format 123-456-7890",
	"clientType":  "Client type must be 1 character; either 'R' (Residential) or 'C' (Commercial)",
	"id":          "ID cannot be empty, and must contain only digits (up to 4)",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	patterns := map[string]*regexp.Regexp{
		"postalcode": postalCodePattern,
		"phone":      phonePattern,
		"digits":     digitsPattern,
	}
	for tag, re := range patterns {
		if err := v.RegisterValidation(tag, matchPattern(re)); err != nil {
			panic(fmt.Sprintf("domain: register %q validation: %v", tag, err))
		}
	}
	return v
}

func matchPattern(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// ValidateName checks a first or last name. field is the name reported on
// failure ("firstName" or "lastName").
func ValidateName(field, s string) error {
	return validateVar(field, s, nameRule)
}

// ValidateAddress checks a street address
func ValidateAddress(s string) error {
	return validateVar("address", s, addressRule)
}

// ValidatePostalCode checks a postal code in the form A1A 1A1
func ValidatePostalCode(s string) error {
	return validateVar("postalCode", s, postalCodeRule)
}

// ValidatePhoneNumber checks a phone number in the form 123-456-7890
func ValidatePhoneNumber(s string) error {
	return validateVar("phoneNumber", s, phoneRule)
}

// ValidateClientType accepts exactly "C" or "R"
func ValidateClientType(s string) error {
	return validateVar("clientType", s, clientTypeRule)
}

// ValidateSearchID checks an id search query: one to four ASCII digits
func ValidateSearchID(s string) error {
	return validateVar("id", s, searchIDRule)
}

func validateVar(field, value, rule string) error {
	if err := validate.Var(value, rule); err != nil {
		return &ValidationError{Field: field, Value: value, Reason: reasonFor(field)}
	}
	return nil
}

func validateStruct(c *Client) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	// Only the first failure is reported
	fe := errs[0]
	field := fieldNames[fe.StructField()]
	return &ValidationError{
		Field:  field,
		Value:  fmt.Sprint(fe.Value()),
		Reason: reasonFor(field),
	}
}

func reasonFor(field string) string {
	if r, ok := reasons[field]; ok {
		return r
	}
	return fmt.Sprintf("%s is invalid", field)
}
