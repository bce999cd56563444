// Package validators holds the field rules applied to every submission before
// a store is touched. Rules are plain functions; callers compose them and
// collect the results into one apperrors.FieldErrors map.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/models"
	"github.com/go-playground/validator/v10"
)

// RuleError is a single failed rule with a message fit for the client.
type RuleError struct {
	Message string
}

func (e RuleError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	must(v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		_, err := models.ParseGender(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("blood_group", func(fl validator.FieldLevel) bool {
		_, err := models.ParseBloodGroup(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		_, err := models.ParseApplicationStatus(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("past_date", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(dto.DateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		return d.Before(today)
	}))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidateStruct runs the `validate` tag rules of s and returns one message per
// failing field. An empty map means the struct is valid.
func ValidateStruct(s interface{}) apperrors.FieldErrors {
	fields := apperrors.FieldErrors{}

	err := validate.Struct(s)
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable with a non-struct argument
		panic(fmt.Sprintf("validators: cannot validate %T: %v", s, err))
	}

	for _, fe := range verrs {
		fields.Add(fe.Field(), message(fe))
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "len":
		return fmt.Sprintf("Field must be exactly %s characters long.", fe.Param())
	case "number":
		return "Field must contain digits only."
	case "excludesall":
		return fmt.Sprintf("Field cannot contain %q.", fe.Param())
	case "eqfield":
		return fmt.Sprintf("Field must be equal to %s.", lowerFirst(fe.Param()))
	case "datetime":
		return "Not a valid date value."
	case "past_date":
		return "Date must be in the past."
	case "gender", "blood_group", "application_status":
		return "Not a valid choice."
	case "gt":
		return fmt.Sprintf("Number must be greater than %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Number must be at most %s.", fe.Param())
	}
	return "Invalid value."
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
