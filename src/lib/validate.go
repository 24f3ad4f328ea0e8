package lib

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks a request body against its validate tags and returns
// a field-level message for the first violation.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if ok := errors.As(err, &errs); ok && len(errs) > 0 {
		e := errs[0]
		field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s is required", field)
		case "email":
			return fmt.Errorf("%s must be a valid email address", field)
		case "min":
			return fmt.Errorf("%s must be at least %s", field, e.Param())
		case "oneof":
			return fmt.Errorf("%s must be one of: %s", field, e.Param())
		default:
			return fmt.Errorf("%s is invalid", field)
		}
	}
	return err
}
