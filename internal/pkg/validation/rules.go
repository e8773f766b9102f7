package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation limits shared by request DTOs and services
const (
	PasswordMinLength = 8
	PasswordMaxLength = 64
	NameMaxLength     = 100
)

var registerOnce sync.Once

// RegisterWithGin installs the custom rules on gin's default validator engine.
func RegisterWithGin() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		err = Register(v)
	})
	return err
}

// Register adds the custom rules and reports field names by their json tag.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonTagName)

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	return nil
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

// notBlank rejects strings made only of whitespace.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// FieldMessage is a single human-readable validation failure
type FieldMessage struct {
	Field   string
	Message string
}

// Describe turns validator errors into field messages. ok is false if err
// did not come from the validator.
func Describe(err error) (messages []FieldMessage, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	for _, e := range verrs {
		messages = append(messages, FieldMessage{
			Field:   e.Field(),
			Message: formatValidationError(e),
		})
	}
	return messages, true
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "notblank":
		return e.Field() + " cannot be empty"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "uuid", "uuid4":
		return e.Field() + " must be a valid UUID"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
