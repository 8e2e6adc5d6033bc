package provider

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validation messages, one per rule.
const (
	MsgNameRequired    = "name required"
	MsgContactRequired = "contact required"
	MsgAddressRequired = "address required"
	MsgPhoneNumeric    = "phone must be numeric"
	MsgEmailInvalid    = "email invalid"
)

// whitespace matches the browser's \s class, BOM included.
const whitespace = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	phonePattern = regexp.MustCompile(`^[0-9]+$`)
	emailPattern = regexp.MustCompile(`[^` + whitespace + `]+@[^` + whitespace + `]+\.[^` + whitespace + `]+`)
)

// isSpace reports whether r belongs to the whitespace class.
// unicode.IsSpace also covers U+0085, which the class leaves out.
func isSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

var messages = map[Field]string{
	FieldName:    MsgNameRequired,
	FieldContact: MsgContactRequired,
	FieldAddress: MsgAddressRequired,
	FieldPhone:   MsgPhoneNumeric,
	FieldEmail:   MsgEmailInvalid,
}

// ValidationError reports the first rule a draft violates.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the shared validator with the record rules registered.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()

		// Report fields by their JSON (form) names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		must(validate.RegisterValidation("trimmed_required", func(fl validator.FieldLevel) bool {
			return strings.TrimFunc(fl.Field().String(), isSpace) != ""
		}))
		must(validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		}))
		must(validate.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		}))
	})
	return validate
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate checks r against the rule set and returns the first violation,
// or nil when every rule passes. The ID is not checked.
func Validate(r Record) *ValidationError {
	err := getValidator().Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		// Only reachable if the validator itself is misconfigured.
		panic(err)
	}

	// Errors come back in struct field order, which is rule precedence.
	f := Field(fieldErrs[0].Field())
	return &ValidationError{Field: f, Message: messages[f]}
}
