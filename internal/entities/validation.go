package entities

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidBook is wrapped by every ValidationError.
var ErrInvalidBook = errors.New("invalid book")

// now is swapped out in tests that need a fixed current year.
var now = time.Now

// safeTextPattern allows letters, digits, spaces, parentheses, apostrophes
// and light punctuation. Double quotes, angle brackets, semicolons, '=',
// '*', '#' and backslashes are refused.
var safeTextPattern = regexp.MustCompile(`^[\p{L}\p{N} .,:!?&/()'’-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name so errors match the API payload.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(now().Year())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("safetext", func(fl validator.FieldLevel) bool {
		return IsSafeText(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsSafeText reports whether s contains only characters accepted in book
// text fields. The SQL comment marker "--" is refused even though '-' alone
// is allowed, and an apostrophe must sit between two letters (Ender's,
// O'Brien) so it cannot open or close a quoted literal.
func IsSafeText(s string) bool {
	if strings.Contains(s, "--") || !safeTextPattern.MatchString(s) {
		return false
	}

	runes := []rune(s)
	for i, r := range runes {
		if r != '\'' && r != '’' {
			continue
		}
		if i == 0 || i == len(runes)-1 || !unicode.IsLetter(runes[i-1]) || !unicode.IsLetter(runes[i+1]) {
			return false
		}
	}
	return true
}

// FieldError describes a single failing field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every field of a book that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidBook, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidBook
}

// Has reports whether the given field failed.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks the book against its column constraints. It returns a
// *ValidationError when one or more fields are rejected.
func (b *Book) Validate() error {
	err := validate.Struct(b)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidBook, err)
	}

	result := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		result.Fields = append(result.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: describeRule(fe),
		})
	}
	return result
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "notfuture":
		return "must not be in the future"
	case "safetext":
		return "contains forbidden characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
