package core

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"savecart/models"

	"github.com/go-playground/validator/v10"
)

// DefaultThemeSettingsID is the id used when a settings write carries none.
const DefaultThemeSettingsID uint = 1

var rgbHex6 = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// fieldMessages holds the reason reported for each failed tag
var fieldMessages = map[string]string{
	"text:required":            "Text is required",
	"textColor:required":       "Invalid color code",
	"textColor:rgbhex6":        "Invalid color code",
	"backgroundColor:required": "Invalid color code",
	"backgroundColor:rgbhex6":  "Invalid color code",
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("rgbhex6", func(fl validator.FieldLevel) bool {
			return IsRGBHex6(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// IsRGBHex6 reports whether s is "#" followed by exactly 6 hex digits.
func IsRGBHex6(s string) bool {
	return rgbHex6.MatchString(s)
}

// ValidateThemeSettings checks a settings payload and returns the record to upsert.
// The returned id is DefaultThemeSettingsID when the payload has none.
func ValidateThemeSettings(in models.ThemeSettingsInput) (models.ThemeSettings, error) {
	in.Normalize()

	if err := validatorInstance().Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return models.ThemeSettings{}, err
		}
		verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
		for _, fe := range fieldErrs {
			if _, seen := verr.Fields[fe.Field()]; seen {
				continue
			}
			msg, ok := fieldMessages[fe.Field()+":"+fe.Tag()]
			if !ok {
				msg = "Invalid value"
			}
			verr.Fields[fe.Field()] = msg
		}
		return models.ThemeSettings{}, verr
	}

	id := DefaultThemeSettingsID
	if in.ID != nil && *in.ID != 0 {
		id = *in.ID
	}

	return models.ThemeSettings{
		ID:              id,
		Text:            in.Text,
		TextColor:       in.TextColor,
		BackgroundColor: in.BackgroundColor,
	}, nil
}
