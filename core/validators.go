package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ar_translations "github.com/go-playground/validator/v10/translations/ar"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	// custom validation tags & texts
	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = map[string]string{
		"en": "this field is required",
		"ar": "هذا الحقل مطلوب",
	}
)

// NewValidator returns a validator whose errors read in locale ("en" or "ar", english otherwise),
// with the app's custom validators registered.
func NewValidator(locale string) (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en, ar.New())
	translator, found := uni.GetTranslator(locale)
	if !found {
		translator, _ = uni.GetTranslator("en")
	}
	InitValidators(validate, translator)
	return validate, translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	if translator.Locale() == "ar" {
		_ = ar_translations.RegisterDefaultTranslations(validate, translator)
	} else {
		_ = en_translations.RegisterDefaultTranslations(validate, translator)
	}

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	text := LocalText(requiredText, translator)
	RegisterCustomTranslation(validate, translator, requiredTag, text, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, text, true)
}

// LocalText picks the text of the translator's locale out of texts, falling back to english.
func LocalText(texts map[string]string, translator ut.Translator) string {
	if s, ok := texts[translator.Locale()]; ok {
		return s
	}
	return texts["en"]
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidateStruct validates s and converts validation failures into a *ValidationError
// carrying one translated FieldError per invalid field.
func ValidateStruct(validate *validator.Validate, translator ut.Translator, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(err, "validating input")
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(translator)})
	}
	return NewValidationError(nil, flds...)
}
