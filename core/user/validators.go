package user

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

var (
	pwdMatchTag  = "pwdmatch"
	pwdMatchText = map[string]string{
		"en": "passwords do not match",
		"ar": "كلمتا المرور غير متطابقتين",
	}
)

// RegisterValidators registers the user related validators on validate.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(registerStructValidation, RegisterInput{})
	core.RegisterCustomTranslation(validate, translator, pwdMatchTag, core.LocalText(pwdMatchText, translator))
}

// registerStructValidation checks that the password confirmation matches the password.
func registerStructValidation(sl validator.StructLevel) {
	ri, ok := sl.Current().Interface().(RegisterInput)
	if !ok || ri.PasswordConfirmation == "" {
		return
	}
	if ri.Password != ri.PasswordConfirmation {
		sl.ReportError(ri.PasswordConfirmation, "password_confirmation", "PasswordConfirmation", pwdMatchTag, "")
	}
}
