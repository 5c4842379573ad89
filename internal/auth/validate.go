package auth

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	notBlankTag = "notblank"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Messages name fields by their label tag.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(s) != ""
	})
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " cannot be blank"
		})
}

// LoginInput is the login form.
type LoginInput struct {
	Username string `label:"Username" validate:"notblank"`
	Password string `label:"Password" validate:"required"`
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Username        string `label:"Username" validate:"notblank,min=3,max=50"`
	Email           string `label:"Email" validate:"required,email"`
	Password        string `label:"Password" validate:"required,min=6"`
	ConfirmPassword string `label:"Confirm password" validate:"eqfield=Password"`
}

// FieldError is one readable validation message.
type FieldError struct {
	Field   string // struct field name, e.g. "Email"
	Message string
}

// ValidationError lists the form fields that failed validation, in form
// order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// For returns the message for the named field, or "".
func (e *ValidationError) For(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Validate checks a form struct and returns *ValidationError on failure.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.StructField(),
			Message: fe.Translate(translator),
		})
	}
	return out
}
