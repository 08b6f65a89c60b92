package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"belakoo-backend-go/internal/services"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const notBlankTag = "notblank"

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report JSON field names, not Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " cannot be blank"
		})
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// validationError carries per-field messages keyed by JSON name.
type validationError struct {
	message string
	fields  map[string]string
}

func (e *validationError) Error() string {
	return e.message
}

// decode reads a JSON body into dst and runs its validate tags.
// An empty body is treated as an empty object.
func decode(r *http.Request, dst interface{}) error {
	if r.Body != nil {
		err := json.NewDecoder(r.Body).Decode(dst)
		if err != nil && !errors.Is(err, io.EOF) {
			return services.ErrBadRequest("Invalid payload")
		}
	}
	return validateStruct(dst)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return services.ErrBadRequest("Invalid payload")
	}
	out := &validationError{fields: make(map[string]string, len(verrs))}
	for i, fe := range verrs {
		msg := fe.Translate(translator)
		if i == 0 {
			out.message = msg
		}
		out.fields[fe.Field()] = msg
	}
	return out
}
