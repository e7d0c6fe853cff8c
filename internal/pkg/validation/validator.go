package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/academia/internal/pkg/apperrors"
)

// MessageProvider is implemented by request types that carry human readable
// messages keyed by "<json field>.<tag>". The "type" tag is used for JSON
// type mismatches.
type MessageProvider interface {
	ValidationMessages() map[string]string
}

// InvalidBodyMessage is returned when the body cannot be decoded at all
const InvalidBodyMessage = "El cuerpo de la solicitud no es un JSON válido"

// Validator validates request structs and reports the first failing field
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom rules registered
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, fn := range customRules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}

	return &Validator{validate: v}
}

var defaultValidator = New()

// Struct validates obj with the package validator
func Struct(obj interface{}) error {
	return defaultValidator.Struct(obj)
}

// StructWithFields validates obj decoded from a body holding fields
func StructWithFields(obj interface{}, fields Fields) error {
	return defaultValidator.StructWithFields(obj, fields)
}

// BindError translates a request decoding error for obj
func BindError(obj interface{}, err error) error {
	return defaultValidator.BindError(obj, err)
}

// Struct validates obj. The returned error is an apperrors validation error
// naming the first failing field.
func (v *Validator) Struct(obj interface{}) error {
	return v.StructWithFields(obj, nil)
}

// StructWithFields validates obj like Struct. A required field whose key is
// in fields was sent empty and is reported with the "empty" message.
func (v *Validator) StructWithFields(obj interface{}, fields Fields) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return apperrors.NewBadRequestError(err.Error())
	}

	fe := fieldErrors[0]
	field := baseField(fe.Field())
	fallback := defaultMessage(fe, field)
	if fe.Tag() == "required" && fields.Has(field) {
		return apperrors.NewValidationError(field, messageFor(obj, field, "empty", messageFor(obj, field, "required", fallback)))
	}
	return apperrors.NewValidationError(field, messageFor(obj, field, fe.Tag(), fallback))
}

// BindError converts a JSON decoding failure into a validation or bad request error
func (v *Validator) BindError(obj interface{}, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := baseField(typeErr.Field)
		return apperrors.NewValidationError(field, messageFor(obj, field, "type", fmt.Sprintf("%s tiene un tipo inválido", field)))
	}
	return apperrors.NewBadRequestError(InvalidBodyMessage)
}

// baseField strips slice indexes and nested paths: "cursos[2]" and "cursos.2" become "cursos"
func baseField(field string) string {
	if i := strings.IndexAny(field, "[."); i > 0 {
		return field[:i]
	}
	return field
}

func messageFor(obj interface{}, field, tag, fallback string) string {
	provider, ok := obj.(MessageProvider)
	if !ok {
		// Bulk bodies decode into a slice, messages come from its element type
		rv := reflect.ValueOf(obj)
		for rv.Kind() == reflect.Ptr && !rv.IsNil() {
			rv = rv.Elem()
		}
		if rv.Kind() == reflect.Slice {
			rv = reflect.Zero(rv.Type().Elem())
		}
		if rv.IsValid() && rv.CanInterface() {
			provider, ok = rv.Interface().(MessageProvider)
		}
	}
	if ok {
		if msg, found := provider.ValidationMessages()[field+"."+tag]; found {
			return msg
		}
	}
	return fallback
}

// defaultMessage creates a generic message when the request type has none
func defaultMessage(fe validator.FieldError, field string) string {
	switch fe.Tag() {
	case "required":
		return field + " es un campo requerido"
	case "min":
		return field + " debe ser al menos " + fe.Param()
	case "max":
		return field + " no debe exceder " + fe.Param()
	default:
		return field + " no es válido"
	}
}
