package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
)

type requestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newRequestValidator() (*requestValidator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{
		validate:   validate,
		translator: trans,
	}, nil
}

// validateRequest returns an InvalidArgument error carrying a BadRequest
// detail with one violation per invalid field.
func (v *requestValidator) validateRequest(msg any) *connect.Error {
	err := v.validate.Struct(msg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}

	messages := make([]string, 0, len(validationErrors))
	fieldViolations := make([]*errdetails.BadRequest_FieldViolation, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		description := fieldError.Translate(v.translator)
		messages = append(messages, description)
		fieldViolations = append(fieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       fieldError.Field(),
			Description: description,
		})
	}

	connectErr := connect.NewError(connect.CodeInvalidArgument, errors.New(strings.Join(messages, ", ")))
	if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
		FieldViolations: fieldViolations,
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}
