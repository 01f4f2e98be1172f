package catalog

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

//nolint:gochecknoglobals // Validator caches struct metadata; one instance per process
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() (v *validator.Validate) {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	v = validate
	return v
}

// validateStruct runs tag validation and flattens field errors into one message.
func validateStruct(s any) (err error) {
	err = getValidator().Struct(s)
	if err == nil {
		return err
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		err = errors.Wrap(err, "validation failed")
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fe.Namespace() + " failed '" + fe.Tag() + "'"
		if fe.Param() != "" {
			msg += " (" + fe.Param() + ")"
		}
		messages = append(messages, msg)
	}

	err = errors.New(strings.Join(messages, "; "))

	return err
}
