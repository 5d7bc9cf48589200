package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/pkg/nutrition"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		// YYYY-MM-DD calendar key, the empty value is left to omitempty
		validate.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
			return nutrition.ValidDateKey(fl.Field().String())
		})
	})
}

// validateStruct runs the validator and folds field errors into one ErrValidation.
func validateStruct(s any) error {
	InitValidator()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		joined := errorvalues.ErrValidation
		for _, fieldErr := range validationErrors {
			joined = errors.Join(joined, fmt.Errorf("field %s failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
		}
		return joined
	}
	return errors.New("validation unexpected error: " + err.Error())
}
