package api

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/pkg/errors"
)

var registerOnce sync.Once
var registerErr error

// validateUnit accepts the user-facing names and the wire tokens of a measurement unit
func validateUnit(fl validator.FieldLevel) bool {
	_, err := forecast.UnitFromToken(fl.Field().String())
	return err == nil
}

// RegisterValidators installs the custom binding rules on gin's validator
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.NewConfigurationError("gin validator engine is not go-playground/validator", nil)
			return
		}
		if err := v.RegisterValidation("unit", validateUnit); err != nil {
			registerErr = errors.NewConfigurationError("failed to register unit validator", err)
		}
	})
	return registerErr
}
