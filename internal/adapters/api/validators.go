package api

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"weathertracker.app/internal/core/weather"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adds the unit validators to gin's binding engine
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("temperature_unit", func(fl validator.FieldLevel) bool {
			return weather.TemperatureUnit(fl.Field().String()).IsValid()
		}); err != nil {
			validatorsErr = err
			return
		}
		validatorsErr = v.RegisterValidation("speed_unit", func(fl validator.FieldLevel) bool {
			return weather.WindSpeedUnit(fl.Field().String()).IsValid()
		})
	})
	return validatorsErr
}
