package http

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Belgian postal codes are four digits, optionally prefixed with "B-".
var postcodePattern = regexp.MustCompile(`^(?:[Bb]-?)?[1-9]\d{3}$`)

var (
	registerOnce sync.Once
	registerErr  error
)

// registerValidators installs the custom binding rules on gin's validator.
// Without them every binding:"postcode" tag fails at request time, so
// NewRouter refuses to start when this returns an error.
func registerValidators() error {
	registerOnce.Do(func() {
		registerErr = installValidators(binding.Validator.Engine())
	})
	return registerErr
}

func installValidators(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("binding engine is %T, not *validator.Validate", engine)
	}
	if err := v.RegisterValidation("postcode", validatePostcode); err != nil {
		return fmt.Errorf("register postcode rule: %w", err)
	}
	return nil
}

func validatePostcode(fl validator.FieldLevel) bool {
	return postcodePattern.MatchString(fl.Field().String())
}
