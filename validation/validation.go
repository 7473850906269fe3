package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"thumbnailer/models"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	hexColor6Pattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)
)

// instance configures and returns the shared validator used by config and background.
func instance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// hexcolor6 accepts "#" followed by exactly six lower case hex digits,
		// the only colour form the background selector produces.
		_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
			return hexColor6Pattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			switch strings.ToLower(fl.Field().String()) {
			case "", "debug", "info", "warn", "error":
				return true
			}
			return false
		})

		validateInst = v
	})

	return validateInst
}

// IsHexColor6 reports whether s is a "#rrggbb" colour string.
func IsHexColor6(s string) bool {
	return hexColor6Pattern.MatchString(s)
}

// ValidateBackground checks a background descriptor against its struct tags.
// It only works with raw values, no fyne types, so any package may call it.
func ValidateBackground(bg models.Background) error {
	if bg == nil {
		return errors.New("background descriptor is nil")
	}
	return Struct(bg)
}

// Struct validates any tagged struct and flattens validator errors into a readable message.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
