package validator

import (
	"fmt"
	"log"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
)

var (
	standalone     *validator.Validate
	standaloneOnce sync.Once
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := register(v); err != nil {
			log.Fatalf("register gin validators failed: %s", err)
		}
	}
}

// Struct validates v by its `validate` tags outside of gin, e.g. in the batch harness.
func Struct(v any) error {
	return engine().Struct(v)
}

// Identifier checks a data subject identifier is a usable email address.
func Identifier(identifier string) error {
	if err := engine().Var(identifier, "required,email"); err != nil {
		return fmt.Errorf("%w %q", domain.ErrInvalidIdentifier, identifier)
	}
	return nil
}

func engine() *validator.Validate {
	standaloneOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := register(v); err != nil {
			log.Fatalf("register validators failed: %s", err)
		}
		standalone = v
	})
	return standalone
}

func register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v.RegisterValidation("dsraction", actionValidator)
}

var actionValidator validator.Func = func(fl validator.FieldLevel) bool {
	return domain.Action(fl.Field().String()).Valid()
}
