package server

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// The special characters a password must draw from. Matches the set the
// registration form advertises.
const passwordSpecials = "@$!%*?&"

var validatorOnce sync.Once

// registerValidators wires the custom field rules into gin's binding
// engine and reports JSON field names in validation errors.
func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = engine.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return isValidUsername(fl.Field().String())
		})
		_ = engine.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
			return isValidPersonName(fl.Field().String())
		})
		_ = engine.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
			return isStrongPassword(fl.Field().String())
		})
		_ = engine.RegisterValidation("futuretime", func(fl validator.FieldLevel) bool {
			value, ok := fl.Field().Interface().(time.Time)
			if !ok {
				return false
			}
			return value.After(time.Now())
		})
	})
}

func isValidUsername(username string) bool {
	if username == "" {
		return false
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

func isValidPersonName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == ' ':
		default:
			return false
		}
	}
	return true
}

// isStrongPassword requires one lowercase, one uppercase, one digit and
// one special character, and rejects characters outside that alphabet.
func isStrongPassword(password string) bool {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}
