package store

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldSeparator splits the fields of a save file line.
const fieldSeparator = ","

var validate *validator.Validate

func init() {
	validate = validator.New()
	// savable rejects text the line format cannot carry
	if err := validate.RegisterValidation("savable", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), fieldSeparator+"\r\n")
	}); err != nil {
		panic(err)
	}
}
