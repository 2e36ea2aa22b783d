package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jmallet/cashplan/internal/core/domain"
)

// RegisterCustomValidations installs the custom binding rules used by the DTO
// tags. Call once at startup, before the router starts serving.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transferref", validTransferRef)
	}
}

// validTransferRef accepts transfer endpoint refs of the form "acc_<id>" or
// "res_<id>".
func validTransferRef(fl validator.FieldLevel) bool {
	_, err := domain.ParseTransferRef(fl.Field().String())
	return err == nil
}
