package handlers

import (
	"sync"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the domain enum validators to gin's binding engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("staffrole", func(fl validator.FieldLevel) bool {
			return domain.StaffRole(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("tablestatus", func(fl validator.FieldLevel) bool {
			return domain.TableStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
			return domain.Direction(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("tender", func(fl validator.FieldLevel) bool {
			return domain.TenderType(fl.Field().String()).Valid()
		})
	})
}
