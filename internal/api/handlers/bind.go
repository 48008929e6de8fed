package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindJSON decodes the body, applies struct defaults and validates.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return err
	}
	if err := defaults.Set(req); err != nil {
		return err
	}
	return validate.StructCtx(c.Request.Context(), req)
}

func validationDetails(err error) map[string]interface{} {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	fields := make([]map[string]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, map[string]string{
			"field":   fe.Namespace(),
			"code":    "ERR_" + strings.ToUpper(fe.Tag()),
			"message": fieldMessage(fe),
		})
	}
	return map[string]interface{}{"fields": fields}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_without":
		return fmt.Sprintf("%s is required when %s is empty", field, fe.Param())
	case "excluded_with":
		return fmt.Sprintf("%s must be empty when %s is set", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
