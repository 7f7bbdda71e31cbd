package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/models/dto/enums"
)

// BindJSON decodes the body into obj, answering 400 on failure. Binding tag
// failures are reported per field.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	if verrs, ok := err.(validator.ValidationErrors); ok {
		names := make([]string, 0, len(verrs))
		fields := make(map[string]string, len(verrs))
		for _, e := range verrs {
			if _, seen := fields[e.Field()]; !seen {
				names = append(names, e.Field())
			}
			fields[e.Field()] = formatValidationError(e)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewFieldErrorResponse(names, fields))
		return false
	}

	errorDetail := dto.NewErrorDetail(enums.ErrorCodeValidationFailed, "รูปแบบข้อมูลไม่ถูกต้อง").WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	return false
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "กรุณากรอก " + e.Field()
	case "min":
		return e.Field() + " ต้องมีอย่างน้อย " + e.Param()
	case "oneof":
		return e.Field() + " ต้องเป็นหนึ่งใน: " + e.Param()
	default:
		return e.Field() + " ไม่ถูกต้อง"
	}
}
