package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/models/dto/enums"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/logger"
	"github.com/yigit/unirecords/internal/pkg/validation"
)

type errorMapping struct {
	target  error
	status  int
	code    enums.ErrorCode
	message string
}

var errorMappings = []errorMapping{
	{apperrors.ErrStudentNotFound, http.StatusNotFound, enums.ErrorCodeResourceNotFound, "ไม่พบข้อมูลนักศึกษา"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, enums.ErrorCodeResourceNotFound, "ไม่พบข้อมูล"},
	{apperrors.ErrStudentIDAlreadyExists, http.StatusConflict, enums.ErrorCodeResourceAlreadyExists, "รหัสนักศึกษานี้มีอยู่ในระบบแล้ว"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, enums.ErrorCodeResourceAlreadyExists, "ข้อมูลนี้มีอยู่ในระบบแล้ว"},
	{apperrors.ErrConflict, http.StatusConflict, enums.ErrorCodeConflict, "ข้อมูลขัดแย้งกัน"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, enums.ErrorCodeInvalidCredentials, "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, enums.ErrorCodeUnauthorized, "กรุณาเข้าสู่ระบบ"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, enums.ErrorCodeForbidden, "ไม่มีสิทธิ์ดำเนินการ"},
	{apperrors.ErrFileTooLarge, http.StatusRequestEntityTooLarge, enums.ErrorCodeFileTooLarge, "ขนาดไฟล์ต้องไม่เกิน 10MB"},
	{apperrors.ErrFileType, http.StatusBadRequest, enums.ErrorCodeFileType, "รองรับไฟล์ .csv, .xls, .xlsx เท่านั้น"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, enums.ErrorCodeValidationFailed, "ข้อมูลไม่ถูกต้อง"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, enums.ErrorCodeBadRequest, "คำขอไม่ถูกต้อง"},
}

// HandleAPIError writes the error envelope for err. Field validation errors
// become an errors array; a CustomError message replaces the default text.
func HandleAPIError(c *gin.Context, err error) {
	var verr *validation.Errors
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(verr.Names(), verr.Fields))
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			message := m.message
			var custom *apperrors.CustomError
			if errors.As(err, &custom) && custom.Message != "" {
				message = custom.Message
			}
			c.JSON(m.status, dto.NewErrorResponse(dto.NewErrorDetail(m.code, message)))
			return
		}
	}

	logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(enums.ErrorCodeInternalServer, "เกิดข้อผิดพลาดภายในระบบ"),
	))
}
