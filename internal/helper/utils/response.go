package utils

import (
	"errors"
	"net/http"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

const (
	CodeUploadError = "UPLOAD_ERROR"
	CodeServerError = "SERVER_ERROR"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

func ResponseErrorCode(ctx *fiber.Ctx, status int, msg, code string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
		"code":    code,
	})
}

// create a generic response function for success
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func ResponseMessage(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{"success": true, "message": msg})
}

// StatusFor maps an error to the HTTP status HandleError would answer with.
func StatusFor(err error) int {
	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		upload     *domain.UploadError
		fe         *fiber.Error
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &conflict), errors.As(err, &upload):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmployeeNotFound), errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.As(err, &fe):
		return fe.Code
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes the error envelope for err. Internal error text is only
// written when expose is set.
func HandleError(ctx *fiber.Ctx, err error, expose bool) error {
	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		upload     *domain.UploadError
		fe         *fiber.Error
	)
	switch {
	case errors.As(err, &validation):
		return ResponseError(ctx, http.StatusBadRequest, validation.Reason)
	case errors.As(err, &conflict):
		return ResponseError(ctx, http.StatusBadRequest, conflict.Error())
	case errors.As(err, &upload):
		return ResponseErrorCode(ctx, http.StatusBadRequest, upload.Reason, CodeUploadError)
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return ResponseError(ctx, http.StatusNotFound, "Employee not found")
	case errors.Is(err, domain.ErrDocumentNotFound):
		return ResponseError(ctx, http.StatusNotFound, "File not found")
	case errors.As(err, &fe):
		return ResponseError(ctx, fe.Code, fe.Message)
	}

	msg := "Internal server error"
	if expose {
		msg = err.Error()
	}
	return ResponseErrorCode(ctx, http.StatusInternalServerError, msg, CodeServerError)
}
