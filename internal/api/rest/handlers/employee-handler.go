package handlers

import (
	"path/filepath"
	"strconv"

	"github.com/SundayYogurt/onboarding_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/onboarding_service/internal/dto"
	"github.com/SundayYogurt/onboarding_service/internal/helper/utils"
	"github.com/SundayYogurt/onboarding_service/internal/services"
	"github.com/SundayYogurt/onboarding_service/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	svc          services.EmployeeService
	log          *logger.Logger
	exposeErrors bool
	idempotency  fiber.Handler
}

type EmployeeHandlerOption func(*EmployeeHandler)

// WithExposedErrors writes internal error text into 500 responses.
func WithExposedErrors(expose bool) EmployeeHandlerOption {
	return func(h *EmployeeHandler) { h.exposeErrors = expose }
}

// WithIdempotency guards POST /save-employee with an Idempotency-Key cache.
func WithIdempotency(cache middleware.IdempotencyCache) EmployeeHandlerOption {
	return func(h *EmployeeHandler) {
		if cache != nil {
			h.idempotency = middleware.Idempotency(cache, h.log)
		}
	}
}

func NewEmployeeHandler(svc services.EmployeeService, log *logger.Logger, opts ...EmployeeHandlerOption) *EmployeeHandler {
	if log == nil {
		log = logger.Nop()
	}
	h := &EmployeeHandler{svc: svc, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *EmployeeHandler) SetupRoutes(app *fiber.App) {
	save := []fiber.Handler{h.SaveEmployee}
	if h.idempotency != nil {
		save = append([]fiber.Handler{h.idempotency}, save...)
	}
	app.Post("/save-employee", save...)

	app.Get("/employees", h.ListEmployees)
	app.Get("/employees/:id", h.GetEmployee)

	app.Post("/get-documents", h.GetDocuments)
	app.Get("/download/:filename", h.Download)

	app.Get("/health", h.Health)
}

func (h *EmployeeHandler) fail(ctx *fiber.Ctx, err error) error {
	status := utils.StatusFor(err)
	kv := []interface{}{"request_id", middleware.RequestID(ctx), "path", ctx.Path(), "error", err}
	if status >= fiber.StatusInternalServerError {
		h.log.Error("request failed", kv...)
	} else {
		h.log.Warn("request rejected", kv...)
	}
	return utils.HandleError(ctx, err, h.exposeErrors)
}

// SaveEmployee godoc
// @Summary Submit an onboarding form with its documents
// @Tags Employees
// @Accept multipart/form-data
// @Produce json
// @Param Idempotency-Key header string false "Replays the first successful response for a repeated key"
// @Success 201 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 500 {object} dto.APIError
// @Router /save-employee [post]
func (h *EmployeeHandler) SaveEmployee(ctx *fiber.Ctx) error {
	sub, err := ParseSubmission(ctx)
	if err != nil {
		return h.fail(ctx, err)
	}

	id, err := h.svc.SaveEmployee(ctx.UserContext(), sub)
	if err != nil {
		return h.fail(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, dto.SaveEmployeeResponse{EmployeeID: id})
}

// ListEmployees godoc
// @Summary List employees, newest first, with document URLs
// @Tags Employees
// @Produce json
// @Success 200 {object} dto.APISuccessAny
// @Failure 500 {object} dto.APIError
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(ctx *fiber.Ctx) error {
	views, err := h.svc.ListEmployees(ctx.UserContext(), ctx.BaseURL())
	if err != nil {
		return h.fail(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, views)
}

// GetEmployee godoc
// @Summary Get one employee with document URLs
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Invalid employee id")
	}

	view, err := h.svc.GetEmployee(ctx.UserContext(), uint(id), ctx.BaseURL())
	if err != nil {
		return h.fail(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, view)
}

// GetDocuments godoc
// @Summary List the stored documents of an employee by email
// @Tags Documents
// @Accept json
// @Produce json
// @Param body body dto.GetDocumentsRequest true "Employee email"
// @Success 200 {object} dto.APISuccessAny
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Router /get-documents [post]
func (h *EmployeeHandler) GetDocuments(ctx *fiber.Ctx) error {
	var req dto.GetDocumentsRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
		}
	}

	docs, err := h.svc.GetDocuments(ctx.UserContext(), req.EmpEmail, ctx.BaseURL())
	if err != nil {
		return h.fail(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, docs)
}

// Download godoc
// @Summary Download a stored document as an attachment
// @Tags Documents
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} dto.APIError
// @Router /download/{filename} [get]
func (h *EmployeeHandler) Download(ctx *fiber.Ctx) error {
	name := ctx.Params("filename")
	b, err := h.svc.ReadDocument(ctx.UserContext(), name)
	if err != nil {
		return h.fail(ctx, err)
	}

	ctx.Attachment(name)
	if filepath.Ext(name) == "" {
		ctx.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	}
	return ctx.Send(b)
}

// Health godoc
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.APIMessage
// @Router /health [get]
func (h *EmployeeHandler) Health(ctx *fiber.Ctx) error {
	return utils.ResponseMessage(ctx, fiber.StatusOK, "Server is running")
}
