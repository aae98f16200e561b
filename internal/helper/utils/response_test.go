package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		expose    bool
		wantCode  int
		wantError string
		wantTag   string
	}{
		{"validation", domain.NewValidationError("emp_pan", "Invalid PAN format for emp_pan"), false, 400, "Invalid PAN format for emp_pan", ""},
		{"wrapped conflict", fmt.Errorf("insert: %w", &domain.ConflictError{Field: "Aadhaar"}), false, 400, "Aadhaar already exists", ""},
		{"upload", &domain.UploadError{Field: "resume", Reason: "File too large"}, false, 400, "File too large", CodeUploadError},
		{"employee not found", domain.ErrEmployeeNotFound, false, 404, "Employee not found", ""},
		{"file not found", domain.ErrDocumentNotFound, false, 404, "File not found", ""},
		{"fiber error", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Request Entity Too Large"), false, 413, "Request Entity Too Large", ""},
		{"internal hidden", errors.New("pq: connection refused"), false, 500, "Internal server error", CodeServerError},
		{"internal exposed", errors.New("pq: connection refused"), true, 500, "pq: connection refused", CodeServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return HandleError(c, tc.err, tc.expose)
			})
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.wantCode {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.wantCode)
			}
			if got := StatusFor(tc.err); got != tc.wantCode {
				t.Fatalf("StatusFor = %d, want %d", got, tc.wantCode)
			}

			raw, _ := io.ReadAll(resp.Body)
			var body struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
				Code    string `json:"code"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Fatalf("decode %s: %v", raw, err)
			}
			if body.Success || body.Error != tc.wantError || body.Code != tc.wantTag {
				t.Fatalf("body = %+v", body)
			}
		})
	}
}

func TestResponseSuccess(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ResponseSuccess(c, fiber.StatusCreated, fiber.Map{"employeeId": 3})
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 201 || string(raw) != `{"data":{"employeeId":3},"success":true}` {
		t.Fatalf("got %d %s", resp.StatusCode, raw)
	}
}
