package api

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterSwaggerServesDoc(t *testing.T) {
	app := fiber.New()
	RegisterSwagger(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/swagger/doc.json", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status: got %d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	body := string(b)
	for _, route := range []string{"/save-employee", "/employees", "/employees/{id}", "/get-documents", "/download/{filename}", "/health"} {
		if !strings.Contains(body, `"`+route+`"`) {
			t.Fatalf("doc.json missing %s", route)
		}
	}
}
