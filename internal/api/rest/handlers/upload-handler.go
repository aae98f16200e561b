package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
	"github.com/SundayYogurt/onboarding_service/internal/dto"
	"github.com/SundayYogurt/onboarding_service/pkg/utils"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
)

const maxFileSize = 2 * 1024 * 1024 // 2MB

var (
	pdfOnly   = []string{"application/pdf"}
	imageOnly = []string{"image/jpeg", "image/png"}
	pdfImage  = []string{"application/pdf", "image/jpeg", "image/png"}
)

// allowedUploads lists every accepted file field with its permitted types.
var allowedUploads = map[string][]string{
	"emp_profile_pic": imageOnly,
	"emp_ssc_doc":     pdfOnly,
	"emp_inter_doc":   pdfOnly,
	"emp_grad_doc":    pdfOnly,
	"resume":          pdfOnly,
	"id_proof":        pdfImage,
	"signed_document": pdfOnly,

	"emp_offer_letter_1":           pdfOnly,
	"emp_offer_letter_2":           pdfOnly,
	"emp_offer_letter_3":           pdfOnly,
	"emp_relieving_letter_1":       pdfOnly,
	"emp_relieving_letter_2":       pdfOnly,
	"emp_relieving_letter_3":       pdfOnly,
	"emp_experience_certificate_1": pdfOnly,
	"emp_experience_certificate_2": pdfOnly,
	"emp_experience_certificate_3": pdfOnly,

	"emp_extra_doc_4": pdfOnly,
	"emp_extra_doc_5": pdfOnly,
}

// ParseSubmission reads a multipart onboarding form. A request that is not
// multipart yields an empty submission, so validation reports what is missing.
func ParseSubmission(ctx *fiber.Ctx) (*dto.Submission, error) {
	sub := dto.NewSubmission()
	if !strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return sub, nil
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, &domain.UploadError{Reason: "Malformed multipart form data"}
	}

	for field, values := range form.Value {
		if len(values) > 0 {
			sub.Fields[field] = values[0]
		}
	}

	for field, headers := range form.File {
		allowed, ok := allowedUploads[field]
		if !ok || len(headers) > 1 {
			return nil, &domain.UploadError{Field: field, Reason: "Unexpected field: " + field}
		}
		if len(headers) == 0 {
			continue
		}
		f, err := readUpload(field, headers[0], allowed)
		if err != nil {
			return nil, err
		}
		sub.Files[field] = f
	}
	return sub, nil
}

func readUpload(field string, fh *multipart.FileHeader, allowed []string) (*dto.UploadedFile, error) {
	typeErr := &domain.UploadError{
		Field:  field,
		Reason: fmt.Sprintf("Invalid file type for %s. Allowed types: %s", field, strings.Join(allowed, ", ")),
	}

	declared := strings.ToLower(strings.TrimSpace(strings.Split(fh.Header.Get("Content-Type"), ";")[0]))
	if !mimetype.EqualsAny(declared, allowed...) {
		return nil, typeErr
	}
	if fh.Size > maxFileSize {
		return nil, tooLarge(field)
	}

	r, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", field, err)
	}
	defer r.Close()

	b, err := utils.ReadAllLimit(r, maxFileSize)
	if err != nil {
		if errors.Is(err, utils.ErrTooLarge) {
			return nil, tooLarge(field)
		}
		return nil, fmt.Errorf("read upload %s: %w", field, err)
	}

	if !sniffAllowed(b, allowed) {
		return nil, typeErr
	}

	return &dto.UploadedFile{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: declared,
		Bytes:       b,
	}, nil
}

// sniffAllowed checks the detected content type, or any of its parents,
// against the allowed list.
func sniffAllowed(b []byte, allowed []string) bool {
	for m := mimetype.Detect(b); m != nil; m = m.Parent() {
		if mimetype.EqualsAny(m.String(), allowed...) {
			return true
		}
	}
	return false
}

func tooLarge(field string) error {
	return &domain.UploadError{Field: field, Reason: "File too large for " + field + " (max 2MB)"}
}
