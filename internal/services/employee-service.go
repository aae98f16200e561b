package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
	"github.com/SundayYogurt/onboarding_service/internal/dto"
	"github.com/SundayYogurt/onboarding_service/internal/intake"
	"github.com/SundayYogurt/onboarding_service/internal/interfaces"
	"github.com/SundayYogurt/onboarding_service/internal/repository"
	"github.com/SundayYogurt/onboarding_service/pkg/logger"
	"github.com/SundayYogurt/onboarding_service/pkg/utils"
	"github.com/gabriel-vasile/mimetype"
)

const (
	profilePicField   = "emp_profile_pic"
	profilePicWidth   = 800
	profilePicQuality = 85
)

type EmployeeService interface {
	SaveEmployee(ctx context.Context, sub *dto.Submission) (uint, error)

	ListEmployees(ctx context.Context, baseURL string) ([]dto.EmployeeView, error)
	GetEmployee(ctx context.Context, id uint, baseURL string) (*dto.EmployeeView, error)

	GetDocuments(ctx context.Context, email, baseURL string) (map[string]dto.DocumentLink, error)
	ReadDocument(ctx context.Context, filename string) ([]byte, error)
}

type employeeService struct {
	repo      repository.EmployeeRepository
	store     interfaces.DocumentStore
	validator *intake.Validator
	producer  interfaces.ProducerHandler
	log       *logger.Logger
	now       func() time.Time
}

// NewEmployeeService wires the submission pipeline. producer may be nil, in
// which case no onboarding event is published.
func NewEmployeeService(
	repo repository.EmployeeRepository,
	store interfaces.DocumentStore,
	validator *intake.Validator,
	producer interfaces.ProducerHandler,
	log *logger.Logger,
	now func() time.Time,
) EmployeeService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &employeeService{
		repo:      repo,
		store:     store,
		validator: validator,
		producer:  producer,
		log:       log,
		now:       now,
	}
}

// pendingFile is an upload ready to be written under its final name.
type pendingFile struct {
	field       string
	name        string
	contentType string
	bytes       []byte
}

func (s *employeeService) SaveEmployee(ctx context.Context, sub *dto.Submission) (uint, error) {
	plan, err := s.validator.Validate(sub)
	if err != nil {
		return 0, err
	}

	files, err := s.prepareFiles(sub, plan.FileFields())
	if err != nil {
		return 0, err
	}

	var (
		written []string
		id      uint
	)
	err = s.repo.Transaction(ctx, func(tx repository.EmployeeRepository) error {
		emp := plan.Employee
		field, err := tx.FindConflict(ctx, emp.EmpEmail, emp.EmpAadhaar, emp.EmpPan)
		if err != nil {
			return err
		}
		if field != "" {
			return &domain.ConflictError{Field: field}
		}

		refs := make(map[string]string, len(files))
		for _, f := range files {
			ref, err := s.store.Put(ctx, f.name, f.contentType, f.bytes)
			if err != nil {
				return fmt.Errorf("store %s: %w", f.field, err)
			}
			written = append(written, ref)
			refs[f.field] = ref
		}

		row := plan.Build(refs)
		if err := tx.Create(ctx, &row); err != nil {
			return err
		}
		id = row.ID
		return nil
	})
	if err != nil {
		s.cleanup(context.WithoutCancel(ctx), written)
		return 0, err
	}

	s.log.Info("employee saved", "employee_id", id, "files", len(written))
	s.publishOnboarded(ctx, id, plan.Employee)
	return id, nil
}

// prepareFiles names every referenced upload and normalises the profile picture.
func (s *employeeService) prepareFiles(sub *dto.Submission, fields []string) ([]pendingFile, error) {
	out := make([]pendingFile, 0, len(fields))
	for _, field := range fields {
		f := sub.File(field)
		if f == nil {
			continue
		}
		b, contentType, ext := f.Bytes, f.ContentType, extensionFor(f)

		if field == profilePicField {
			norm, err := utils.NormalizeToJPG(b, profilePicWidth, profilePicQuality)
			if err != nil {
				return nil, &domain.UploadError{Field: field, Reason: "Invalid image for " + field}
			}
			b, contentType, ext = norm, "image/jpeg", ".jpg"
		}

		out = append(out, pendingFile{
			field:       field,
			name:        s.newFileName(ext),
			contentType: contentType,
			bytes:       b,
		})
	}
	return out, nil
}

func extensionFor(f *dto.UploadedFile) string {
	if ext := strings.ToLower(filepath.Ext(f.Filename)); ext != "" && len(ext) <= 6 {
		return ext
	}
	if m := mimetype.Lookup(f.ContentType); m != nil {
		return m.Extension()
	}
	return ""
}

// newFileName returns <unix millis>-<random below 1e9><ext>.
func (s *employeeService) newFileName(ext string) string {
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + strconv.Itoa(rand.Intn(1_000_000_000)) + ext
}

func (s *employeeService) cleanup(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := s.store.Delete(ctx, ref); err != nil {
			s.log.Warn("cleanup of stored file failed", "ref", ref, "error", err)
		}
	}
	if len(refs) > 0 {
		s.log.Info("rolled back stored files", "count", len(refs))
	}
}

func (s *employeeService) publishOnboarded(ctx context.Context, id uint, emp domain.Employee) {
	if s.producer == nil {
		return
	}
	event := dto.EmployeeOnboardedEvent{
		EmployeeID:  id,
		Name:        emp.EmpName,
		Email:       emp.EmpEmail,
		JobRole:     emp.EmpJobRole,
		Department:  emp.EmpDepartment,
		JoiningDate: time.Time(emp.EmpJoiningDate).Format("2006-01-02"),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("marshal onboarded event failed", "employee_id", id, "error", err)
		return
	}
	key := []byte(strconv.FormatUint(uint64(id), 10))
	if err := s.producer.PublishMessage(context.WithoutCancel(ctx), key, payload); err != nil {
		s.log.Warn("publish onboarded event failed", "employee_id", id, "error", err)
	}
}

func (s *employeeService) ListEmployees(ctx context.Context, baseURL string) ([]dto.EmployeeView, error) {
	emps, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	views := make([]dto.EmployeeView, 0, len(emps))
	for _, e := range emps {
		views = append(views, ProjectEmployee(e, baseURL))
	}
	return views, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, id uint, baseURL string) (*dto.EmployeeView, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := ProjectEmployee(*emp, baseURL)
	return &view, nil
}

type documentSlot struct {
	key   string
	label string
	ref   *string
}

func documentSlots(emp *domain.Employee) []documentSlot {
	slots := []documentSlot{
		{"emp_profile_pic", "Profile Picture", emp.EmpProfilePic},
		{"emp_ssc_doc", "SSC Document", emp.EmpSscDoc},
		{"emp_inter_doc", "Intermediate Document", emp.EmpInterDoc},
		{"emp_grad_doc", "Graduation Document", emp.EmpGradDoc},
		{"resume", "Resume", emp.Resume},
		{"id_proof", "ID Proof", emp.IDProof},
		{"signed_document", "Signed Document", emp.SignedDocument},
	}
	for i, rec := range emp.Employments() {
		n := i + 1
		offer, relieving := rec.OfferLetter, rec.RelievingLetter
		slots = append(slots,
			documentSlot{fmt.Sprintf("emp_offer_letter_%d", n), fmt.Sprintf("Offer Letter %d", n), &offer},
			documentSlot{fmt.Sprintf("emp_relieving_letter_%d", n), fmt.Sprintf("Relieving Letter %d", n), &relieving},
			documentSlot{fmt.Sprintf("emp_experience_certificate_%d", n), fmt.Sprintf("Experience Certificate %d", n), rec.ExperienceCertificate},
		)
	}
	for i, rec := range emp.Educations() {
		cert := rec.Certificate
		slots = append(slots, documentSlot{
			fmt.Sprintf("emp_extra_doc_%d", i+4),
			fmt.Sprintf("Additional Education Certificate %d", i+1),
			&cert,
		})
	}
	return slots
}

// GetDocuments lists the employee's documents that are still present in storage.
func (s *employeeService) GetDocuments(ctx context.Context, email, baseURL string) (map[string]dto.DocumentLink, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.NewValidationError("empEmail", "Employee email is required")
	}

	emp, err := s.repo.FindByEmail(ctx, intake.Escape(email))
	if err != nil {
		return nil, err
	}

	docs := map[string]dto.DocumentLink{}
	for _, slot := range documentSlots(emp) {
		if slot.ref == nil || *slot.ref == "" {
			continue
		}
		ok, err := s.store.Exists(ctx, *slot.ref)
		if err != nil {
			s.log.Warn("document existence check failed", "slot", slot.key, "error", err)
			continue
		}
		if !ok {
			s.log.Warn("document missing from storage", "slot", slot.key, "ref", *slot.ref)
			continue
		}
		docs[slot.key] = dto.DocumentLink{
			URL:      ProjectURL(baseURL, *slot.ref),
			Name:     slot.label,
			Filename: path.Base(*slot.ref),
		}
	}
	return docs, nil
}

func (s *employeeService) ReadDocument(ctx context.Context, filename string) ([]byte, error) {
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return nil, domain.ErrDocumentNotFound
	}
	b, err := s.store.Read(ctx, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	return b, nil
}
