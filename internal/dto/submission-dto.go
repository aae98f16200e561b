package dto

import "strings"

// UploadedFile is one accepted multipart file held in memory.
type UploadedFile struct {
	Field       string
	Filename    string
	ContentType string
	Bytes       []byte
}

// Submission is the parsed body of POST /save-employee.
type Submission struct {
	Fields map[string]string
	Files  map[string]*UploadedFile
}

func NewSubmission() *Submission {
	return &Submission{
		Fields: map[string]string{},
		Files:  map[string]*UploadedFile{},
	}
}

func (s *Submission) Value(field string) string {
	return s.Fields[field]
}

func (s *Submission) HasFile(field string) bool {
	f, ok := s.Files[field]
	return ok && f != nil && len(f.Bytes) > 0
}

func (s *Submission) File(field string) *UploadedFile {
	return s.Files[field]
}

// Email returns the trimmed applicant email, used for logging context.
func (s *Submission) Email() string {
	return strings.TrimSpace(s.Fields["emp_email"])
}

type SaveEmployeeResponse struct {
	EmployeeID uint `json:"employeeId"`
}
