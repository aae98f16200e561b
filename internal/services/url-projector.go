package services

import (
	"strings"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
	"github.com/SundayYogurt/onboarding_service/internal/dto"
)

// ProjectURL turns a stored document ref into an absolute URL under baseURL.
// Refs that are already absolute are returned unchanged.
func ProjectURL(baseURL, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return strings.TrimRight(baseURL, "/") + ref
}

func projectPtr(baseURL string, ref *string) *string {
	if ref == nil || *ref == "" {
		return nil
	}
	u := ProjectURL(baseURL, *ref)
	return &u
}

// ProjectEmployee adds a *_url companion for every document the employee has.
// The stored refs themselves are left as they are.
func ProjectEmployee(emp domain.Employee, baseURL string) dto.EmployeeView {
	view := dto.EmployeeView{
		Employee:          emp,
		EmpProfilePicURL:  projectPtr(baseURL, emp.EmpProfilePic),
		EmpSscDocURL:      projectPtr(baseURL, emp.EmpSscDoc),
		EmpInterDocURL:    projectPtr(baseURL, emp.EmpInterDoc),
		EmpGradDocURL:     projectPtr(baseURL, emp.EmpGradDoc),
		ResumeURL:         projectPtr(baseURL, emp.Resume),
		IDProofURL:        projectPtr(baseURL, emp.IDProof),
		SignedDocumentURL: projectPtr(baseURL, emp.SignedDocument),
	}

	for _, rec := range emp.Employments() {
		view.PreviousEmployments = append(view.PreviousEmployments, dto.EmploymentView{
			EmploymentRecord:         rec,
			OfferLetterURL:           projectPtr(baseURL, &rec.OfferLetter),
			RelievingLetterURL:       projectPtr(baseURL, &rec.RelievingLetter),
			ExperienceCertificateURL: projectPtr(baseURL, rec.ExperienceCertificate),
		})
	}
	for _, rec := range emp.Educations() {
		view.AdditionalEducations = append(view.AdditionalEducations, dto.EducationView{
			EducationRecord: rec,
			CertificateURL:  projectPtr(baseURL, &rec.Certificate),
		})
	}
	return view
}
