package dto

import "github.com/SundayYogurt/onboarding_service/internal/domain"

// EmployeeView is an employee row plus absolute URLs for every stored document.
type EmployeeView struct {
	domain.Employee

	EmpProfilePicURL  *string `json:"emp_profile_pic_url,omitempty"`
	EmpSscDocURL      *string `json:"emp_ssc_doc_url,omitempty"`
	EmpInterDocURL    *string `json:"emp_inter_doc_url,omitempty"`
	EmpGradDocURL     *string `json:"emp_grad_doc_url,omitempty"`
	ResumeURL         *string `json:"resume_url,omitempty"`
	IDProofURL        *string `json:"id_proof_url,omitempty"`
	SignedDocumentURL *string `json:"signed_document_url,omitempty"`

	PreviousEmployments  []EmploymentView `json:"previous_employments"`
	AdditionalEducations []EducationView  `json:"additional_educations"`
}

type EmploymentView struct {
	domain.EmploymentRecord

	OfferLetterURL           *string `json:"offer_letter_url,omitempty"`
	RelievingLetterURL       *string `json:"relieving_letter_url,omitempty"`
	ExperienceCertificateURL *string `json:"experience_certificate_url,omitempty"`
}

type EducationView struct {
	domain.EducationRecord

	CertificateURL *string `json:"certificate_url,omitempty"`
}
