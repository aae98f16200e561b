package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ExperienceFresher     = "Fresher"
	ExperienceExperienced = "Experienced"
)

// Employee is one onboarded employee. Rows are written once and never updated.
type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// --- Personal ---
	EmpName          string         `gorm:"type:varchar(255);not null" json:"emp_name"`
	EmpEmail         string         `gorm:"type:varchar(255);not null;uniqueIndex:uidx_employees_emp_email" json:"emp_email"`
	EmpGender        string         `gorm:"type:varchar(20);not null" json:"emp_gender"`
	EmpMaritalStatus string         `gorm:"type:varchar(20);not null" json:"emp_marital_status"`
	EmpDob           datatypes.Date `gorm:"not null" json:"emp_dob"`
	EmpMobile        string         `gorm:"type:varchar(20);not null" json:"emp_mobile"`
	EmpAltMobile     *string        `gorm:"type:varchar(20)" json:"emp_alt_mobile"`
	EmpAadhaar       string         `gorm:"type:varchar(20);not null;uniqueIndex:uidx_employees_emp_aadhaar" json:"emp_aadhaar"`
	EmpPan           string         `gorm:"type:varchar(20);not null;uniqueIndex:uidx_employees_emp_pan" json:"emp_pan"`
	EmpAddress       string         `gorm:"type:text;not null" json:"emp_address"`
	EmpCity          string         `gorm:"type:varchar(100);not null" json:"emp_city"`
	EmpState         string         `gorm:"type:varchar(100);not null" json:"emp_state"`
	EmpZipcode       string         `gorm:"type:varchar(20);not null" json:"emp_zipcode"`

	// --- Bank ---
	EmpBank       string `gorm:"type:varchar(255);not null" json:"emp_bank"`
	EmpAccount    string `gorm:"type:varchar(50);not null" json:"emp_account"`
	EmpIfsc       string `gorm:"type:varchar(20);not null" json:"emp_ifsc"`
	EmpBankBranch string `gorm:"type:varchar(100);not null" json:"emp_bank_branch"`

	// --- Job ---
	EmpJobRole          string         `gorm:"type:varchar(255);not null" json:"emp_job_role"`
	EmpDepartment       string         `gorm:"type:varchar(255);not null" json:"emp_department"`
	EmpExperienceStatus string         `gorm:"type:varchar(20);not null" json:"emp_experience_status"`
	EmpJoiningDate      datatypes.Date `gorm:"not null" json:"emp_joining_date"`

	// --- Education ---
	SscSchool    string `gorm:"type:varchar(255);not null" json:"ssc_school"`
	SscYear      int    `gorm:"not null" json:"ssc_year"`
	SscGrade     string `gorm:"type:varchar(20);not null" json:"ssc_grade"`
	InterCollege string `gorm:"type:varchar(255);not null" json:"inter_college"`
	InterYear    int    `gorm:"not null" json:"inter_year"`
	InterGrade   string `gorm:"type:varchar(20);not null" json:"inter_grade"`
	InterBranch  string `gorm:"type:varchar(100);not null" json:"inter_branch"`
	GradCollege  string `gorm:"type:varchar(255);not null" json:"grad_college"`
	GradYear     int    `gorm:"not null" json:"grad_year"`
	GradGrade    string `gorm:"type:varchar(20);not null" json:"grad_grade"`
	GradDegree   string `gorm:"type:varchar(100);not null" json:"grad_degree"`
	GradBranch   string `gorm:"type:varchar(100);not null" json:"grad_branch"`

	// --- Documents (relative path or absolute URL) ---
	EmpProfilePic  *string `gorm:"type:varchar(255)" json:"emp_profile_pic"`
	EmpSscDoc      *string `gorm:"type:varchar(255)" json:"emp_ssc_doc"`
	EmpInterDoc    *string `gorm:"type:varchar(255)" json:"emp_inter_doc"`
	EmpGradDoc     *string `gorm:"type:varchar(255)" json:"emp_grad_doc"`
	Resume         *string `gorm:"type:varchar(255)" json:"resume"`
	IDProof        *string `gorm:"column:id_proof;type:varchar(255)" json:"id_proof"`
	SignedDocument *string `gorm:"type:varchar(255)" json:"signed_document"`

	EmpTermsAccepted bool `gorm:"not null" json:"emp_terms_accepted"`

	// --- Emergency contacts ---
	PrimaryContactName       string  `gorm:"type:varchar(255);not null" json:"primary_contact_name"`
	PrimaryContactMobile     string  `gorm:"type:varchar(20);not null" json:"primary_contact_mobile"`
	PrimaryContactRelation   string  `gorm:"type:varchar(50);not null" json:"primary_contact_relation"`
	PrimaryContactEmail      *string `gorm:"type:varchar(255)" json:"primary_contact_email"`
	SecondaryContactName     *string `gorm:"type:varchar(255)" json:"secondary_contact_name"`
	SecondaryContactMobile   *string `gorm:"type:varchar(20)" json:"secondary_contact_mobile"`
	SecondaryContactRelation *string `gorm:"type:varchar(50)" json:"secondary_contact_relation"`
	SecondaryContactEmail    *string `gorm:"type:varchar(255)" json:"secondary_contact_email"`

	// --- Embedded sub-records (NULL when empty) ---
	PreviousEmployments  *datatypes.JSONType[[]EmploymentRecord] `json:"previous_employments"`
	AdditionalEducations *datatypes.JSONType[[]EducationRecord]  `json:"additional_educations"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Employee) TableName() string {
	return "employees"
}

type EmploymentRecord struct {
	CompanyName           string  `json:"company_name"`
	YearsOfExperience     float64 `json:"years_of_experience"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	UAN                   string  `json:"uan"`
	PF                    string  `json:"pf"`
	OfferLetter           string  `json:"offer_letter"`
	RelievingLetter       string  `json:"relieving_letter"`
	ExperienceCertificate *string `json:"experience_certificate"`
}

type EducationRecord struct {
	College     string `json:"college"`
	Year        int    `json:"year"`
	Grade       string `json:"grade"`
	Degree      string `json:"degree"`
	Branch      string `json:"branch"`
	Certificate string `json:"certificate"`
}

// Employments returns the decoded employment history, nil when none was stored.
func (e *Employee) Employments() []EmploymentRecord {
	if e.PreviousEmployments == nil {
		return nil
	}
	return e.PreviousEmployments.Data()
}

// Educations returns the decoded additional educations, nil when none was stored.
func (e *Employee) Educations() []EducationRecord {
	if e.AdditionalEducations == nil {
		return nil
	}
	return e.AdditionalEducations.Data()
}

// SetEmployments stores list, or NULL when it is empty.
func (e *Employee) SetEmployments(list []EmploymentRecord) {
	if len(list) == 0 {
		e.PreviousEmployments = nil
		return
	}
	v := datatypes.NewJSONType(list)
	e.PreviousEmployments = &v
}

// SetEducations stores list, or NULL when it is empty.
func (e *Employee) SetEducations(list []EducationRecord) {
	if len(list) == 0 {
		e.AdditionalEducations = nil
		return
	}
	v := datatypes.NewJSONType(list)
	e.AdditionalEducations = &v
}
