package intake

import (
	"strconv"
	"strings"
	"time"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
	"gorm.io/datatypes"
)

// Profile selects how strict document requirements are.
type Profile string

const (
	ProfileStrict  Profile = "strict"
	ProfileRelaxed Profile = "relaxed"
)

func ParseProfile(s string) Profile {
	if strings.EqualFold(strings.TrimSpace(s), string(ProfileRelaxed)) {
		return ProfileRelaxed
	}
	return ProfileStrict
}

// DocumentFields are the top-level document slots of an employee.
var DocumentFields = []string{
	"emp_profile_pic", "emp_ssc_doc", "emp_inter_doc", "emp_grad_doc",
	"resume", "id_proof", "signed_document",
}

var baseDocuments = []string{
	"emp_ssc_doc", "emp_inter_doc", "emp_grad_doc", "resume", "id_proof", "signed_document",
}

// Plan is a fully validated submission waiting for its files to be stored.
type Plan struct {
	Employee    domain.Employee
	Documents   []string
	Employments []EmploymentEntry
	Educations  []EducationEntry
}

// FileFields lists every upload the plan references, top-level documents first.
func (p *Plan) FileFields() []string {
	out := append([]string(nil), p.Documents...)
	for _, e := range p.Employments {
		out = append(out, e.OfferLetterField, e.RelievingLetterField)
		if e.CertificateField != "" {
			out = append(out, e.CertificateField)
		}
	}
	for _, e := range p.Educations {
		out = append(out, e.CertificateField)
	}
	return out
}

// Build returns the employee row with every file field replaced by its
// stored reference from refs.
func (p *Plan) Build(refs map[string]string) domain.Employee {
	emp := p.Employee
	ref := func(field string) *string {
		v, ok := refs[field]
		if !ok || v == "" {
			return nil
		}
		return &v
	}

	emp.EmpProfilePic = ref("emp_profile_pic")
	emp.EmpSscDoc = ref("emp_ssc_doc")
	emp.EmpInterDoc = ref("emp_inter_doc")
	emp.EmpGradDoc = ref("emp_grad_doc")
	emp.Resume = ref("resume")
	emp.IDProof = ref("id_proof")
	emp.SignedDocument = ref("signed_document")

	var employments []domain.EmploymentRecord
	for _, e := range p.Employments {
		rec := e.Record
		rec.OfferLetter = refs[e.OfferLetterField]
		rec.RelievingLetter = refs[e.RelievingLetterField]
		if e.CertificateField != "" {
			rec.ExperienceCertificate = ref(e.CertificateField)
		}
		employments = append(employments, rec)
	}
	emp.SetEmployments(employments)

	var educations []domain.EducationRecord
	for _, e := range p.Educations {
		rec := e.Record
		rec.Certificate = refs[e.CertificateField]
		educations = append(educations, rec)
	}
	emp.SetEducations(educations)
	return emp
}

// Validator turns a parsed form into a Plan or the first validation error.
type Validator struct {
	profile Profile
	now     func() time.Time
}

func NewValidator(profile Profile, now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{profile: profile, now: now}
}

func (v *Validator) Validate(form Form) (*Plan, error) {
	if err := ValidateFields(form, RequiredFieldRules); err != nil {
		return nil, err
	}
	if err := ValidateFields(form, OptionalFieldRules); err != nil {
		return nil, err
	}

	tl := NewTimeline(v.now())
	dob, err := tl.CheckDOB(form.Value("emp_dob"))
	if err != nil {
		return nil, err
	}
	joining, err := tl.CheckJoiningDate(form.Value("emp_joining_date"))
	if err != nil {
		return nil, err
	}

	// patterns above guarantee four digits
	sscYear, _ := strconv.Atoi(form.Value("ssc_year"))
	interYear, _ := strconv.Atoi(form.Value("inter_year"))
	gradYear, _ := strconv.Atoi(form.Value("grad_year"))
	if err := tl.CheckSSCYear(dob, sscYear); err != nil {
		return nil, err
	}
	if err := tl.CheckInterYear(sscYear, interYear); err != nil {
		return nil, err
	}
	if err := tl.CheckGradYear(interYear, gradYear); err != nil {
		return nil, err
	}

	experienced := form.Value("emp_experience_status") == domain.ExperienceExperienced
	if err := v.checkRequiredFiles(form, experienced); err != nil {
		return nil, err
	}

	plan := &Plan{}
	if experienced {
		if plan.Employments, err = AssembleEmployments(form, tl, sscYear); err != nil {
			return nil, err
		}
	}
	if plan.Educations, err = AssembleEducations(form, tl, gradYear); err != nil {
		return nil, err
	}

	if err := checkDistinctMobiles(form); err != nil {
		return nil, err
	}

	for _, f := range DocumentFields {
		if form.HasFile(f) {
			plan.Documents = append(plan.Documents, f)
		}
	}
	plan.Employee = buildEmployee(form, dob, joining, sscYear, interYear, gradYear)
	return plan, nil
}

func (v *Validator) checkRequiredFiles(form Form, experienced bool) error {
	var required []string
	if v.profile == ProfileStrict {
		required = append(required, baseDocuments...)
	}
	if experienced {
		required = append(required, "emp_offer_letter_1", "emp_relieving_letter_1")
	}
	var missing []string
	for _, f := range required {
		if !form.HasFile(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing[0], "Missing required files: %s", strings.Join(missing, ", "))
	}
	return nil
}

func checkDistinctMobiles(form Form) error {
	seen := map[string]bool{}
	for _, f := range []string{"emp_mobile", "emp_alt_mobile", "primary_contact_mobile", "secondary_contact_mobile"} {
		m := strings.TrimSpace(form.Value(f))
		if m == "" {
			continue
		}
		if seen[m] {
			return domain.NewValidationError(f, "Duplicate mobile numbers detected")
		}
		seen[m] = true
	}
	return nil
}

func buildEmployee(form Form, dob, joining time.Time, sscYear, interYear, gradYear int) domain.Employee {
	val := func(f string) string { return Escape(form.Value(f)) }
	opt := func(f string) *string { return escapePtr(form.Value(f)) }

	return domain.Employee{
		EmpName:          val("emp_name"),
		EmpEmail:         val("emp_email"),
		EmpGender:        val("emp_gender"),
		EmpMaritalStatus: val("emp_marital_status"),
		EmpDob:           datatypesDate(dob),
		EmpMobile:        val("emp_mobile"),
		EmpAltMobile:     opt("emp_alt_mobile"),
		EmpAadhaar:       val("emp_aadhaar"),
		EmpPan:           val("emp_pan"),
		EmpAddress:       val("emp_address"),
		EmpCity:          val("emp_city"),
		EmpState:         val("emp_state"),
		EmpZipcode:       val("emp_zipcode"),

		EmpBank:       val("emp_bank"),
		EmpAccount:    val("emp_account"),
		EmpIfsc:       val("emp_ifsc"),
		EmpBankBranch: val("emp_bank_branch"),

		EmpJobRole:          val("emp_job_role"),
		EmpDepartment:       val("emp_department"),
		EmpExperienceStatus: val("emp_experience_status"),
		EmpJoiningDate:      datatypesDate(joining),

		SscSchool:    val("ssc_school"),
		SscYear:      sscYear,
		SscGrade:     val("ssc_grade"),
		InterCollege: val("inter_college"),
		InterYear:    interYear,
		InterGrade:   val("inter_grade"),
		InterBranch:  val("inter_branch"),
		GradCollege:  val("grad_college"),
		GradYear:     gradYear,
		GradGrade:    val("grad_grade"),
		GradDegree:   val("grad_degree"),
		GradBranch:   val("grad_branch"),

		EmpTermsAccepted: true,

		PrimaryContactName:       val("primary_contact_name"),
		PrimaryContactMobile:     val("primary_contact_mobile"),
		PrimaryContactRelation:   val("primary_contact_relation"),
		PrimaryContactEmail:      opt("primary_contact_email"),
		SecondaryContactName:     opt("secondary_contact_name"),
		SecondaryContactMobile:   opt("secondary_contact_mobile"),
		SecondaryContactRelation: opt("secondary_contact_relation"),
		SecondaryContactEmail:    opt("secondary_contact_email"),
	}
}

// datatypesDate keeps the calendar day of t and drops its zone.
func datatypesDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
