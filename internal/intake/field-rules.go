package intake

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FieldRule describes how one form field is checked. Pattern and Check are
// applied only to non-blank values; Required rejects blank ones.
type FieldRule struct {
	Field    string
	Required bool
	Pattern  *regexp.Regexp
	Check    func(string) bool
	Message  string
}

var (
	lettersPattern  = regexp.MustCompile(`^[A-Za-z]+(?: [A-Za-z]+)*$`)
	companyPattern  = regexp.MustCompile(`^[A-Za-z]+(?:[ -][A-Za-z]+)*$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9]+([._-][a-zA-Z0-9]+)*@(gmail|outlook)\.(com|in|org|co)$`)
	genderPattern   = regexp.MustCompile(`^(Male|Female|Others)$`)
	maritalPattern  = regexp.MustCompile(`^(Single|Married|Divorced|Widowed)$`)
	mobilePattern   = regexp.MustCompile(`^[6789]\d{9}$`)
	aadhaarPattern  = regexp.MustCompile(`^\d{12}$`)
	panPattern      = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	addressPattern  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\s,.\-/#]+[A-Za-z0-9]$`)
	zipcodePattern  = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	accountPattern  = regexp.MustCompile(`^[0-9]{9,18}$`)
	ifscPattern     = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	experiencePat   = regexp.MustCompile(`^(Fresher|Experienced)$`)
	yearPattern     = regexp.MustCompile(`^(19|20)\d{2}$`)
	gradePattern    = regexp.MustCompile(`^\d{1,3}(\.\d)?%?$`)
	relationPattern = regexp.MustCompile(`^(Parent|Spouse|Sibling|Friend|Other)$`)
	termsPattern    = regexp.MustCompile(`^(true|on)$`)
	uanPattern      = regexp.MustCompile(`^\d{12}$`)
	pfPattern       = regexp.MustCompile(`^[A-Z0-9]{17}$`)
	yearsPattern    = regexp.MustCompile(`^\d{1,2}(\.\d{1,2})?$`)
)

// notAllZeros rejects account numbers made only of zeros.
func notAllZeros(v string) bool {
	return strings.Trim(v, "0") != ""
}

// gradeInRange accepts a 4-100 percentage or a 4.0-10.0 GPA.
func gradeInRange(v string) bool {
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
	if err != nil {
		return false
	}
	return f >= 4 && f <= 100
}

// yearsInRange accepts 0.1 to 40 years of experience.
func yearsInRange(v string) bool {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f >= 0.1 && f <= 40
}

// RequiredFieldRules are evaluated in order; the first failure wins.
var RequiredFieldRules = []FieldRule{
	{Field: "emp_name", Required: true, Pattern: lettersPattern, Message: "Name must contain only letters separated by single spaces"},
	{Field: "emp_email", Required: true, Pattern: emailPattern, Message: "Invalid email format"},
	{Field: "emp_gender", Required: true, Pattern: genderPattern, Message: "Invalid gender"},
	{Field: "emp_marital_status", Required: true, Pattern: maritalPattern, Message: "Invalid marital status"},
	{Field: "emp_dob", Required: true},
	{Field: "emp_mobile", Required: true, Pattern: mobilePattern, Message: "Invalid 10-digit mobile number"},
	{Field: "emp_aadhaar", Required: true, Pattern: aadhaarPattern, Message: "Aadhaar must be 12 digits"},
	{Field: "emp_pan", Required: true, Pattern: panPattern, Message: "PAN must be 10 alphanumeric characters"},
	{Field: "emp_address", Required: true, Pattern: addressPattern, Message: "Invalid address"},
	{Field: "emp_city", Required: true, Pattern: lettersPattern, Message: "Invalid city name"},
	{Field: "emp_state", Required: true, Pattern: lettersPattern, Message: "Invalid state"},
	{Field: "emp_zipcode", Required: true, Pattern: zipcodePattern, Message: "Invalid 6-digit zip code"},
	{Field: "emp_bank", Required: true, Pattern: lettersPattern, Message: "Invalid bank name"},
	{Field: "emp_account", Required: true, Pattern: accountPattern, Check: notAllZeros, Message: "Account number must be 9-18 digits"},
	{Field: "emp_ifsc", Required: true, Pattern: ifscPattern, Message: "Invalid IFSC code"},
	{Field: "emp_bank_branch", Required: true, Pattern: lettersPattern, Message: "Invalid branch location"},
	{Field: "emp_job_role", Required: true, Pattern: lettersPattern, Message: "Invalid job role"},
	{Field: "emp_department", Required: true, Pattern: lettersPattern, Message: "Invalid department"},
	{Field: "emp_experience_status", Required: true, Pattern: experiencePat, Message: "Invalid experience status"},
	{Field: "emp_joining_date", Required: true},
	{Field: "ssc_school", Required: true, Pattern: lettersPattern, Message: "Invalid school name"},
	{Field: "ssc_year", Required: true, Pattern: yearPattern, Message: "Invalid SSC year"},
	{Field: "ssc_grade", Required: true, Pattern: gradePattern, Check: gradeInRange, Message: "Invalid SSC grade (4-100% or 4.0-10.0)"},
	{Field: "inter_college", Required: true, Pattern: lettersPattern, Message: "Invalid college name"},
	{Field: "inter_year", Required: true, Pattern: yearPattern, Message: "Invalid intermediate year"},
	{Field: "inter_grade", Required: true, Pattern: gradePattern, Check: gradeInRange, Message: "Invalid intermediate grade (4-100% or 4.0-10.0)"},
	{Field: "inter_branch", Required: true, Pattern: lettersPattern, Message: "Invalid branch"},
	{Field: "grad_college", Required: true, Pattern: lettersPattern, Message: "Invalid college name"},
	{Field: "grad_year", Required: true, Pattern: yearPattern, Message: "Invalid graduation year"},
	{Field: "grad_grade", Required: true, Pattern: gradePattern, Check: gradeInRange, Message: "Invalid graduation grade (4-100% or 4.0-10.0)"},
	{Field: "grad_degree", Required: true, Pattern: lettersPattern, Message: "Invalid degree"},
	{Field: "grad_branch", Required: true, Pattern: lettersPattern, Message: "Invalid branch"},
	{Field: "primary_contact_name", Required: true, Pattern: lettersPattern, Message: "Invalid contact name"},
	{Field: "primary_contact_mobile", Required: true, Pattern: mobilePattern, Message: "Invalid 10-digit mobile number"},
	{Field: "primary_contact_relation", Required: true, Pattern: relationPattern, Message: "Invalid relation"},
	{Field: "emp_terms_accepted", Required: true, Pattern: termsPattern, Message: "Terms must be accepted"},
}

var OptionalFieldRules = []FieldRule{
	{Field: "emp_alt_mobile", Pattern: mobilePattern, Message: "Invalid 10-digit mobile number"},
	{Field: "primary_contact_email", Pattern: emailPattern, Message: "Invalid email format"},
	{Field: "secondary_contact_name", Pattern: lettersPattern, Message: "Invalid contact name"},
	{Field: "secondary_contact_mobile", Pattern: mobilePattern, Message: "Invalid 10-digit mobile number"},
	{Field: "secondary_contact_email", Pattern: emailPattern, Message: "Invalid email format"},
	{Field: "secondary_contact_relation", Pattern: relationPattern, Message: "Invalid relation"},
}

// Rules applied inside an employment slot; %d is the slot index.
var (
	companyNameRule = FieldRule{Field: "emp_company_name_%d", Required: true, Pattern: companyPattern, Message: "Company name must contain only letters, spaces or hyphens"}
	yearsRule       = FieldRule{Field: "emp_years_of_experience_%d", Required: true, Pattern: yearsPattern, Check: yearsInRange, Message: "Years of experience must be a decimal between 0.1 and 40"}
	uanRule         = FieldRule{Field: "emp_uan_%d", Required: true, Pattern: uanPattern, Message: "UAN must be 12 digits"}
	pfRule          = FieldRule{Field: "emp_pf_%d", Required: true, Pattern: pfPattern, Message: "PF number must be 17 alphanumeric characters"}
)

// Rules applied inside an extra education slot.
var (
	extraCollegeRule = FieldRule{Field: "extra_college_%d", Required: true, Pattern: lettersPattern, Message: "College name must contain only letters separated by single spaces"}
	extraGradeRule   = FieldRule{Field: "extra_grade_%d", Required: true, Pattern: gradePattern, Check: gradeInRange, Message: "Grade must be 4-100% or 4.0-10.0"}
	extraDegreeRule  = FieldRule{Field: "extra_degree_%d", Required: true, Pattern: lettersPattern, Message: "Degree must contain only letters separated by single spaces"}
	extraBranchRule  = FieldRule{Field: "extra_branch_%d", Required: true, Pattern: lettersPattern, Message: "Branch must contain only letters separated by single spaces"}
)
