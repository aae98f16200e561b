package intake

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
)

type fakeForm struct {
	values map[string]string
	files  map[string]bool
}

func (f fakeForm) Value(field string) string { return f.values[field] }
func (f fakeForm) HasFile(field string) bool { return f.files[field] }

func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 10, 0, 0, 0, IST)
}

func validForm() fakeForm {
	return fakeForm{
		values: map[string]string{
			"emp_name":                 "John Doe",
			"emp_email":                "john.doe@gmail.com",
			"emp_gender":               "Male",
			"emp_marital_status":       "Single",
			"emp_dob":                  "1995-05-10",
			"emp_mobile":               "9876543210",
			"emp_aadhaar":              "123456789012",
			"emp_pan":                  "ABCDE1234F",
			"emp_address":              "12 MG Road, Sector 4",
			"emp_city":                 "Hyderabad",
			"emp_state":                "Telangana",
			"emp_zipcode":              "500001",
			"emp_bank":                 "State Bank",
			"emp_account":              "123456789",
			"emp_ifsc":                 "SBIN0001234",
			"emp_bank_branch":          "Madhapur",
			"emp_job_role":             "Engineer",
			"emp_department":           "Platform",
			"emp_experience_status":    "Fresher",
			"emp_joining_date":         "2025-07-01",
			"ssc_school":               "City School",
			"ssc_year":                 "2011",
			"ssc_grade":                "85%",
			"inter_college":            "City College",
			"inter_year":               "2013",
			"inter_grade":              "9.1",
			"inter_branch":             "MPC",
			"grad_college":             "State University",
			"grad_year":                "2017",
			"grad_grade":               "78",
			"grad_degree":              "BTech",
			"grad_branch":              "Computer Science",
			"primary_contact_name":     "Jane Doe",
			"primary_contact_mobile":   "9123456789",
			"primary_contact_relation": "Parent",
			"emp_terms_accepted":       "on",
		},
		files: map[string]bool{
			"emp_ssc_doc": true, "emp_inter_doc": true, "emp_grad_doc": true,
			"resume": true, "id_proof": true, "signed_document": true,
		},
	}
}

func withEmployment(f fakeForm, i string) {
	f.values["emp_experience_status"] = "Experienced"
	f.values["emp_company_name_"+i] = "Acme"
	f.values["emp_years_of_experience_"+i] = "2.5"
	f.values["emp_start_date_"+i] = "2021-01-01"
	f.values["emp_end_date_"+i] = "2022-06-01"
	f.values["emp_uan_"+i] = "123456789012"
	f.values["emp_pf_"+i] = "ABCDE1234567890FG"
	f.files["emp_offer_letter_"+i] = true
	f.files["emp_relieving_letter_"+i] = true
}

func validationField(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return ve.Field
}

func TestValidateFresher(t *testing.T) {
	v := NewValidator(ProfileStrict, fixedNow)
	plan, err := v.Validate(validForm())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if plan.Employee.EmpName != "John Doe" || plan.Employee.SscYear != 2011 {
		t.Fatalf("unexpected employee: %+v", plan.Employee)
	}
	if len(plan.Employments) != 0 || len(plan.Educations) != 0 {
		t.Fatalf("fresher should have no sections")
	}
	if got := len(plan.FileFields()); got != 6 {
		t.Fatalf("FileFields: got %d", got)
	}
	if !plan.Employee.EmpTermsAccepted {
		t.Fatalf("terms should be stored as accepted")
	}
}

func TestValidateFieldRules(t *testing.T) {
	cases := []struct {
		field string
		value string
	}{
		{"emp_name", "John  Doe"},
		{"emp_email", "john@yahoo.com"},
		{"emp_gender", "male"},
		{"emp_mobile", "5876543210"},
		{"emp_aadhaar", "12345"},
		{"emp_pan", "abcde1234f"},
		{"emp_zipcode", "012345"},
		{"emp_account", "000000000"},
		{"emp_ifsc", "SBIN1001234"},
		{"ssc_grade", "3.9"},
		{"inter_grade", "101"},
		{"emp_terms_accepted", "yes"},
		{"ssc_school", ""},
	}
	v := NewValidator(ProfileStrict, fixedNow)
	for _, tc := range cases {
		f := validForm()
		f.values[tc.field] = tc.value
		_, err := v.Validate(f)
		if got := validationField(t, err); got != tc.field {
			t.Fatalf("%s=%q: error on %s (%v)", tc.field, tc.value, got, err)
		}
	}
}

func TestOptionalFieldsSkippedWhenAbsent(t *testing.T) {
	f := validForm()
	f.values["secondary_contact_email"] = "bad-email"
	_, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if got := validationField(t, err); got != "secondary_contact_email" {
		t.Fatalf("got %s", got)
	}

	f = validForm()
	f.values["secondary_contact_name"] = "Sam Roe"
	plan, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if plan.Employee.SecondaryContactName == nil || *plan.Employee.SecondaryContactName != "Sam Roe" {
		t.Fatalf("secondary contact name not kept")
	}
	if plan.Employee.EmpAltMobile != nil {
		t.Fatalf("absent optional field should be nil")
	}
}

func TestGradeInRange(t *testing.T) {
	for v, want := range map[string]bool{
		"4": true, "4.0": true, "10.0": true, "85%": true, "100": true, "100%": true,
		"3.9": false, "101": false, "abc": false,
	} {
		if got := gradePattern.MatchString(v) && gradeInRange(v); got != want {
			t.Fatalf("grade %q: got %v want %v", v, got, want)
		}
	}
}

func TestYearsRule(t *testing.T) {
	for v, want := range map[string]bool{
		"0.1": true, "2.5": true, "40": true, "39.99": true,
		"0.09": false, "40.01": false, "NaN": false, "nan": false, "Inf": false,
		"-1": false, "0x1p1": false, "1e1": false, "1_0": false, "2.": false,
	} {
		err := yearsRule.slot(1).Validate(v)
		if got := err == nil; got != want {
			t.Fatalf("years %q: got %v want %v (%v)", v, got, want, err)
		}
	}
}

func TestDOBBoundaries(t *testing.T) {
	tl := NewTimeline(fixedNow())
	cases := map[string]bool{
		"2005-06-15": true,  // exactly 20
		"2005-06-16": false, // 19
		"1965-06-15": true,  // exactly 60
		"1965-06-14": false, // 60 and a day
		"15-06-1990": false,
	}
	for dob, ok := range cases {
		_, err := tl.CheckDOB(dob)
		if (err == nil) != ok {
			t.Fatalf("dob %s: err=%v want ok=%v", dob, err, ok)
		}
	}
}

func TestJoiningDateBoundaries(t *testing.T) {
	tl := NewTimeline(fixedNow())
	cases := map[string]bool{
		"2025-06-15": true,
		"2025-06-14": false,
		"2025-12-15": true,
		"2025-12-16": false,
	}
	for d, ok := range cases {
		_, err := tl.CheckJoiningDate(d)
		if (err == nil) != ok {
			t.Fatalf("joining %s: err=%v want ok=%v", d, err, ok)
		}
	}
}

func TestTimelineUsesIndiaDay(t *testing.T) {
	// 20:00 UTC on 14 June is already 15 June in India.
	tl := NewTimeline(time.Date(2025, time.June, 14, 20, 0, 0, 0, time.UTC))
	if got := tl.Today().Format(dateLayout); got != "2025-06-15" {
		t.Fatalf("Today: got %s", got)
	}
}

func TestSchoolYearChain(t *testing.T) {
	v := NewValidator(ProfileStrict, fixedNow)
	for field, value := range map[string]string{
		"ssc_year":   "2006",
		"inter_year": "2012",
		"grad_year":  "2015",
	} {
		f := validForm()
		f.values[field] = value
		_, err := v.Validate(f)
		if got := validationField(t, err); got != field {
			t.Fatalf("%s=%s: error on %s", field, value, got)
		}
	}
}

func TestRequiredFilesByProfile(t *testing.T) {
	f := validForm()
	f.files = map[string]bool{}
	_, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if err == nil || !strings.HasPrefix(err.Error(), "Missing required files: emp_ssc_doc, emp_inter_doc") {
		t.Fatalf("strict: got %v", err)
	}
	if _, err := NewValidator(ProfileRelaxed, fixedNow).Validate(f); err != nil {
		t.Fatalf("relaxed: %v", err)
	}
	if ParseProfile("RELAXED") != ProfileRelaxed || ParseProfile("other") != ProfileStrict {
		t.Fatalf("ParseProfile mismatch")
	}
}

func TestExperiencedRequiresEmployment(t *testing.T) {
	f := validForm()
	f.values["emp_experience_status"] = "Experienced"
	f.files["emp_offer_letter_1"] = true
	f.files["emp_relieving_letter_1"] = true
	_, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if got := validationField(t, err); got != "emp_company_name_1" {
		t.Fatalf("got %s", got)
	}
}

func TestExperiencedWithOneSlot(t *testing.T) {
	f := validForm()
	withEmployment(f, "1")
	plan, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(plan.Employments) != 1 {
		t.Fatalf("employments: got %d", len(plan.Employments))
	}
	rec := plan.Employments[0].Record
	if rec.CompanyName != "Acme" || rec.YearsOfExperience != 2.5 || rec.StartDate != "2021-01-01" {
		t.Fatalf("unexpected record %+v", rec)
	}

	emp := plan.Build(map[string]string{
		"emp_offer_letter_1":     "/Uploads/offer.pdf",
		"emp_relieving_letter_1": "/Uploads/relieving.pdf",
		"resume":                 "/Uploads/resume.pdf",
	})
	got := emp.Employments()
	if len(got) != 1 || got[0].OfferLetter != "/Uploads/offer.pdf" || got[0].ExperienceCertificate != nil {
		t.Fatalf("built employments: %+v", got)
	}
	if emp.Resume == nil || *emp.Resume != "/Uploads/resume.pdf" || emp.EmpProfilePic != nil {
		t.Fatalf("document refs not resolved")
	}
	if emp.AdditionalEducations != nil {
		t.Fatalf("empty educations should be stored as NULL")
	}
}

func TestEmploymentSlotErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f fakeForm)
		field  string
	}{
		{"missing uan", func(f fakeForm) { delete(f.values, "emp_uan_1") }, "emp_uan_1"},
		{"years too high", func(f fakeForm) { f.values["emp_years_of_experience_1"] = "41" }, "emp_years_of_experience_1"},
		{"years too low", func(f fakeForm) { f.values["emp_years_of_experience_1"] = "0.05" }, "emp_years_of_experience_1"},
		{"years zero", func(f fakeForm) { f.values["emp_years_of_experience_1"] = "0" }, "emp_years_of_experience_1"},
		{"years text", func(f fakeForm) { f.values["emp_years_of_experience_1"] = "abc" }, "emp_years_of_experience_1"},
		{"years nan", func(f fakeForm) { f.values["emp_years_of_experience_1"] = "NaN" }, "emp_years_of_experience_1"},
		{"years lower nan", func(f fakeForm) { f.values["emp_years_of_experience_1"] = "nan" }, "emp_years_of_experience_1"},
		{"years inf", func(f fakeForm) { f.values["emp_years_of_experience_1"] = "Inf" }, "emp_years_of_experience_1"},
		{"years hex float", func(f fakeForm) { f.values["emp_years_of_experience_1"] = "0x1p1" }, "emp_years_of_experience_1"},
		{"years exponent", func(f fakeForm) { f.values["emp_years_of_experience_1"] = "1e1" }, "emp_years_of_experience_1"},
		{"start after today", func(f fakeForm) { f.values["emp_start_date_1"] = "2025-06-16" }, "emp_start_date_1"},
		{"end after today", func(f fakeForm) { f.values["emp_end_date_1"] = "2025-06-16" }, "emp_end_date_1"},
		{"start before ssc", func(f fakeForm) { f.values["emp_start_date_1"] = "2011-12-31" }, "emp_start_date_1"},
		{"end too soon", func(f fakeForm) { f.values["emp_end_date_1"] = "2021-01-31" }, "emp_end_date_1"},
		{"bad pf", func(f fakeForm) { f.values["emp_pf_1"] = "abc" }, "emp_pf_1"},
		{"company digits", func(f fakeForm) { f.values["emp_company_name_1"] = "Acme 2" }, "emp_company_name_1"},
		{"slot two letters", func(f fakeForm) {
			withEmployment(f, "2")
			delete(f.files, "emp_relieving_letter_2")
		}, "emp_relieving_letter_2"},
	}
	for _, tc := range cases {
		f := validForm()
		withEmployment(f, "1")
		tc.mutate(f)
		_, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
		if got := validationField(t, err); got != tc.field {
			t.Fatalf("%s: error on %s (%v)", tc.name, got, err)
		}
	}
}

func TestEmploymentYearsBoundaries(t *testing.T) {
	for _, years := range []string{"0.1", "1", "2.5", "12.75", "40"} {
		f := validForm()
		withEmployment(f, "1")
		f.values["emp_years_of_experience_1"] = years
		plan, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
		if err != nil {
			t.Fatalf("years %q rejected: %v", years, err)
		}
		if plan.Employments[0].Record.YearsOfExperience <= 0 {
			t.Fatalf("years %q stored as %v", years, plan.Employments[0].Record.YearsOfExperience)
		}
	}
}

func TestEmploymentEndOnToday(t *testing.T) {
	f := validForm()
	withEmployment(f, "1")
	f.values["emp_end_date_1"] = "2025-06-15"
	if _, err := NewValidator(ProfileStrict, fixedNow).Validate(f); err != nil {
		t.Fatalf("end date today rejected: %v", err)
	}
}

func TestEmploymentSlotThreeWithoutTwo(t *testing.T) {
	f := validForm()
	withEmployment(f, "1")
	withEmployment(f, "3")

	plan, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(plan.Employments) != 2 || plan.Employments[0].Slot != 1 || plan.Employments[1].Slot != 3 {
		t.Fatalf("employments: %+v", plan.Employments)
	}

	cases := []struct {
		name   string
		mutate func(f fakeForm)
		field  string
	}{
		{"bad uan", func(f fakeForm) { f.values["emp_uan_3"] = "123" }, "emp_uan_3"},
		{"nan years", func(f fakeForm) { f.values["emp_years_of_experience_3"] = "NaN" }, "emp_years_of_experience_3"},
		{"end after today", func(f fakeForm) { f.values["emp_end_date_3"] = "2025-07-01" }, "emp_end_date_3"},
		{"missing offer letter", func(f fakeForm) { delete(f.files, "emp_offer_letter_3") }, "emp_offer_letter_3"},
		{"missing pf", func(f fakeForm) { delete(f.values, "emp_pf_3") }, "emp_pf_3"},
	}
	for _, tc := range cases {
		f := validForm()
		withEmployment(f, "1")
		withEmployment(f, "3")
		tc.mutate(f)
		_, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
		if got := validationField(t, err); got != tc.field {
			t.Fatalf("%s: error on %s (%v)", tc.name, got, err)
		}
	}
}

func TestFresherIgnoresEmploymentSlots(t *testing.T) {
	f := validForm()
	f.values["emp_company_name_1"] = "Acme 2"
	plan, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(plan.Employments) != 0 {
		t.Fatalf("fresher kept employments")
	}
}

func TestEducationSlots(t *testing.T) {
	f := validForm()
	f.values["extra_college_4"] = "Tech Institute"
	f.values["extra_year_4"] = "2019"
	f.values["extra_grade_4"] = "8.2"
	f.values["extra_degree_4"] = "MTech"
	f.values["extra_branch_4"] = "Data Science"

	_, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if got := validationField(t, err); got != "emp_extra_doc_4" {
		t.Fatalf("missing certificate: error on %s", got)
	}

	f.files["emp_extra_doc_4"] = true
	plan, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(plan.Educations) != 1 || plan.Educations[0].Record.Year != 2019 {
		t.Fatalf("educations: %+v", plan.Educations)
	}

	f.values["extra_year_4"] = "2016"
	_, err = NewValidator(ProfileStrict, fixedNow).Validate(f)
	if got := validationField(t, err); got != "extra_year_4" {
		t.Fatalf("year before graduation: error on %s", got)
	}

	f.values["extra_year_4"] = "2027"
	if _, err := NewValidator(ProfileStrict, fixedNow).Validate(f); err != nil {
		t.Fatalf("year two ahead rejected: %v", err)
	}

	f.values["extra_year_4"] = "2028"
	_, err = NewValidator(ProfileStrict, fixedNow).Validate(f)
	if got := validationField(t, err); got != "extra_year_4" {
		t.Fatalf("year beyond next two: error on %s", got)
	}
}

func TestEducationSlotFiveWithoutFour(t *testing.T) {
	f := validForm()
	f.values["extra_college_5"] = "Tech Institute"
	f.values["extra_year_5"] = "2019"
	f.values["extra_grade_5"] = "8.2"
	f.values["extra_degree_5"] = "MTech"
	f.values["extra_branch_5"] = "Data Science"
	f.files["emp_extra_doc_5"] = true

	plan, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(plan.Educations) != 1 || plan.Educations[0].Slot != 5 {
		t.Fatalf("educations: %+v", plan.Educations)
	}

	f.values["extra_grade_5"] = "101"
	_, err = NewValidator(ProfileStrict, fixedNow).Validate(f)
	if got := validationField(t, err); got != "extra_grade_5" {
		t.Fatalf("bad grade: error on %s", got)
	}
}

func TestDuplicateMobiles(t *testing.T) {
	f := validForm()
	f.values["secondary_contact_mobile"] = "9876543210"
	_, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if got := validationField(t, err); got != "secondary_contact_mobile" {
		t.Fatalf("got %s", got)
	}
}

func TestEscape(t *testing.T) {
	in := "<a href='x'>&\"/\\`"
	want := "&lt;a href=&#x27;x&#x27;&gt;&amp;&quot;&#x2F;&#x5C;&#96;"
	if got := Escape(in); got != want {
		t.Fatalf("Escape: got %q", got)
	}
}

func TestStoredAddressIsEscaped(t *testing.T) {
	f := validForm()
	f.values["emp_address"] = "12/3 MG Road"
	plan, err := NewValidator(ProfileStrict, fixedNow).Validate(f)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if plan.Employee.EmpAddress != "12&#x2F;3 MG Road" {
		t.Fatalf("address: got %q", plan.Employee.EmpAddress)
	}
}
