package intake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
)

// EmploymentEntry is a validated employment slot whose file fields are not
// yet resolved to stored references.
type EmploymentEntry struct {
	Slot                 int
	Record               domain.EmploymentRecord
	OfferLetterField     string
	RelievingLetterField string
	CertificateField     string // empty when no certificate was uploaded
}

type EducationEntry struct {
	Slot             int
	Record           domain.EducationRecord
	CertificateField string
}

var employmentSlots = []int{1, 2, 3}
var educationSlots = []int{4, 5}

func employmentFields(i int) []string {
	return []string{
		fmt.Sprintf("emp_company_name_%d", i),
		fmt.Sprintf("emp_years_of_experience_%d", i),
		fmt.Sprintf("emp_start_date_%d", i),
		fmt.Sprintf("emp_end_date_%d", i),
		fmt.Sprintf("emp_uan_%d", i),
		fmt.Sprintf("emp_pf_%d", i),
	}
}

func educationFields(i int) []string {
	return []string{
		fmt.Sprintf("extra_college_%d", i),
		fmt.Sprintf("extra_year_%d", i),
		fmt.Sprintf("extra_grade_%d", i),
		fmt.Sprintf("extra_degree_%d", i),
		fmt.Sprintf("extra_branch_%d", i),
	}
}

func blankFields(form Form, fields []string) []string {
	var out []string
	for _, f := range fields {
		if strings.TrimSpace(form.Value(f)) == "" {
			out = append(out, f)
		}
	}
	return out
}

// AssembleEmployments validates employment slots 1-3. Slot 1 is mandatory;
// slots 2 and 3 are read only when their company name is present.
func AssembleEmployments(form Form, tl Timeline, sscYear int) ([]EmploymentEntry, error) {
	if strings.TrimSpace(form.Value("emp_company_name_1")) == "" {
		return nil, domain.NewValidationError("emp_company_name_1",
			"At least one previous employment is required for Experienced status")
	}

	var entries []EmploymentEntry
	for _, i := range employmentSlots {
		if strings.TrimSpace(form.Value(fmt.Sprintf("emp_company_name_%d", i))) == "" {
			continue
		}
		entry, err := assembleEmployment(form, tl, sscYear, i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, domain.NewValidationError("emp_company_name_1",
			"At least one previous employment is required for Experienced status")
	}
	return entries, nil
}

func assembleEmployment(form Form, tl Timeline, sscYear, i int) (EmploymentEntry, error) {
	fields := employmentFields(i)
	if missing := blankFields(form, fields); len(missing) > 0 {
		return EmploymentEntry{}, domain.NewValidationError(missing[0],
			"Missing experience fields for employment %d: %s", i, strings.Join(missing, ", "))
	}

	company := companyNameRule.slot(i)
	if err := company.Validate(form.Value(company.Field)); err != nil {
		return EmploymentEntry{}, err
	}

	yearsRaw := strings.TrimSpace(form.Value(fields[1]))
	if err := yearsRule.slot(i).Validate(yearsRaw); err != nil {
		return EmploymentEntry{}, err
	}
	years, err := strconv.ParseFloat(yearsRaw, 64)
	if err != nil {
		return EmploymentEntry{}, domain.NewValidationError(fields[1],
			"Invalid years of experience for employment %d (0.1-40)", i)
	}

	start, err := tl.CheckEmploymentStart(fields[2], form.Value(fields[2]), sscYear)
	if err != nil {
		return EmploymentEntry{}, err
	}
	if _, err := tl.CheckEmploymentEnd(fields[3], form.Value(fields[3]), start); err != nil {
		return EmploymentEntry{}, err
	}

	uan := uanRule.slot(i)
	if err := uan.Validate(form.Value(uan.Field)); err != nil {
		return EmploymentEntry{}, err
	}
	pf := pfRule.slot(i)
	if err := pf.Validate(form.Value(pf.Field)); err != nil {
		return EmploymentEntry{}, err
	}

	offer := fmt.Sprintf("emp_offer_letter_%d", i)
	relieving := fmt.Sprintf("emp_relieving_letter_%d", i)
	certificate := fmt.Sprintf("emp_experience_certificate_%d", i)
	if !form.HasFile(offer) {
		return EmploymentEntry{}, domain.NewValidationError(offer, "Missing offer letter for employment %d", i)
	}
	if !form.HasFile(relieving) {
		return EmploymentEntry{}, domain.NewValidationError(relieving, "Missing relieving letter for employment %d", i)
	}
	if !form.HasFile(certificate) {
		certificate = ""
	}

	return EmploymentEntry{
		Slot: i,
		Record: domain.EmploymentRecord{
			CompanyName:       Escape(form.Value(fields[0])),
			YearsOfExperience: years,
			StartDate:         form.Value(fields[2]),
			EndDate:           form.Value(fields[3]),
			UAN:               Escape(form.Value(fields[4])),
			PF:                Escape(form.Value(fields[5])),
		},
		OfferLetterField:     offer,
		RelievingLetterField: relieving,
		CertificateField:     certificate,
	}, nil
}

// AssembleEducations validates the optional education slots 4 and 5.
func AssembleEducations(form Form, tl Timeline, gradYear int) ([]EducationEntry, error) {
	var entries []EducationEntry
	for _, i := range educationSlots {
		if strings.TrimSpace(form.Value(fmt.Sprintf("extra_college_%d", i))) == "" {
			continue
		}
		fields := educationFields(i)
		certificate := fmt.Sprintf("emp_extra_doc_%d", i)
		missing := blankFields(form, fields)
		if len(missing) > 0 || !form.HasFile(certificate) {
			field := certificate
			if len(missing) > 0 {
				field = missing[0]
			}
			return nil, domain.NewValidationError(field,
				"Missing education fields or certificate for education %d: %s", i, strings.Join(missing, ", "))
		}

		college := extraCollegeRule.slot(i)
		if err := college.Validate(form.Value(college.Field)); err != nil {
			return nil, err
		}
		year, err := strconv.Atoi(strings.TrimSpace(form.Value(fields[1])))
		if err != nil {
			return nil, domain.NewValidationError(fields[1], "Invalid year for education %d", i)
		}
		if err := tl.CheckEducationYear(fields[1], gradYear, year); err != nil {
			return nil, err
		}
		for _, r := range []FieldRule{extraGradeRule.slot(i), extraDegreeRule.slot(i), extraBranchRule.slot(i)} {
			if err := r.Validate(form.Value(r.Field)); err != nil {
				return nil, err
			}
		}

		entries = append(entries, EducationEntry{
			Slot: i,
			Record: domain.EducationRecord{
				College: Escape(form.Value(fields[0])),
				Year:    year,
				Grade:   Escape(form.Value(fields[2])),
				Degree:  Escape(form.Value(fields[3])),
				Branch:  Escape(form.Value(fields[4])),
			},
			CertificateField: certificate,
		})
	}
	return entries, nil
}
