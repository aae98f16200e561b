package intake

import (
	"time"

	"github.com/SundayYogurt/onboarding_service/internal/domain"
)

const dateLayout = "2006-01-02"

// IST is the zone every date rule is evaluated in.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// Timeline checks dates and years against a fixed reference day.
type Timeline struct {
	today time.Time
}

func NewTimeline(now time.Time) Timeline {
	n := now.In(IST)
	return Timeline{today: time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, IST)}
}

func (t Timeline) Today() time.Time {
	return t.today
}

func (t Timeline) CurrentYear() int {
	return t.today.Year()
}

// ParseDate reads a YYYY-MM-DD value as midnight in IST.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, value, IST)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "Invalid date format for %s", field)
	}
	return d, nil
}

func between(d, min, max time.Time) bool {
	return !d.Before(min) && !d.After(max)
}

// CheckDOB requires an age of 20 to 60 years inclusive.
func (t Timeline) CheckDOB(value string) (time.Time, error) {
	dob, err := ParseDate("emp_dob", value)
	if err != nil {
		return dob, err
	}
	min := t.today.AddDate(-60, 0, 0)
	max := t.today.AddDate(-20, 0, 0)
	if !between(dob, min, max) {
		return dob, domain.NewValidationError("emp_dob",
			"Employee must be between 20 and 60 years old for emp_dob (allowed %s to %s)",
			min.Format(dateLayout), max.Format(dateLayout))
	}
	return dob, nil
}

// CheckJoiningDate requires a date from today up to six months ahead.
func (t Timeline) CheckJoiningDate(value string) (time.Time, error) {
	jd, err := ParseDate("emp_joining_date", value)
	if err != nil {
		return jd, err
	}
	max := t.today.AddDate(0, 6, 0)
	if !between(jd, t.today, max) {
		return jd, domain.NewValidationError("emp_joining_date",
			"Joining date must be between %s and %s for emp_joining_date",
			t.today.Format(dateLayout), max.Format(dateLayout))
	}
	return jd, nil
}

func checkYear(field string, year, min, max int) error {
	if year < min || year > max {
		return domain.NewValidationError(field, "Year must be between %d and %d for %s", min, max, field)
	}
	return nil
}

func (t Timeline) CheckSSCYear(dob time.Time, year int) error {
	return checkYear("ssc_year", year, dob.Year()+12, t.CurrentYear())
}

func (t Timeline) CheckInterYear(sscYear, year int) error {
	return checkYear("inter_year", year, sscYear+2, t.CurrentYear())
}

func (t Timeline) CheckGradYear(interYear, year int) error {
	return checkYear("grad_year", year, interYear+3, t.CurrentYear()+2)
}

func (t Timeline) CheckEducationYear(field string, gradYear, year int) error {
	return checkYear(field, year, gradYear, t.CurrentYear()+2)
}

// CheckEmploymentStart allows 1 January of the year after SSC up to today.
func (t Timeline) CheckEmploymentStart(field, value string, sscYear int) (time.Time, error) {
	start, err := ParseDate(field, value)
	if err != nil {
		return start, err
	}
	min := time.Date(sscYear+1, time.January, 1, 0, 0, 0, 0, IST)
	if !between(start, min, t.today) {
		return start, domain.NewValidationError(field,
			"Start date must be between %s and %s for %s",
			min.Format(dateLayout), t.today.Format(dateLayout), field)
	}
	return start, nil
}

// CheckEmploymentEnd requires at least one month after start and no later than today.
func (t Timeline) CheckEmploymentEnd(field, value string, start time.Time) (time.Time, error) {
	end, err := ParseDate(field, value)
	if err != nil {
		return end, err
	}
	min := start.AddDate(0, 1, 0)
	if !between(end, min, t.today) {
		return end, domain.NewValidationError(field,
			"End date must be between %s and %s for %s",
			min.Format(dateLayout), t.today.Format(dateLayout), field)
	}
	return end, nil
}
