package dto

// EmployeeOnboardedEvent is published after a submission commits.
type EmployeeOnboardedEvent struct {
	EmployeeID  uint   `json:"employee_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	JobRole     string `json:"job_role"`
	Department  string `json:"department"`
	JoiningDate string `json:"joining_date"`
}
