package dto

type GetDocumentsRequest struct {
	EmpEmail string `json:"empEmail"`
}

// DocumentLink describes one stored document of an employee.
type DocumentLink struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Filename string `json:"filename"`
}
