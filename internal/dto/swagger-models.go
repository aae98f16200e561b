package dto

// Response envelopes referenced by the API docs.

type APIError struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Missing or empty required field: emp_name"`
	Code    string `json:"code,omitempty" example:"UPLOAD_ERROR"`
}

type APIMessage struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Server is running"`
}

type APISuccessAny struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
}
