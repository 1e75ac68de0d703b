package models

type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type GetTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total" example:"100"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"error"`
}

// ValidationErrorResponse carries per-field messages for a rejected body.
type ValidationErrorResponse struct {
	Error  string            `json:"error" example:"validation failed"`
	Fields map[string]string `json:"fields,omitempty"`
}
