package models

// Request bodies. Binding tags are enforced by gin's validator engine;
// the password tag is registered in api.RegisterValidations.

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32,password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateTransaction struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Description string          `json:"description" binding:"omitempty,max=4096"`
	Amount      int64           `json:"amount" binding:"required,gt=0"`
	Type        TransactionType `json:"type" binding:"required,oneof=Expense Income"`
}
