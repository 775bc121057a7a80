package model

// RegisterRequest creates a principal through the public endpoint.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest authenticates a principal.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest starts the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// CreateCSRRequest provisions a CSR account (admin only).
type CreateCSRRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required"`
	Permissions []string `json:"permissions"`
}

// UpdatePermissionsRequest replaces a CSR's permission set (admin only).
type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// LeadInput carries client-supplied lead fields. CreatedBy is always
// stamped server-side.
type LeadInput struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Phone  string `json:"phone" binding:"required"`
	Source string `json:"source"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// LeadUpdate carries optional lead mutations; empty fields keep the
// stored value.
type LeadUpdate struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone"`
	Source string  `json:"source"`
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// ProjectInput carries client-supplied project fields.
type ProjectInput struct {
	Name      string  `json:"name" binding:"required"`
	Client    string  `json:"client" binding:"required"`
	Status    string  `json:"status"`
	Budget    float64 `json:"budget" binding:"required,gte=0"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
}

// ProjectUpdate carries optional project mutations.
type ProjectUpdate struct {
	Name    string   `json:"name"`
	Client  string   `json:"client"`
	Status  string   `json:"status"`
	Budget  *float64 `json:"budget"`
	EndDate string   `json:"endDate"`
}

// LineItemInput is one billed row of a payment or invoice request.
type LineItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gte=1"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// PaymentInput carries client-supplied payment fields.
type PaymentInput struct {
	ProjectID     string          `json:"project" binding:"required"`
	ClientName    string          `json:"clientName" binding:"required"`
	Items         []LineItemInput `json:"items" binding:"required,min=1,dive"`
	TaxPercent    float64         `json:"taxPercent" binding:"gte=0"`
	Method        string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	PaymentDate   string          `json:"paymentDate"`
	TransactionID string          `json:"transactionId"`
	Notes         string          `json:"notes"`
}

// PaymentUpdate carries optional payment mutations.
type PaymentUpdate struct {
	Status        string  `json:"status"`
	Method        string  `json:"paymentMethod"`
	PaymentDate   string  `json:"paymentDate"`
	TransactionID string  `json:"transactionId"`
	Notes         *string `json:"notes"`
}

// InvoiceInput carries client-supplied invoice fields.
type InvoiceInput struct {
	ProjectID     string          `json:"project" binding:"required"`
	ClientName    string          `json:"clientName" binding:"required"`
	ClientEmail   string          `json:"clientEmail"`
	ClientAddress string          `json:"clientAddress"`
	Items         []LineItemInput `json:"items" binding:"required,min=1,dive"`
	Tax           float64         `json:"tax" binding:"gte=0"`
	Discount      float64         `json:"discount" binding:"gte=0"`
	Status        string          `json:"status"`
	DueDate       string          `json:"dueDate" binding:"required"`
	Notes         string          `json:"notes"`
}

// InvoiceUpdate carries optional invoice mutations.
type InvoiceUpdate struct {
	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientAddress string  `json:"clientAddress"`
	Status        string  `json:"status"`
	DueDate       string  `json:"dueDate"`
	Notes         *string `json:"notes"`
}
