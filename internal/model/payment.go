package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentMethod enumerates accepted payment channels.
type PaymentMethod string

const (
	MethodCash          PaymentMethod = "Cash"
	MethodBankTransfer  PaymentMethod = "Bank Transfer"
	MethodCreditCard    PaymentMethod = "Credit Card"
	MethodDebitCard     PaymentMethod = "Debit Card"
	MethodCheque        PaymentMethod = "Cheque"
	MethodOnlinePayment PaymentMethod = "Online Payment"
	MethodOther         PaymentMethod = "Other"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCreditCard, MethodDebitCard, MethodCheque, MethodOnlinePayment, MethodOther:
		return true
	}
	return false
}

// PaymentStatus tracks settlement state. Paid payments contribute to
// revenue rollups.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// LineItem is one billed row on a payment or invoice.
type LineItem struct {
	Description string  `bson:"description" json:"description"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	Price       float64 `bson:"price" json:"price"`
	Total       float64 `bson:"total" json:"total"`
}

// Payment is an owned resource referencing a Project.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvoiceNumber string             `bson:"invoiceNumber" json:"invoiceNumber"`
	ProjectID     primitive.ObjectID `bson:"project" json:"project"`
	ClientName    string             `bson:"clientName" json:"clientName"`
	Items         []LineItem         `bson:"items" json:"items"`
	SubTotal      float64            `bson:"subTotal" json:"subTotal"`
	TaxPercent    float64            `bson:"taxPercent" json:"taxPercent"`
	TaxAmount     float64            `bson:"taxAmount" json:"taxAmount"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Method        PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	PaymentDate   *time.Time         `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *Payment) GetID() primitive.ObjectID    { return p.ID }
func (p *Payment) SetID(id primitive.ObjectID)  { p.ID = id }
func (p *Payment) GetOwner() primitive.ObjectID { return p.CreatedBy }
func (p *Payment) SetTimestamps(now time.Time)  { p.CreatedAt, p.UpdatedAt = now, now }
