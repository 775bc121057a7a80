package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InvoiceStatus tracks an invoice through billing.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "Draft"
	InvoicePending   InvoiceStatus = "Pending"
	InvoicePaid      InvoiceStatus = "Paid"
	InvoiceOverdue   InvoiceStatus = "Overdue"
	InvoiceCancelled InvoiceStatus = "Cancelled"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoicePending, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice is an owned resource referencing a Project.
type Invoice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvoiceNumber string             `bson:"invoiceNumber" json:"invoiceNumber"`
	ProjectID     primitive.ObjectID `bson:"project" json:"project"`
	ClientName    string             `bson:"clientName" json:"clientName"`
	ClientEmail   string             `bson:"clientEmail,omitempty" json:"clientEmail,omitempty"`
	ClientAddress string             `bson:"clientAddress,omitempty" json:"clientAddress,omitempty"`
	Items         []LineItem         `bson:"items" json:"items"`
	SubTotal      float64            `bson:"subTotal" json:"subTotal"`
	Tax           float64            `bson:"tax" json:"tax"`
	Discount      float64            `bson:"discount" json:"discount"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Status        InvoiceStatus      `bson:"status" json:"status"`
	IssueDate     time.Time          `bson:"issueDate" json:"issueDate"`
	DueDate       time.Time          `bson:"dueDate" json:"dueDate"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy     primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (i *Invoice) GetID() primitive.ObjectID    { return i.ID }
func (i *Invoice) SetID(id primitive.ObjectID)  { i.ID = id }
func (i *Invoice) GetOwner() primitive.ObjectID { return i.CreatedBy }
func (i *Invoice) SetTimestamps(now time.Time)  { i.CreatedAt, i.UpdatedAt = now, now }
