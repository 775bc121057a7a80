package service

import (
	"context"
	"fmt"
	"time"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/errs"
	"leadsdesk/internal/model"
	"leadsdesk/internal/repository"
	"leadsdesk/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
)

// PaymentService implements payment CRUD under ownership scoping.
// Amounts are always computed server-side from the line items.
type PaymentService struct {
	payments repository.IPaymentRepository
	projects repository.IProjectRepository
}

func NewPaymentService(payments repository.IPaymentRepository, projects repository.IProjectRepository) *PaymentService {
	return &PaymentService{payments: payments, projects: projects}
}

// List returns the payments visible to the principal, newest first.
func (s *PaymentService) List(ctx context.Context, p auth.Principal) ([]*model.Payment, error) {
	return s.payments.Find(ctx, auth.OwnershipFilter(p), newestFirst())
}

// Get fetches one payment, checking existence before ownership.
func (s *PaymentService) Get(ctx context.Context, p auth.Principal, id string) (*model.Payment, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	payment, err := s.payments.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if !p.Owns(payment.CreatedBy) {
		return nil, auth.ErrForbidden
	}
	return payment, nil
}

// Create records a payment against an existing project. Line totals, the
// tax amount and the grand total are derived here; the invoice number is
// sequential across the collection.
func (s *PaymentService) Create(ctx context.Context, p auth.Principal, in *model.PaymentInput) (*model.Payment, error) {
	projectID, err := util.ParseObjectID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	status := model.PaymentStatus(in.Status)
	if in.Status == "" {
		status = model.PaymentPending
	} else if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", errs.ErrInvalidInput, in.Status)
	}
	method := model.PaymentMethod(in.Method)
	if in.Method == "" {
		method = model.MethodOther
	} else if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", errs.ErrInvalidInput, in.Method)
	}

	items, subTotal := buildLineItems(in.Items)
	taxAmount := round2(subTotal * in.TaxPercent / 100)
	total := round2(subTotal + taxAmount)

	var paymentDate *time.Time
	if in.PaymentDate != "" {
		parsed, err := parseDate(in.PaymentDate)
		if err != nil {
			return nil, err
		}
		paymentDate = &parsed
	} else if status == model.PaymentPaid {
		now := time.Now().UTC()
		paymentDate = &now
	}

	number, err := s.nextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	return s.payments.Create(ctx, &model.Payment{
		InvoiceNumber: number,
		ProjectID:     projectID,
		ClientName:    in.ClientName,
		Items:         items,
		SubTotal:      subTotal,
		TaxPercent:    in.TaxPercent,
		TaxAmount:     taxAmount,
		TotalAmount:   total,
		Method:        method,
		Status:        status,
		PaymentDate:   paymentDate,
		TransactionID: in.TransactionID,
		Notes:         in.Notes,
		CreatedBy:     p.ID,
	})
}

// Update applies settlement-state mutations to a payment the principal
// owns. Line items are immutable after creation.
func (s *PaymentService) Update(ctx context.Context, p auth.Principal, id string, in *model.PaymentUpdate) (*model.Payment, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	payment, err := s.payments.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if !p.Owns(payment.CreatedBy) {
		return nil, auth.ErrForbidden
	}

	fields := bson.M{}
	if in.Status != "" {
		status := model.PaymentStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown payment status %q", errs.ErrInvalidInput, in.Status)
		}
		fields["status"] = status
		if status == model.PaymentPaid && payment.PaymentDate == nil && in.PaymentDate == "" {
			fields["paymentDate"] = time.Now().UTC()
		}
	}
	if in.Method != "" {
		method := model.PaymentMethod(in.Method)
		if !method.Valid() {
			return nil, fmt.Errorf("%w: unknown payment method %q", errs.ErrInvalidInput, in.Method)
		}
		fields["paymentMethod"] = method
	}
	if in.PaymentDate != "" {
		date, err := parseDate(in.PaymentDate)
		if err != nil {
			return nil, err
		}
		fields["paymentDate"] = date
	}
	if in.TransactionID != "" {
		fields["transactionId"] = in.TransactionID
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if len(fields) == 0 {
		return payment, nil
	}

	if err := s.payments.UpdateFields(ctx, objID, fields); err != nil {
		return nil, err
	}
	return s.payments.FindByID(ctx, objID)
}

// Delete removes a payment the principal owns.
func (s *PaymentService) Delete(ctx context.Context, p auth.Principal, id string) error {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return err
	}
	payment, err := s.payments.FindByID(ctx, objID)
	if err != nil {
		return err
	}
	if !p.Owns(payment.CreatedBy) {
		return auth.ErrForbidden
	}
	return s.payments.Delete(ctx, objID)
}

// PaymentStats summarizes the principal's visible payments.
type PaymentStats struct {
	Total        int           `json:"total"`
	TotalRevenue float64       `json:"totalRevenue"`
	ByStatus     []StatusCount `json:"byStatus"`
}

// Stats rolls up the principal's visible payments by settlement state.
func (s *PaymentService) Stats(ctx context.Context, p auth.Principal) (*PaymentStats, error) {
	payments, err := s.payments.Find(ctx, auth.OwnershipFilter(p))
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int{}
	for _, payment := range payments {
		byStatus[string(payment.Status)]++
	}
	return &PaymentStats{
		Total:        len(payments),
		TotalRevenue: PaidRevenue(payments),
		ByStatus:     sortedStatusCounts(byStatus),
	}, nil
}

// nextInvoiceNumber derives a sequential INV-0001 style number from the
// collection size.
func (s *PaymentService) nextInvoiceNumber(ctx context.Context) (string, error) {
	count, err := s.payments.Count(ctx, bson.M{})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%04d", count+1), nil
}
