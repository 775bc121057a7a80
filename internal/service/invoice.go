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

// InvoiceService implements invoice CRUD under ownership scoping.
type InvoiceService struct {
	invoices repository.IInvoiceRepository
	projects repository.IProjectRepository
}

func NewInvoiceService(invoices repository.IInvoiceRepository, projects repository.IProjectRepository) *InvoiceService {
	return &InvoiceService{invoices: invoices, projects: projects}
}

// List returns the invoices visible to the principal, newest first.
func (s *InvoiceService) List(ctx context.Context, p auth.Principal) ([]*model.Invoice, error) {
	return s.invoices.Find(ctx, auth.OwnershipFilter(p), newestFirst())
}

// Get fetches one invoice, checking existence before ownership.
func (s *InvoiceService) Get(ctx context.Context, p auth.Principal, id string) (*model.Invoice, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoices.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if !p.Owns(invoice.CreatedBy) {
		return nil, auth.ErrForbidden
	}
	return invoice, nil
}

// Create issues an invoice against an existing project. The subtotal and
// grand total are derived from the line items; tax and discount are
// absolute amounts.
func (s *InvoiceService) Create(ctx context.Context, p auth.Principal, in *model.InvoiceInput) (*model.Invoice, error) {
	projectID, err := util.ParseObjectID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	status := model.InvoiceStatus(in.Status)
	if in.Status == "" {
		status = model.InvoiceDraft
	} else if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", errs.ErrInvalidInput, in.Status)
	}

	dueDate, err := parseDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	items, subTotal := buildLineItems(in.Items)
	total := round2(subTotal + in.Tax - in.Discount)
	if total < 0 {
		return nil, fmt.Errorf("%w: discount exceeds invoice total", errs.ErrInvalidInput)
	}

	number, err := s.nextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	return s.invoices.Create(ctx, &model.Invoice{
		InvoiceNumber: number,
		ProjectID:     projectID,
		ClientName:    in.ClientName,
		ClientEmail:   normalizeEmail(in.ClientEmail),
		ClientAddress: in.ClientAddress,
		Items:         items,
		SubTotal:      subTotal,
		Tax:           in.Tax,
		Discount:      in.Discount,
		TotalAmount:   total,
		Status:        status,
		IssueDate:     time.Now().UTC(),
		DueDate:       dueDate,
		Notes:         in.Notes,
		CreatedBy:     p.ID,
	})
}

// Update applies billing-state mutations to an invoice the principal
// owns. Line items and amounts are immutable after issue.
func (s *InvoiceService) Update(ctx context.Context, p auth.Principal, id string, in *model.InvoiceUpdate) (*model.Invoice, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoices.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if !p.Owns(invoice.CreatedBy) {
		return nil, auth.ErrForbidden
	}

	fields := bson.M{}
	if in.ClientName != "" {
		fields["clientName"] = in.ClientName
	}
	if in.ClientEmail != "" {
		fields["clientEmail"] = normalizeEmail(in.ClientEmail)
	}
	if in.ClientAddress != "" {
		fields["clientAddress"] = in.ClientAddress
	}
	if in.Status != "" {
		status := model.InvoiceStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown invoice status %q", errs.ErrInvalidInput, in.Status)
		}
		fields["status"] = status
	}
	if in.DueDate != "" {
		dueDate, err := parseDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		fields["dueDate"] = dueDate
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if len(fields) == 0 {
		return invoice, nil
	}

	if err := s.invoices.UpdateFields(ctx, objID, fields); err != nil {
		return nil, err
	}
	return s.invoices.FindByID(ctx, objID)
}

// Delete removes an invoice the principal owns.
func (s *InvoiceService) Delete(ctx context.Context, p auth.Principal, id string) error {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return err
	}
	invoice, err := s.invoices.FindByID(ctx, objID)
	if err != nil {
		return err
	}
	if !p.Owns(invoice.CreatedBy) {
		return auth.ErrForbidden
	}
	return s.invoices.Delete(ctx, objID)
}

// InvoiceStats summarizes the principal's visible invoices. Revenue
// counts paid invoices only.
type InvoiceStats struct {
	Total        int           `json:"total"`
	TotalRevenue float64       `json:"totalRevenue"`
	ByStatus     []StatusCount `json:"byStatus"`
}

// Stats rolls up the principal's visible invoices by billing state.
func (s *InvoiceService) Stats(ctx context.Context, p auth.Principal) (*InvoiceStats, error) {
	invoices, err := s.invoices.Find(ctx, auth.OwnershipFilter(p))
	if err != nil {
		return nil, err
	}

	byStatus := map[string]int{}
	var revenue float64
	for _, invoice := range invoices {
		byStatus[string(invoice.Status)]++
		if invoice.Status == model.InvoicePaid {
			revenue += invoice.TotalAmount
		}
	}
	return &InvoiceStats{
		Total:        len(invoices),
		TotalRevenue: round2(revenue),
		ByStatus:     sortedStatusCounts(byStatus),
	}, nil
}

func (s *InvoiceService) nextInvoiceNumber(ctx context.Context) (string, error) {
	count, err := s.invoices.Count(ctx, bson.M{})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%04d", count+1), nil
}
