package service

import (
	"context"
	"errors"
	"fmt"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/errs"
	"leadsdesk/internal/model"
	"leadsdesk/internal/repository"
	"leadsdesk/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
)

// LeadService implements lead CRUD under ownership scoping.
type LeadService struct {
	leads repository.ILeadRepository
}

func NewLeadService(leads repository.ILeadRepository) *LeadService {
	return &LeadService{leads: leads}
}

// List returns the leads visible to the principal, newest first.
func (s *LeadService) List(ctx context.Context, p auth.Principal) ([]*model.Lead, error) {
	return s.leads.Find(ctx, auth.OwnershipFilter(p), newestFirst())
}

// Get fetches one lead. A lead that exists but belongs to another CSR is
// reported as forbidden, not as missing.
func (s *LeadService) Get(ctx context.Context, p auth.Principal, id string) (*model.Lead, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	lead, err := s.leads.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if !p.Owns(lead.CreatedBy) {
		return nil, auth.ErrForbidden
	}
	return lead, nil
}

// Create stores a new lead owned by the principal. Lead emails are
// unique across the whole collection, not per owner.
func (s *LeadService) Create(ctx context.Context, p auth.Principal, in *model.LeadInput) (*model.Lead, error) {
	source := model.LeadSource(in.Source)
	if in.Source == "" {
		source = model.SourceOther
	} else if !source.Valid() {
		return nil, fmt.Errorf("%w: unknown lead source %q", errs.ErrInvalidInput, in.Source)
	}
	status := model.LeadStatus(in.Status)
	if in.Status == "" {
		status = model.LeadNew
	} else if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown lead status %q", errs.ErrInvalidInput, in.Status)
	}

	email := normalizeEmail(in.Email)
	if _, err := s.leads.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: lead with this email already exists", errs.ErrAlreadyExists)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	return s.leads.Create(ctx, &model.Lead{
		Name:      in.Name,
		Email:     email,
		Phone:     in.Phone,
		Source:    source,
		Status:    status,
		Notes:     in.Notes,
		CreatedBy: p.ID,
	})
}

// Update applies the provided fields to a lead the principal owns.
func (s *LeadService) Update(ctx context.Context, p auth.Principal, id string, in *model.LeadUpdate) (*model.Lead, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	lead, err := s.leads.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if !p.Owns(lead.CreatedBy) {
		return nil, auth.ErrForbidden
	}

	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Email != "" {
		fields["email"] = normalizeEmail(in.Email)
	}
	if in.Phone != "" {
		fields["phone"] = in.Phone
	}
	if in.Source != "" {
		source := model.LeadSource(in.Source)
		if !source.Valid() {
			return nil, fmt.Errorf("%w: unknown lead source %q", errs.ErrInvalidInput, in.Source)
		}
		fields["source"] = source
	}
	if in.Status != "" {
		status := model.LeadStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown lead status %q", errs.ErrInvalidInput, in.Status)
		}
		fields["status"] = status
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if len(fields) == 0 {
		return lead, nil
	}

	if err := s.leads.UpdateFields(ctx, objID, fields); err != nil {
		return nil, err
	}
	return s.leads.FindByID(ctx, objID)
}

// Delete removes a lead the principal owns.
func (s *LeadService) Delete(ctx context.Context, p auth.Principal, id string) error {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return err
	}
	lead, err := s.leads.FindByID(ctx, objID)
	if err != nil {
		return err
	}
	if !p.Owns(lead.CreatedBy) {
		return auth.ErrForbidden
	}
	return s.leads.Delete(ctx, objID)
}

// LeadStats summarizes the principal's visible pipeline.
type LeadStats struct {
	Total          int           `json:"total"`
	Converted      int           `json:"converted"`
	ConversionRate float64       `json:"conversionRate"`
	ByStatus       []StatusCount `json:"byStatus"`
}

// Stats rolls up the principal's visible leads by status.
func (s *LeadService) Stats(ctx context.Context, p auth.Principal) (*LeadStats, error) {
	leads, err := s.leads.Find(ctx, auth.OwnershipFilter(p))
	if err != nil {
		return nil, err
	}

	converted := CountConverted(leads)
	return &LeadStats{
		Total:          len(leads),
		Converted:      converted,
		ConversionRate: ConversionRate(converted, len(leads)),
		ByStatus:       LeadStatusCounts(leads),
	}, nil
}
