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

// ProjectService implements project CRUD under ownership scoping.
type ProjectService struct {
	projects repository.IProjectRepository
}

func NewProjectService(projects repository.IProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// List returns the projects visible to the principal, newest first.
func (s *ProjectService) List(ctx context.Context, p auth.Principal) ([]*model.Project, error) {
	return s.projects.Find(ctx, auth.OwnershipFilter(p), newestFirst())
}

// Get fetches one project, checking existence before ownership.
func (s *ProjectService) Get(ctx context.Context, p auth.Principal, id string) (*model.Project, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if !p.Owns(project.CreatedBy) {
		return nil, auth.ErrForbidden
	}
	return project, nil
}

// Create stores a new project owned by the principal.
func (s *ProjectService) Create(ctx context.Context, p auth.Principal, in *model.ProjectInput) (*model.Project, error) {
	status := model.ProjectStatus(in.Status)
	if in.Status == "" {
		status = model.ProjectPending
	} else if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown project status %q", errs.ErrInvalidInput, in.Status)
	}

	start := time.Now().UTC()
	if in.StartDate != "" {
		parsed, err := parseDate(in.StartDate)
		if err != nil {
			return nil, err
		}
		start = parsed
	}
	var end *time.Time
	if in.EndDate != "" {
		parsed, err := parseDate(in.EndDate)
		if err != nil {
			return nil, err
		}
		end = &parsed
	}

	return s.projects.Create(ctx, &model.Project{
		Name:      in.Name,
		Client:    in.Client,
		Status:    status,
		Budget:    in.Budget,
		StartDate: start,
		EndDate:   end,
		CreatedBy: p.ID,
	})
}

// Update applies the provided fields to a project the principal owns.
func (s *ProjectService) Update(ctx context.Context, p auth.Principal, id string, in *model.ProjectUpdate) (*model.Project, error) {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if !p.Owns(project.CreatedBy) {
		return nil, auth.ErrForbidden
	}

	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Client != "" {
		fields["client"] = in.Client
	}
	if in.Status != "" {
		status := model.ProjectStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown project status %q", errs.ErrInvalidInput, in.Status)
		}
		fields["status"] = status
	}
	if in.Budget != nil {
		if *in.Budget < 0 {
			return nil, fmt.Errorf("%w: budget cannot be negative", errs.ErrInvalidInput)
		}
		fields["budget"] = *in.Budget
	}
	if in.EndDate != "" {
		end, err := parseDate(in.EndDate)
		if err != nil {
			return nil, err
		}
		fields["endDate"] = end
	}
	if len(fields) == 0 {
		return project, nil
	}

	if err := s.projects.UpdateFields(ctx, objID, fields); err != nil {
		return nil, err
	}
	return s.projects.FindByID(ctx, objID)
}

// ProjectStats summarizes the principal's visible projects.
type ProjectStats struct {
	Total       int                    `json:"total"`
	TotalBudget float64                `json:"totalBudget"`
	ByStatus    []ProjectStatusSummary `json:"byStatus"`
}

// Stats rolls up the principal's visible projects by status.
func (s *ProjectService) Stats(ctx context.Context, p auth.Principal) (*ProjectStats, error) {
	projects, err := s.projects.Find(ctx, auth.OwnershipFilter(p))
	if err != nil {
		return nil, err
	}

	var budget float64
	for _, project := range projects {
		budget += project.Budget
	}
	return &ProjectStats{
		Total:       len(projects),
		TotalBudget: round2(budget),
		ByStatus:    ProjectStatusSummaries(projects),
	}, nil
}

// Delete removes a project the principal owns.
func (s *ProjectService) Delete(ctx context.Context, p auth.Principal, id string) error {
	objID, err := util.ParseObjectID(id)
	if err != nil {
		return err
	}
	project, err := s.projects.FindByID(ctx, objID)
	if err != nil {
		return err
	}
	if !p.Owns(project.CreatedBy) {
		return auth.ErrForbidden
	}
	return s.projects.Delete(ctx, objID)
}
