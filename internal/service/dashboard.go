package service

import (
	"context"
	"time"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/model"
	"leadsdesk/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DashboardService builds the read-only rollups behind the admin and
// CSR dashboards. Scoping follows the same ownership rule as the
// resource services: admins see everything, CSRs see their own records.
type DashboardService struct {
	users    repository.IUserRepository
	leads    repository.ILeadRepository
	projects repository.IProjectRepository
	payments repository.IPaymentRepository
	invoices repository.IInvoiceRepository
}

func NewDashboardService(
	users repository.IUserRepository,
	leads repository.ILeadRepository,
	projects repository.IProjectRepository,
	payments repository.IPaymentRepository,
	invoices repository.IInvoiceRepository,
) *DashboardService {
	return &DashboardService{
		users:    users,
		leads:    leads,
		projects: projects,
		payments: payments,
		invoices: invoices,
	}
}

// Overview is the headline counter block of a dashboard.
type Overview struct {
	TotalLeads     int     `json:"totalLeads"`
	TotalProjects  int     `json:"totalProjects"`
	TotalInvoices  int64   `json:"totalInvoices,omitempty"`
	TotalCSRs      int64   `json:"totalCSRs,omitempty"`
	TotalRevenue   float64 `json:"totalRevenue"`
	ConversionRate float64 `json:"conversionRate"`
}

// RecentActivity lists the newest records of the last 30 days.
type RecentActivity struct {
	Leads    []*model.Lead    `json:"leads"`
	Projects []*model.Project `json:"projects"`
	Invoices []*model.Invoice `json:"invoices,omitempty"`
}

// DailyStats carries the 7-day lead and revenue series.
type DailyStats struct {
	Leads   []DailyCount `json:"leads"`
	Revenue []DailyTotal `json:"revenue"`
}

// Dashboard is the full rollup payload for both dashboard views.
type Dashboard struct {
	Overview         Overview               `json:"overview"`
	LeadsByStatus    []StatusCount          `json:"leadsByStatus"`
	ProjectsByStatus []ProjectStatusSummary `json:"projectsByStatus"`
	CSRPerformance   []AgentPerformance     `json:"csrPerformance,omitempty"`
	RecentActivity   RecentActivity         `json:"recentActivity"`
	DailyStats       DailyStats             `json:"dailyStats"`
	MonthlyRevenue   []MonthlyTotal         `json:"monthlyRevenue,omitempty"`
}

// AdminDashboard builds the global rollup: totals, per-status splits,
// per-CSR performance, recent activity and the daily/monthly series.
func (s *DashboardService) AdminDashboard(ctx context.Context) (*Dashboard, error) {
	leads, err := s.leads.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	totalInvoices, err := s.invoices.Count(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	csrs, err := s.users.Find(ctx, bson.M{"role": auth.RoleCSR})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sevenDaysAgo := now.AddDate(0, 0, -7)
	thirtyDaysAgo := now.AddDate(0, 0, -30)
	twelveMonthsAgo := now.AddDate(0, -12, 0)

	recentLeads, err := s.leads.Find(ctx, sinceFilter(bson.M{}, thirtyDaysAgo), recent(5))
	if err != nil {
		return nil, err
	}
	recentProjects, err := s.projects.Find(ctx, sinceFilter(bson.M{}, thirtyDaysAgo), recent(5))
	if err != nil {
		return nil, err
	}
	recentInvoices, err := s.invoices.Find(ctx, sinceFilter(bson.M{}, thirtyDaysAgo), recent(5))
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Overview: Overview{
			TotalLeads:     len(leads),
			TotalProjects:  len(projects),
			TotalInvoices:  totalInvoices,
			TotalCSRs:      int64(len(csrs)),
			TotalRevenue:   PaidRevenue(payments),
			ConversionRate: ConversionRate(CountConverted(leads), len(leads)),
		},
		LeadsByStatus:    LeadStatusCounts(leads),
		ProjectsByStatus: ProjectStatusSummaries(projects),
		CSRPerformance:   AgentPerformances(csrs, leads, projects, payments),
		RecentActivity: RecentActivity{
			Leads:    recentLeads,
			Projects: recentProjects,
			Invoices: recentInvoices,
		},
		DailyStats: DailyStats{
			Leads:   DailyLeadCounts(leads, sevenDaysAgo),
			Revenue: DailyRevenue(payments, sevenDaysAgo),
		},
		MonthlyRevenue: MonthlyRevenue(payments, twelveMonthsAgo),
	}, nil
}

// CSRDashboard builds the same rollup restricted to the principal's
// own records.
func (s *DashboardService) CSRDashboard(ctx context.Context, p auth.Principal) (*Dashboard, error) {
	scope := auth.OwnershipFilter(p)

	leads, err := s.leads.Find(ctx, scope)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.Find(ctx, scope)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.Find(ctx, scope)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sevenDaysAgo := now.AddDate(0, 0, -7)
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	recentLeads, err := s.leads.Find(ctx, sinceFilter(scope, thirtyDaysAgo), recent(10))
	if err != nil {
		return nil, err
	}
	recentProjects, err := s.projects.Find(ctx, sinceFilter(scope, thirtyDaysAgo), recent(10))
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Overview: Overview{
			TotalLeads:     len(leads),
			TotalProjects:  len(projects),
			TotalRevenue:   PaidRevenue(payments),
			ConversionRate: ConversionRate(CountConverted(leads), len(leads)),
		},
		LeadsByStatus:    LeadStatusCounts(leads),
		ProjectsByStatus: ProjectStatusSummaries(projects),
		RecentActivity: RecentActivity{
			Leads:    recentLeads,
			Projects: recentProjects,
		},
		DailyStats: DailyStats{
			Leads:   DailyLeadCounts(leads, sevenDaysAgo),
			Revenue: DailyRevenue(payments, sevenDaysAgo),
		},
	}, nil
}

// AgentAnalytics is the per-agent lead breakdown payload.
type AgentAnalytics struct {
	Performance []AgentPerformance   `json:"performance"`
	Leads       []AgentLeadBreakdown `json:"leads"`
}

// AgentAnalytics rolls every CSR's lead volume up by day, source and
// status.
func (s *DashboardService) AgentAnalytics(ctx context.Context) (*AgentAnalytics, error) {
	csrs, err := s.users.Find(ctx, bson.M{"role": auth.RoleCSR})
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
	return &AgentAnalytics{
		Performance: AgentPerformances(csrs, leads, projects, payments),
		Leads:       AgentLeadBreakdowns(csrs, leads, thirtyDaysAgo),
	}, nil
}

// sinceFilter copies the scope filter and adds a createdAt lower bound.
func sinceFilter(scope bson.M, since time.Time) bson.M {
	filter := bson.M{"createdAt": bson.M{"$gte": since}}
	for k, v := range scope {
		filter[k] = v
	}
	return filter
}

// recent sorts newest first and caps the result size.
func recent(limit int64) *options.FindOptions {
	return newestFirst().SetLimit(limit)
}
