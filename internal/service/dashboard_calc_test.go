package service

import (
	"testing"
	"time"

	"leadsdesk/internal/model"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func leadWith(status model.LeadStatus, owner primitive.ObjectID, createdAt time.Time) *model.Lead {
	return &model.Lead{ID: primitive.NewObjectID(), Status: status, CreatedBy: owner, CreatedAt: createdAt}
}

func paymentWith(status model.PaymentStatus, total float64, owner primitive.ObjectID, createdAt time.Time) *model.Payment {
	return &model.Payment{ID: primitive.NewObjectID(), Status: status, TotalAmount: total, CreatedBy: owner, CreatedAt: createdAt}
}

func TestPaidRevenue_OnlySettledPaymentsCount(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	now := time.Now().UTC()
	payments := []*model.Payment{
		paymentWith(model.PaymentPaid, 100.10, owner, now),
		paymentWith(model.PaymentPaid, 49.90, owner, now),
		paymentWith(model.PaymentPending, 1000, owner, now),
		paymentWith(model.PaymentFailed, 500, owner, now),
		paymentWith(model.PaymentRefunded, 250, owner, now),
	}

	require.Equal(t, 150.0, PaidRevenue(payments))
	require.Equal(t, 0.0, PaidRevenue(nil))
}

func TestConversionRate(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.0, ConversionRate(0, 0))
	require.Equal(t, 50.0, ConversionRate(1, 2))
	require.Equal(t, 33.33, ConversionRate(1, 3))
}

func TestLeadStatusCounts_SortedByStatus(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	now := time.Now().UTC()
	leads := []*model.Lead{
		leadWith(model.LeadNew, owner, now),
		leadWith(model.LeadNew, owner, now),
		leadWith(model.LeadConverted, owner, now),
	}

	require.Equal(t, []StatusCount{
		{Status: "Converted", Count: 1},
		{Status: "New", Count: 2},
	}, LeadStatusCounts(leads))
}

func TestDailySeries_FilterSortAndBucket(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	day1 := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 21, 17, 30, 0, 0, time.UTC)
	old := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	since := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	leads := []*model.Lead{
		leadWith(model.LeadNew, owner, day2),
		leadWith(model.LeadNew, owner, day1),
		leadWith(model.LeadNew, owner, day1),
		leadWith(model.LeadNew, owner, old),
	}
	require.Equal(t, []DailyCount{
		{Date: "2026-08-20", Count: 2},
		{Date: "2026-08-21", Count: 1},
	}, DailyLeadCounts(leads, since))

	payments := []*model.Payment{
		paymentWith(model.PaymentPaid, 120, owner, day1),
		paymentWith(model.PaymentPaid, 80, owner, day1),
		paymentWith(model.PaymentPending, 999, owner, day1),
		paymentWith(model.PaymentPaid, 40, owner, old),
	}
	require.Equal(t, []DailyTotal{
		{Date: "2026-08-20", Total: 200},
	}, DailyRevenue(payments, since))
}

func TestMonthlyRevenue_BucketsByMonth(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	since := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	payments := []*model.Payment{
		paymentWith(model.PaymentPaid, 100, owner, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)),
		paymentWith(model.PaymentPaid, 200, owner, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)),
		paymentWith(model.PaymentPaid, 50, owner, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)),
		paymentWith(model.PaymentPaid, 10, owner, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	require.Equal(t, []MonthlyTotal{
		{Month: "2026-01", Total: 300},
		{Month: "2026-03", Total: 50},
	}, MonthlyRevenue(payments, since))
}

func TestProjectStatusSummaries_CountAndBudget(t *testing.T) {
	t.Parallel()

	owner := primitive.NewObjectID()
	projects := []*model.Project{
		{ID: primitive.NewObjectID(), Status: model.ProjectPending, Budget: 1000, CreatedBy: owner},
		{ID: primitive.NewObjectID(), Status: model.ProjectPending, Budget: 500, CreatedBy: owner},
		{ID: primitive.NewObjectID(), Status: model.ProjectCompleted, Budget: 2500, CreatedBy: owner},
	}

	require.Equal(t, []ProjectStatusSummary{
		{Status: "Completed", Count: 1, TotalBudget: 2500},
		{Status: "Pending", Count: 2, TotalBudget: 1500},
	}, ProjectStatusSummaries(projects))
}

func TestAgentPerformances_SortedByRevenue(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	star := &model.User{ID: primitive.NewObjectID(), Name: "Star", Email: "star@example.com"}
	rookie := &model.User{ID: primitive.NewObjectID(), Name: "Rookie", Email: "rookie@example.com"}

	leads := []*model.Lead{
		leadWith(model.LeadConverted, star.ID, now),
		leadWith(model.LeadNew, star.ID, now),
		leadWith(model.LeadNew, rookie.ID, now),
	}
	projects := []*model.Project{
		{ID: primitive.NewObjectID(), CreatedBy: star.ID},
	}
	payments := []*model.Payment{
		paymentWith(model.PaymentPaid, 900, star.ID, now),
		paymentWith(model.PaymentPaid, 100, rookie.ID, now),
		paymentWith(model.PaymentPending, 5000, rookie.ID, now),
	}

	perf := AgentPerformances([]*model.User{rookie, star}, leads, projects, payments)
	require.Len(t, perf, 2)

	require.Equal(t, "Star", perf[0].AgentName)
	require.Equal(t, 2, perf[0].TotalLeads)
	require.Equal(t, 1, perf[0].TotalProjects)
	require.Equal(t, 900.0, perf[0].TotalRevenue)
	require.Equal(t, 50.0, perf[0].ConversionRate)

	require.Equal(t, "Rookie", perf[1].AgentName)
	require.Equal(t, 100.0, perf[1].TotalRevenue)
	require.Equal(t, 0.0, perf[1].ConversionRate)
}

func TestAgentLeadBreakdowns_SplitsBySourceAndStatus(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	agent := &model.User{ID: primitive.NewObjectID(), Name: "Agent", Email: "agent@example.com"}
	leads := []*model.Lead{
		{ID: primitive.NewObjectID(), Status: model.LeadNew, Source: model.SourceWebsite, CreatedBy: agent.ID, CreatedAt: now},
		{ID: primitive.NewObjectID(), Status: model.LeadConverted, Source: model.SourceWebsite, CreatedBy: agent.ID, CreatedAt: now},
		{ID: primitive.NewObjectID(), Status: model.LeadNew, Source: model.SourceReferral, CreatedBy: agent.ID, CreatedAt: now},
	}

	out := AgentLeadBreakdowns([]*model.User{agent}, leads, now.AddDate(0, 0, -30))
	require.Len(t, out, 1)
	require.Equal(t, 3, out[0].TotalLeads)
	require.Equal(t, 1, out[0].Converted)
	require.Equal(t, []StatusCount{
		{Status: "Referral", Count: 1},
		{Status: "Website", Count: 2},
	}, out[0].BySource)
	require.Equal(t, []StatusCount{
		{Status: "Converted", Count: 1},
		{Status: "New", Count: 2},
	}, out[0].ByStatus)
}
