package service

import (
	"sort"
	"time"

	"leadsdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rollup computations for the dashboards. These are plain group-by and
// reduce functions over already-scoped slices, so the same code serves
// the global admin view and a single CSR's view.

const dayFormat = "2006-01-02"

// StatusCount is one bucket of a count-by-status rollup.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// LeadStatusCounts groups leads by status, sorted by status name.
func LeadStatusCounts(leads []*model.Lead) []StatusCount {
	byStatus := map[string]int{}
	for _, l := range leads {
		byStatus[string(l.Status)]++
	}
	return sortedStatusCounts(byStatus)
}

// ConversionRate is the converted share of total as a percentage,
// rounded to two decimals. Zero totals yield zero.
func ConversionRate(converted, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(converted) / float64(total) * 100)
}

// CountConverted counts leads in the Converted status.
func CountConverted(leads []*model.Lead) int {
	n := 0
	for _, l := range leads {
		if l.Status == model.LeadConverted {
			n++
		}
	}
	return n
}

// ProjectStatusSummary is one bucket of a projects-by-status rollup.
type ProjectStatusSummary struct {
	Status      string  `json:"status"`
	Count       int     `json:"count"`
	TotalBudget float64 `json:"totalBudget"`
}

// ProjectStatusSummaries groups projects by status with budget totals,
// sorted by status name.
func ProjectStatusSummaries(projects []*model.Project) []ProjectStatusSummary {
	type bucket struct {
		count  int
		budget float64
	}
	byStatus := map[string]*bucket{}
	for _, p := range projects {
		b, ok := byStatus[string(p.Status)]
		if !ok {
			b = &bucket{}
			byStatus[string(p.Status)] = b
		}
		b.count++
		b.budget += p.Budget
	}

	out := make([]ProjectStatusSummary, 0, len(byStatus))
	for status, b := range byStatus {
		out = append(out, ProjectStatusSummary{Status: status, Count: b.count, TotalBudget: round2(b.budget)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

// PaidRevenue sums the totals of settled payments. Pending, failed and
// refunded payments never count toward revenue.
func PaidRevenue(payments []*model.Payment) float64 {
	var total float64
	for _, p := range payments {
		if p.Status == model.PaymentPaid {
			total += p.TotalAmount
		}
	}
	return round2(total)
}

// DailyCount is one day's bucket of a per-day count series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyLeadCounts counts leads created on or after since per calendar
// day, sorted by date ascending.
func DailyLeadCounts(leads []*model.Lead, since time.Time) []DailyCount {
	byDay := map[string]int{}
	for _, l := range leads {
		if l.CreatedAt.Before(since) {
			continue
		}
		byDay[l.CreatedAt.UTC().Format(dayFormat)]++
	}

	out := make([]DailyCount, 0, len(byDay))
	for day, n := range byDay {
		out = append(out, DailyCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// DailyTotal is one day's bucket of a per-day revenue series.
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// DailyRevenue sums settled payments created on or after since per
// calendar day, sorted by date ascending.
func DailyRevenue(payments []*model.Payment, since time.Time) []DailyTotal {
	byDay := map[string]float64{}
	for _, p := range payments {
		if p.Status != model.PaymentPaid || p.CreatedAt.Before(since) {
			continue
		}
		byDay[p.CreatedAt.UTC().Format(dayFormat)] += p.TotalAmount
	}

	out := make([]DailyTotal, 0, len(byDay))
	for day, total := range byDay {
		out = append(out, DailyTotal{Date: day, Total: round2(total)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MonthlyTotal is one month's bucket of a per-month revenue series.
type MonthlyTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// MonthlyRevenue sums settled payments created on or after since per
// calendar month ("2006-01"), sorted ascending.
func MonthlyRevenue(payments []*model.Payment, since time.Time) []MonthlyTotal {
	byMonth := map[string]float64{}
	for _, p := range payments {
		if p.Status != model.PaymentPaid || p.CreatedAt.Before(since) {
			continue
		}
		byMonth[p.CreatedAt.UTC().Format("2006-01")] += p.TotalAmount
	}

	out := make([]MonthlyTotal, 0, len(byMonth))
	for month, total := range byMonth {
		out = append(out, MonthlyTotal{Month: month, Total: round2(total)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// AgentPerformance is one CSR's rollup across resources they own.
type AgentPerformance struct {
	AgentID        string  `json:"agentId"`
	AgentName      string  `json:"agentName"`
	AgentEmail     string  `json:"agentEmail"`
	TotalLeads     int     `json:"totalLeads"`
	TotalProjects  int     `json:"totalProjects"`
	TotalRevenue   float64 `json:"totalRevenue"`
	ConversionRate float64 `json:"conversionRate"`
}

// AgentPerformances computes per-CSR totals across owned resources,
// sorted by revenue descending.
func AgentPerformances(csrs []*model.User, leads []*model.Lead, projects []*model.Project, payments []*model.Payment) []AgentPerformance {
	leadsByOwner := map[primitive.ObjectID][]*model.Lead{}
	for _, l := range leads {
		leadsByOwner[l.CreatedBy] = append(leadsByOwner[l.CreatedBy], l)
	}
	projectsByOwner := map[primitive.ObjectID]int{}
	for _, p := range projects {
		projectsByOwner[p.CreatedBy]++
	}
	revenueByOwner := map[primitive.ObjectID]float64{}
	for _, p := range payments {
		if p.Status == model.PaymentPaid {
			revenueByOwner[p.CreatedBy] += p.TotalAmount
		}
	}

	out := make([]AgentPerformance, 0, len(csrs))
	for _, csr := range csrs {
		owned := leadsByOwner[csr.ID]
		out = append(out, AgentPerformance{
			AgentID:        csr.ID.Hex(),
			AgentName:      csr.Name,
			AgentEmail:     csr.Email,
			TotalLeads:     len(owned),
			TotalProjects:  projectsByOwner[csr.ID],
			TotalRevenue:   round2(revenueByOwner[csr.ID]),
			ConversionRate: ConversionRate(CountConverted(owned), len(owned)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out
}

// AgentLeadBreakdown is one CSR's lead volume with per-day, per-source
// and per-status splits.
type AgentLeadBreakdown struct {
	AgentID    string        `json:"agentId"`
	AgentName  string        `json:"agentName"`
	AgentEmail string        `json:"agentEmail"`
	TotalLeads int           `json:"totalLeads"`
	Converted  int           `json:"converted"`
	Daily      []DailyCount  `json:"daily"`
	BySource   []StatusCount `json:"bySource"`
	ByStatus   []StatusCount `json:"byStatus"`
}

// AgentLeadBreakdowns splits each CSR's leads date-wise (last 30 days),
// source-wise and status-wise, sorted by lead volume descending.
func AgentLeadBreakdowns(csrs []*model.User, leads []*model.Lead, dailySince time.Time) []AgentLeadBreakdown {
	byOwner := map[primitive.ObjectID][]*model.Lead{}
	for _, l := range leads {
		byOwner[l.CreatedBy] = append(byOwner[l.CreatedBy], l)
	}

	out := make([]AgentLeadBreakdown, 0, len(csrs))
	for _, csr := range csrs {
		owned := byOwner[csr.ID]

		bySource := map[string]int{}
		byStatus := map[string]int{}
		for _, l := range owned {
			bySource[string(l.Source)]++
			byStatus[string(l.Status)]++
		}

		out = append(out, AgentLeadBreakdown{
			AgentID:    csr.ID.Hex(),
			AgentName:  csr.Name,
			AgentEmail: csr.Email,
			TotalLeads: len(owned),
			Converted:  CountConverted(owned),
			Daily:      DailyLeadCounts(owned, dailySince),
			BySource:   sortedStatusCounts(bySource),
			ByStatus:   sortedStatusCounts(byStatus),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalLeads > out[j].TotalLeads })
	return out
}

func sortedStatusCounts(byKey map[string]int) []StatusCount {
	out := make([]StatusCount, 0, len(byKey))
	for k, n := range byKey {
		out = append(out, StatusCount{Status: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}
