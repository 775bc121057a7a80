// Package service contains application services. Every operation on an
// owned resource takes the resolved principal explicitly; authorization
// is never read from ambient state.
package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"leadsdesk/internal/errs"
	"leadsdesk/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// normalizeEmail lowercases and trims so uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newestFirst sorts by creation time descending.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

// buildLineItems computes per-row totals and the subtotal.
func buildLineItems(inputs []model.LineItemInput) ([]model.LineItem, float64) {
	items := make([]model.LineItem, 0, len(inputs))
	var subTotal float64
	for _, in := range inputs {
		total := round2(float64(in.Quantity) * in.Price)
		items = append(items, model.LineItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			Price:       in.Price,
			Total:       total,
		})
		subTotal += total
	}
	return items, round2(subTotal)
}

// round2 rounds a monetary amount to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseDate accepts a date-only or RFC 3339 value.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", errs.ErrInvalidInput, value)
}
