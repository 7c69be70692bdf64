package utils

import (
	"fmt"
	"time"

	"catalog-service/models"
)

// SaleStatusAt derives a sale's lifecycle status at the given instant.
// Both boundaries are inclusive: a sale is active at its exact start and
// exact end.
func SaleStatusAt(start, end, now time.Time) models.SaleStatus {
	if now.Before(start) {
		return models.SaleStatusUpcoming
	}
	if !now.After(end) {
		return models.SaleStatusActive
	}
	return models.SaleStatusEnded
}

// GetSaleStatus derives the status at the current instant. Callers must not
// cache the result; it changes as time passes.
func GetSaleStatus(start, end time.Time) models.SaleStatus {
	return SaleStatusAt(start, end, time.Now())
}

// FormatDateRange renders a sale's date range for display. Same-year ranges
// show the year once: "Mar 15 - Mar 22, 2024". Cross-year ranges show both
// full dates: "Dec 30, 2023 - Jan 2, 2024".
func FormatDateRange(start, end time.Time) string {
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}
