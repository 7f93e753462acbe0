package service

import (
	"testing"

	"github.com/sangkips/ledgerly-api/internal/domain/repository"
)

func TestListEstimatesIgnoresUnknownSortColumn(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(1, 10)})
	env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(2, 10)})

	// A sort column outside the allowlist falls back to the default
	// ordering instead of reaching the SQL text.
	result, err := env.estimates.ListEstimates(env.ctx, &repository.EstimateFilterParams{
		SortBy:    "grand_total; DROP TABLE estimates",
		SortOrder: "asc",
	})
	if err != nil {
		t.Fatalf("ListEstimates: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d estimates, want 2", len(result.Items))
	}

	result, err = env.estimates.ListEstimates(env.ctx, &repository.EstimateFilterParams{
		SortBy: "grand_total",
	})
	if err != nil {
		t.Fatalf("ListEstimates sorted: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d estimates, want 2", len(result.Items))
	}
	if result.Items[0].GrandTotal.LessThan(result.Items[1].GrandTotal) {
		t.Error("allowlisted column should sort descending by default")
	}
}
