package postgres

import (
	"strings"
	"testing"

	"stockbook/internal/core/id"
)

func TestItemReportQuery_Unfiltered(t *testing.T) {
	ownerID := id.New()
	query, args := itemReportQuery(ownerID, "")

	// Unsold items must survive the join with an explicit zero.
	wantClauses := []string{
		"LEFT JOIN",
		"COALESCE(s.sold_qty, 0) AS sold_qty",
		"GROUP BY item_id",
		"ORDER BY i.name ASC",
	}
	for _, clause := range wantClauses {
		if !strings.Contains(query, clause) {
			t.Errorf("query missing %q\ngot: %s", clause, query)
		}
	}

	if strings.Contains(query, "$2") {
		t.Errorf("unfiltered query must not bind a name\ngot: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("args count = %d, want 1", len(args))
	}
	if args[0] != ownerID {
		t.Errorf("args[0] = %v, want %v", args[0], ownerID)
	}
}

func TestItemReportQuery_NameFilter(t *testing.T) {
	ownerID := id.New()
	query, args := itemReportQuery(ownerID, "tea powder")

	if !strings.Contains(query, "lower(i.name) = $2") {
		t.Errorf("query missing case-insensitive name filter\ngot: %s", query)
	}
	if !strings.Contains(query, "ORDER BY i.name ASC") {
		t.Errorf("query missing name ordering\ngot: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("args count = %d, want 2", len(args))
	}
	if args[1] != "tea powder" {
		t.Errorf("args[1] = %v, want %q", args[1], "tea powder")
	}
}

func TestSalesBetweenQuery_InclusiveTimezoneBounds(t *testing.T) {
	// Dates are compared as civil dates in the reporting timezone, both
	// bounds inclusive.
	wantClauses := []string{
		"(s.created_at AT TIME ZONE $2)::date BETWEEN $3::date AND $4::date",
		"JOIN items i ON i.id = s.item_id",
		"ORDER BY s.created_at ASC",
	}
	for _, clause := range wantClauses {
		if !strings.Contains(salesBetweenQuery, clause) {
			t.Errorf("query missing %q\ngot: %s", clause, salesBetweenQuery)
		}
	}
}
