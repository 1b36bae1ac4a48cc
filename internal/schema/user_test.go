package schema_test

import (
	"strings"
	"testing"
	"time"

	"ecommerce-api/internal/model"
	"ecommerce-api/internal/schema"
)

func strPtr(s string) *string { return &s }

func TestLoadUserValid(t *testing.T) {
	var u model.User
	p := schema.UserPayload{
		Name:    strPtr("Ada"),
		Address: strPtr("123 Main Street"),
		Email:   strPtr("ada@example.com"),
	}

	if errs := schema.LoadUser(&p, &u, false); errs != nil {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if u.Name != "Ada" || u.Address != "123 Main Street" || u.Email != "ada@example.com" {
		t.Errorf("Payload not applied: %+v", u)
	}
}

func TestLoadUserAggregatesAllMissingFields(t *testing.T) {
	var u model.User
	errs := schema.LoadUser(&schema.UserPayload{}, &u, false)
	if errs == nil {
		t.Fatal("Expected validation errors")
	}
	for _, field := range []string{"name", "address", "email"} {
		if len(errs[field]) == 0 {
			t.Errorf("Expected an error for %q, got %v", field, errs)
		}
	}
}

func TestLoadUserAggregatesMultipleViolations(t *testing.T) {
	var u model.User
	p := schema.UserPayload{
		Name:    strPtr("Ada"),
		Address: strPtr("abc"),
		Email:   strPtr("not-an-email"),
	}

	errs := schema.LoadUser(&p, &u, false)
	if errs == nil {
		t.Fatal("Expected validation errors")
	}
	if len(errs["address"]) == 0 || len(errs["email"]) == 0 {
		t.Errorf("Expected both address and email errors, got %v", errs)
	}
	// Validation failure must leave the target untouched.
	if u.Address != "" || u.Email != "" {
		t.Errorf("Expected user unmodified on failure, got %+v", u)
	}
}

func TestLoadUserAddressBounds(t *testing.T) {
	cases := []struct {
		name    string
		address string
		ok      bool
	}{
		{"too short", "1234", false},
		{"min length", "12345", true},
		{"max length", strings.Repeat("a", 150), true},
		{"too long", strings.Repeat("a", 151), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var u model.User
			p := schema.UserPayload{
				Name:    strPtr("Ada"),
				Address: strPtr(tc.address),
				Email:   strPtr("ada@example.com"),
			}
			errs := schema.LoadUser(&p, &u, false)
			if tc.ok && errs != nil {
				t.Errorf("Expected address %d chars to pass, got %v", len(tc.address), errs)
			}
			if !tc.ok && len(errs["address"]) == 0 {
				t.Errorf("Expected address error for %d chars", len(tc.address))
			}
		})
	}
}

func TestLoadUserRejectsDisplayNameEmail(t *testing.T) {
	var u model.User
	p := schema.UserPayload{
		Name:    strPtr("Ada"),
		Address: strPtr("123 Main Street"),
		Email:   strPtr("Ada Lovelace <ada@example.com>"),
	}

	if errs := schema.LoadUser(&p, &u, false); len(errs["email"]) == 0 {
		t.Errorf("Expected email error, got %v", errs)
	}
}

func TestLoadUserPartialLeavesAbsentFields(t *testing.T) {
	u := model.User{Name: "Ada", Address: "123 Main Street", Email: "ada@example.com"}
	p := schema.UserPayload{Address: strPtr("1 Analytical Engine Way")}

	if errs := schema.LoadUser(&p, &u, true); errs != nil {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if u.Address != "1 Analytical Engine Way" {
		t.Errorf("Expected address updated, got %q", u.Address)
	}
	if u.Name != "Ada" || u.Email != "ada@example.com" {
		t.Errorf("Expected absent fields untouched, got %+v", u)
	}
}

func TestLoadUserPartialStillValidatesPresentFields(t *testing.T) {
	u := model.User{Name: "Ada", Address: "123 Main Street", Email: "ada@example.com"}
	p := schema.UserPayload{Email: strPtr("broken")}

	errs := schema.LoadUser(&p, &u, true)
	if len(errs["email"]) == 0 {
		t.Fatalf("Expected email error in partial mode, got %v", errs)
	}
	if u.Email != "ada@example.com" {
		t.Errorf("Expected email untouched on failure, got %q", u.Email)
	}
}

func TestDumpUserTruncatesOrders(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	u := model.User{
		ID:      1,
		Name:    "Ada",
		Address: "123 Main Street",
		Email:   "ada@example.com",
		Orders: []model.Order{
			{ID: 7, OrderDate: when, UserID: 1, Products: []model.Product{{ID: 3}}},
		},
	}

	dump := schema.DumpUser(&u)
	if dump.ID != 1 || dump.Name != "Ada" || dump.Email != "ada@example.com" {
		t.Errorf("Unexpected dump: %+v", dump)
	}
	if len(dump.Orders) != 1 {
		t.Fatalf("Expected 1 nested order, got %d", len(dump.Orders))
	}
	// Nested orders carry only id and order_date.
	if dump.Orders[0].ID != 7 || !dump.Orders[0].OrderDate.Equal(when) {
		t.Errorf("Unexpected nested order: %+v", dump.Orders[0])
	}
}

func TestDumpUsersEmptyIsNotNil(t *testing.T) {
	if schema.DumpUsers(nil) == nil {
		t.Error("Expected empty slice, not nil, so the body encodes as []")
	}
}
