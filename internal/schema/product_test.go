package schema_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"ecommerce-api/internal/model"
	"ecommerce-api/internal/schema"
)

func floatPtr(v float64) *float64 { return &v }

func TestLoadProductValid(t *testing.T) {
	var p model.Product
	payload := schema.ProductPayload{ProductName: strPtr("Widget"), Price: floatPtr(9.99)}

	if errs := schema.LoadProduct(&payload, &p, false); errs != nil {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if p.ProductName != "Widget" || p.Price != 9.99 {
		t.Errorf("Payload not applied: %+v", p)
	}
}

func TestLoadProductAggregatesMissingFields(t *testing.T) {
	var p model.Product
	errs := schema.LoadProduct(&schema.ProductPayload{}, &p, false)
	if len(errs["product_name"]) == 0 || len(errs["price"]) == 0 {
		t.Errorf("Expected product_name and price errors, got %v", errs)
	}
}

func TestLoadProductPartial(t *testing.T) {
	p := model.Product{ProductName: "Widget", Price: 9.99}
	payload := schema.ProductPayload{Price: floatPtr(12.50)}

	if errs := schema.LoadProduct(&payload, &p, true); errs != nil {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if p.Price != 12.50 {
		t.Errorf("Expected price updated, got %v", p.Price)
	}
	if p.ProductName != "Widget" {
		t.Errorf("Expected product_name untouched, got %q", p.ProductName)
	}
}

func TestDumpProductTruncatesOrders(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := model.Product{
		ID:          3,
		ProductName: "Widget",
		Price:       9.99,
		Orders: []model.Order{
			{ID: 2, OrderDate: when, UserID: 1, User: model.User{ID: 1, Name: "Ada"}},
		},
	}

	dump := schema.DumpProduct(&p)
	if dump.ID != 3 || dump.ProductName != "Widget" || dump.Price != 9.99 {
		t.Errorf("Unexpected dump: %+v", dump)
	}
	if len(dump.Orders) != 1 {
		t.Fatalf("Expected 1 nested order, got %d", len(dump.Orders))
	}
	o := dump.Orders[0]
	if o.ID != 2 || o.UserID != 1 || !o.OrderDate.Equal(when) {
		t.Errorf("Unexpected nested order: %+v", o)
	}
}

// The nested order under a product must not expose a user or products key at
// all, only {id, order_date, user_id}.
func TestProductOrderDumpWireShape(t *testing.T) {
	dump := schema.ProductOrderDump{ID: 2, OrderDate: time.Now().UTC(), UserID: 1}
	raw, err := json.Marshal(dump)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, forbidden := range []string{"\"user\"", "\"products\"", "\"name\"", "\"email\""} {
		if strings.Contains(string(raw), forbidden) {
			t.Errorf("Nested order exposes %s: %s", forbidden, raw)
		}
	}
}
