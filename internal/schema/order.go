package schema

import (
	"time"

	"ecommerce-api/internal/model"
)

// OrderPayload is the wire shape accepted on order create. order_date is
// optional; the model defaults it to the current UTC time.
type OrderPayload struct {
	OrderDate *time.Time `json:"order_date"`
	UserID    *uint      `json:"user_id"`
}

// LoadOrder validates the payload and applies it to the order. Referential
// existence of user_id is the store's concern, not the schema's.
func LoadOrder(p *OrderPayload, o *model.Order, partial bool) FieldErrors {
	errs := FieldErrors{}

	if p.UserID == nil && !partial {
		errs.Add("user_id", "user_id is required")
	}

	if !errs.Empty() {
		return errs
	}

	if p.UserID != nil {
		o.UserID = *p.UserID
	}
	if p.OrderDate != nil {
		o.OrderDate = p.OrderDate.UTC()
	}
	return nil
}

// OrderDump is the full order representation: the user is truncated to
// {id, name, email} and products to {id, product_name, price}, so neither
// side recurses back into orders.
type OrderDump struct {
	ID        uint               `json:"id"`
	OrderDate time.Time          `json:"order_date"`
	UserID    uint               `json:"user_id"`
	User      OrderUserDump      `json:"user"`
	Products  []OrderProductDump `json:"products"`
}

// OrderUserDump is a user as seen nested under one of their orders.
type OrderUserDump struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderProductDump is a product as seen nested under an order.
type OrderProductDump struct {
	ID          uint    `json:"id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
}

// DumpOrder serializes an order with its truncated user and products.
func DumpOrder(o *model.Order) OrderDump {
	products := make([]OrderProductDump, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, OrderProductDump{ID: p.ID, ProductName: p.ProductName, Price: p.Price})
	}
	return OrderDump{
		ID:        o.ID,
		OrderDate: o.OrderDate,
		UserID:    o.UserID,
		User:      OrderUserDump{ID: o.User.ID, Name: o.User.Name, Email: o.User.Email},
		Products:  products,
	}
}

// DumpOrders serializes a list of orders.
func DumpOrders(orders []model.Order) []OrderDump {
	out := make([]OrderDump, 0, len(orders))
	for i := range orders {
		out = append(out, DumpOrder(&orders[i]))
	}
	return out
}
