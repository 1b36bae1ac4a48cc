package schema

import (
	"time"

	"ecommerce-api/internal/model"
)

// ProductPayload is the wire shape accepted on product create and update.
type ProductPayload struct {
	ProductName *string  `json:"product_name"`
	Price       *float64 `json:"price"`
}

// LoadProduct validates the payload and applies it to the product. Partial
// mode relaxes required-field checks; absent fields are left untouched.
func LoadProduct(p *ProductPayload, prod *model.Product, partial bool) FieldErrors {
	errs := FieldErrors{}

	if p.ProductName == nil {
		if !partial {
			errs.Add("product_name", "product_name is required")
		}
	} else if *p.ProductName == "" {
		errs.Add("product_name", "product_name must not be empty")
	}

	if p.Price == nil && !partial {
		errs.Add("price", "price is required")
	}

	if !errs.Empty() {
		return errs
	}

	if p.ProductName != nil {
		prod.ProductName = *p.ProductName
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	return nil
}

// ProductDump is the full product representation: orders are truncated to
// {id, order_date, user_id} with no nested products or user.
type ProductDump struct {
	ID          uint               `json:"id"`
	ProductName string             `json:"product_name"`
	Price       float64            `json:"price"`
	Orders      []ProductOrderDump `json:"orders"`
}

// ProductOrderDump is an order as seen nested under one of its products.
type ProductOrderDump struct {
	ID        uint      `json:"id"`
	OrderDate time.Time `json:"order_date"`
	UserID    uint      `json:"user_id"`
}

// DumpProduct serializes a product with its truncated orders.
func DumpProduct(p *model.Product) ProductDump {
	orders := make([]ProductOrderDump, 0, len(p.Orders))
	for _, o := range p.Orders {
		orders = append(orders, ProductOrderDump{ID: o.ID, OrderDate: o.OrderDate, UserID: o.UserID})
	}
	return ProductDump{
		ID:          p.ID,
		ProductName: p.ProductName,
		Price:       p.Price,
		Orders:      orders,
	}
}

// DumpProducts serializes a list of products.
func DumpProducts(products []model.Product) []ProductDump {
	out := make([]ProductDump, 0, len(products))
	for i := range products {
		out = append(out, DumpProduct(&products[i]))
	}
	return out
}
