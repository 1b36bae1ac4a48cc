package model

import (
	"time"

	"gorm.io/gorm"
)

// Order represents a placed order belonging to one user. Products are
// attached through the order_product join table, which holds nothing but
// the (order_id, product_id) pair.
type Order struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	OrderDate time.Time `json:"order_date"`
	UserID    uint      `json:"user_id" gorm:"not null"`

	User     User      `json:"user" gorm:"foreignKey:UserID"`
	Products []Product `json:"products" gorm:"many2many:order_product"`
}

// BeforeCreate defaults the order date to the current UTC time when the
// caller did not supply one.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	return nil
}
