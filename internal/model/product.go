package model

// Product represents the product master data
type Product struct {
	ID          uint    `json:"id" gorm:"primarykey"`
	ProductName string  `json:"product_name" gorm:"type:varchar(100);not null"`
	Price       float64 `json:"price" gorm:"not null"`

	Orders []Order `json:"orders" gorm:"many2many:order_product"`
}
