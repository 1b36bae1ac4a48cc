package model

// User represents a customer account that places orders
type User struct {
	ID      uint   `json:"id" gorm:"primarykey"`
	Name    string `json:"name" gorm:"type:varchar(100);not null"`
	Address string `json:"address" gorm:"type:varchar(200);not null"`
	Email   string `json:"email" gorm:"type:varchar(120);unique;not null"`

	Orders []Order `json:"orders" gorm:"foreignKey:UserID"`
}
