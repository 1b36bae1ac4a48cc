package handler

import (
	"ecommerce-api/internal/store"

	"github.com/labstack/echo/v4"
)

// Register mounts every API route on the echo instance, wiring each handler
// to the given store handle.
func Register(e *echo.Echo, s *store.Store) {
	users := NewUserHandler(s)
	e.GET("/users", users.List)
	e.GET("/users/:id", users.Get)
	e.POST("/users", users.Create)
	e.PUT("/users/:id", users.Update)
	e.DELETE("/users/:id", users.Delete)

	products := NewProductHandler(s)
	e.GET("/products", products.List)
	e.GET("/products/:id", products.Get)
	e.POST("/products", products.Create)
	e.PUT("/products/:id", products.Update)
	e.DELETE("/products/:id", products.Delete)

	orders := NewOrderHandler(s)
	e.POST("/orders", orders.Create)
	e.PUT("/orders/:order_id/add_product/:product_id", orders.AddProduct)
	e.DELETE("/orders/:order_id/remove_product/:product_id", orders.RemoveProduct)
	e.GET("/orders/user/:user_id", orders.ListByUser)
	e.GET("/orders/:order_id/products", orders.ListProducts)
}
