package handler

import (
	"errors"
	"net/http"
	"time"

	"ecommerce-api/internal/model"
	"ecommerce-api/internal/schema"
	"ecommerce-api/internal/store"
	"ecommerce-api/pkg/logger"
	"ecommerce-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderHandler serves the /orders endpoints over an injected store handle.
type OrderHandler struct {
	store *store.Store
}

// NewOrderHandler returns an OrderHandler backed by the given store.
func NewOrderHandler(s *store.Store) *OrderHandler {
	return &OrderHandler{store: s}
}

// Create handles creating a new order for an existing user
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var payload schema.OrderPayload
	if err := c.Bind(&payload); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var order model.Order
	if errs := schema.LoadOrder(&payload, &order, false); errs != nil {
		log.Warn("Order payload failed validation", zap.Any("field_errors", errs))
		prometheus.RecordValidationFailure("order")
		return c.JSON(http.StatusBadRequest, errs)
	}

	// An order must reference an existing user at creation time.
	if _, err := h.store.GetUser(c.Request().Context(), order.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Order references unknown user", zap.Uint("user_id", order.UserID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to check order user", zap.Uint("user_id", order.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create order"})
	}

	defer prometheus.TrackDBOperation("create_order")(time.Now())
	if err := h.store.CreateOrder(c.Request().Context(), &order); err != nil {
		log.Error("Failed to create order", zap.Uint("user_id", order.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create order"})
	}

	log.Info("Order created successfully",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID))
	prometheus.RecordOrderOperation("create")
	return c.JSON(http.StatusCreated, schema.DumpOrder(&order))
}

// AddProduct links a product to an order. Linking an already-linked pair is
// a no-op and still answers 200 with the order.
func (h *OrderHandler) AddProduct(c echo.Context) error {
	log := logger.FromContext(c)

	order, product, errResp := h.orderAndProduct(c, http.StatusBadRequest)
	if errResp != nil {
		return errResp(c)
	}

	defer prometheus.TrackDBOperation("link_product")(time.Now())
	if err := h.store.AddProduct(c.Request().Context(), order, product); err != nil {
		log.Error("Failed to link product to order",
			zap.Uint("order_id", order.ID),
			zap.Uint("product_id", product.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to add product to order"})
	}

	log.Info("Product linked to order",
		zap.Uint("order_id", order.ID),
		zap.Uint("product_id", product.ID))
	prometheus.RecordOrderOperation("add_product")
	return h.respondWithOrder(c, order.ID)
}

// RemoveProduct unlinks a product from an order. Unlinking a pair that was
// never linked is a no-op and still answers 200 with the order.
func (h *OrderHandler) RemoveProduct(c echo.Context) error {
	log := logger.FromContext(c)

	order, product, errResp := h.orderAndProduct(c, http.StatusNotFound)
	if errResp != nil {
		return errResp(c)
	}

	defer prometheus.TrackDBOperation("unlink_product")(time.Now())
	if err := h.store.RemoveProduct(c.Request().Context(), order, product); err != nil {
		log.Error("Failed to unlink product from order",
			zap.Uint("order_id", order.ID),
			zap.Uint("product_id", product.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to remove product from order"})
	}

	log.Info("Product unlinked from order",
		zap.Uint("order_id", order.ID),
		zap.Uint("product_id", product.ID))
	prometheus.RecordOrderOperation("remove_product")
	return h.respondWithOrder(c, order.ID)
}

// ListByUser handles retrieving all orders placed by one user
func (h *OrderHandler) ListByUser(c echo.Context) error {
	log := logger.FromContext(c)

	userID, err := parseID(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}

	if _, err := h.store.GetUser(c.Request().Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to get user", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}

	defer prometheus.TrackDBOperation("list_orders_by_user")(time.Now())
	orders, err := h.store.OrdersByUser(c.Request().Context(), userID)
	if err != nil {
		log.Error("Failed to list orders", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}

	log.Info("Orders retrieved successfully",
		zap.Uint("user_id", userID),
		zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, schema.DumpOrders(orders))
}

// ListProducts handles retrieving all products linked to an order
func (h *OrderHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	orderID, err := parseID(c.Param("order_id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	defer prometheus.TrackDBOperation("list_order_products")(time.Now())
	products, err := h.store.ProductsInOrder(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
		}
		log.Error("Failed to list order products", zap.Uint("order_id", orderID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve products"})
	}

	log.Info("Order products retrieved successfully",
		zap.Uint("order_id", orderID),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, schema.DumpProducts(products))
}

// orderAndProduct resolves the order_id and product_id path parameters.
// missingStatus is the code answered when either entity does not exist: the
// link endpoint answers 400 and the unlink endpoint 404.
func (h *OrderHandler) orderAndProduct(c echo.Context, missingStatus int) (*model.Order, *model.Product, echo.HandlerFunc) {
	log := logger.FromContext(c)

	missing := func(c echo.Context) error {
		return c.JSON(missingStatus, echo.Map{"error": "Order or product not found"})
	}
	fail := func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to resolve order or product"})
	}

	orderID, err := parseID(c.Param("order_id"))
	if err != nil {
		return nil, nil, missing
	}
	productID, err := parseID(c.Param("product_id"))
	if err != nil {
		return nil, nil, missing
	}

	order, err := h.store.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, missing
		}
		log.Error("Failed to get order", zap.Uint("order_id", orderID), zap.Error(err))
		return nil, nil, fail
	}

	product, err := h.store.GetProduct(c.Request().Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, missing
		}
		log.Error("Failed to get product", zap.Uint("product_id", productID), zap.Error(err))
		return nil, nil, fail
	}

	return order, product, nil
}

// respondWithOrder reloads the order so the dump reflects the association
// change just committed.
func (h *OrderHandler) respondWithOrder(c echo.Context, orderID uint) error {
	order, err := h.store.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		logger.FromContext(c).Error("Failed to reload order", zap.Uint("order_id", orderID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve order"})
	}
	return c.JSON(http.StatusOK, schema.DumpOrder(order))
}
