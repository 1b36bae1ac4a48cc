package handler

import (
	"errors"
	"fmt"
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

// ProductHandler serves the /products endpoints over an injected store handle.
type ProductHandler struct {
	store *store.Store
}

// NewProductHandler returns a ProductHandler backed by the given store.
func NewProductHandler(s *store.Store) *ProductHandler {
	return &ProductHandler{store: s}
}

// List handles retrieving all products
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("list_products")(time.Now())
	products, err := h.store.ListProducts(c.Request().Context())
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, schema.DumpProducts(products))
}

// Get handles retrieving a single product by ID
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	product, err := h.store.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Product not found", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve product"})
	}

	return c.JSON(http.StatusOK, schema.DumpProduct(product))
}

// Create handles creating a new product
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var payload schema.ProductPayload
	if err := c.Bind(&payload); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var product model.Product
	if errs := schema.LoadProduct(&payload, &product, false); errs != nil {
		log.Warn("Product payload failed validation", zap.Any("field_errors", errs))
		prometheus.RecordValidationFailure("product")
		return c.JSON(http.StatusBadRequest, errs)
	}

	defer prometheus.TrackDBOperation("create_product")(time.Now())
	if err := h.store.CreateProduct(c.Request().Context(), &product); err != nil {
		log.Error("Failed to create product",
			zap.String("product_name", product.ProductName),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create product"})
	}

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("product_name", product.ProductName),
		zap.Float64("price", product.Price))
	prometheus.RecordProductOperation("create")
	return c.JSON(http.StatusOK, schema.DumpProduct(&product))
}

// Update handles partial updates of an existing product. A missing product
// answers 400 here, unlike Get and Delete.
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Product not found"})
	}

	product, err := h.store.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to get product for update", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	var payload schema.ProductPayload
	if err := c.Bind(&payload); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if errs := schema.LoadProduct(&payload, product, true); errs != nil {
		log.Warn("Product payload failed validation", zap.Any("field_errors", errs))
		prometheus.RecordValidationFailure("product")
		return c.JSON(http.StatusBadRequest, errs)
	}

	defer prometheus.TrackDBOperation("update_product")(time.Now())
	if err := h.store.UpdateProduct(c.Request().Context(), product); err != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update product"})
	}

	log.Info("Product updated successfully",
		zap.Uint("product_id", product.ID),
		zap.String("product_name", product.ProductName))
	prometheus.RecordProductOperation("update")
	return c.JSON(http.StatusOK, schema.DumpProduct(product))
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	product, err := h.store.GetProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Product not found for deletion", zap.Uint("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		log.Error("Failed to get product for deletion", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}

	defer prometheus.TrackDBOperation("delete_product")(time.Now())
	if err := h.store.DeleteProduct(c.Request().Context(), product); err != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete product"})
	}

	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	prometheus.RecordProductOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Product %d deleted", id)})
}
