package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ecommerce-api/internal/model"
	"ecommerce-api/internal/schema"
	"ecommerce-api/internal/store"
	"ecommerce-api/pkg/logger"
	"ecommerce-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler serves the /users endpoints over an injected store handle.
type UserHandler struct {
	store *store.Store
}

// NewUserHandler returns a UserHandler backed by the given store.
func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// List handles retrieving all users
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("list_users")(time.Now())
	users, err := h.store.ListUsers(c.Request().Context())
	if err != nil {
		log.Error("Failed to list users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve users",
		})
	}

	log.Info("Users retrieved successfully", zap.Int("count", len(users)))
	return c.JSON(http.StatusOK, schema.DumpUsers(users))
}

// Get handles retrieving a single user by ID. A missing user answers 400,
// matching the contract this API's consumers already rely on.
func (h *UserHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	user, err := h.store.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("User not found", zap.Uint("user_id", id))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to get user", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve user"})
	}

	return c.JSON(http.StatusOK, schema.DumpUser(user))
}

// Create handles creating a new user
func (h *UserHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var payload schema.UserPayload
	if err := c.Bind(&payload); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	var user model.User
	if errs := schema.LoadUser(&payload, &user, false); errs != nil {
		log.Warn("User payload failed validation", zap.Any("field_errors", errs))
		prometheus.RecordValidationFailure("user")
		return c.JSON(http.StatusBadRequest, errs)
	}

	// Pre-check the unique email so the common case answers 409 instead of
	// surfacing a constraint error.
	taken, err := h.store.EmailTaken(c.Request().Context(), user.Email, 0)
	if err != nil {
		log.Error("Failed to check email uniqueness", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create user"})
	}
	if taken {
		log.Warn("User with this email already exists", zap.String("email", user.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "User with this email already exists"})
	}

	defer prometheus.TrackDBOperation("create_user")(time.Now())
	if err := h.store.CreateUser(c.Request().Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			// Lost the race against a concurrent create with the same email.
			return c.JSON(http.StatusConflict, echo.Map{"error": "User with this email already exists"})
		}
		log.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create user"})
	}

	log.Info("User created successfully",
		zap.Uint("user_id", user.ID),
		zap.String("email", user.Email))
	prometheus.RecordUserOperation("create")
	return c.JSON(http.StatusOK, schema.DumpUser(&user))
}

// Update handles partial updates: only fields present in the payload change.
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	user, err := h.store.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to get user for update", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
	}

	var payload schema.UserPayload
	if err := c.Bind(&payload); err != nil {
		log.Error("Invalid request data", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if errs := schema.LoadUser(&payload, user, true); errs != nil {
		log.Warn("User payload failed validation", zap.Any("field_errors", errs))
		prometheus.RecordValidationFailure("user")
		return c.JSON(http.StatusBadRequest, errs)
	}

	if payload.Email != nil {
		taken, err := h.store.EmailTaken(c.Request().Context(), user.Email, user.ID)
		if err != nil {
			log.Error("Failed to check email uniqueness", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
		}
		if taken {
			log.Warn("User with this email already exists", zap.String("email", user.Email))
			return c.JSON(http.StatusConflict, echo.Map{"error": "User with this email already exists"})
		}
	}

	defer prometheus.TrackDBOperation("update_user")(time.Now())
	if err := h.store.UpdateUser(c.Request().Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "User with this email already exists"})
		}
		log.Error("Failed to update user", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update user"})
	}

	log.Info("User updated successfully", zap.Uint("user_id", user.ID))
	prometheus.RecordUserOperation("update")
	return c.JSON(http.StatusOK, schema.DumpUser(user))
}

// Delete handles deleting a user. A missing user answers 400.
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	user, err := h.store.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to get user for deletion", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete user"})
	}

	defer prometheus.TrackDBOperation("delete_user")(time.Now())
	if err := h.store.DeleteUser(c.Request().Context(), user); err != nil {
		log.Error("Failed to delete user", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete user"})
	}

	log.Info("User deleted successfully", zap.Uint("user_id", id))
	prometheus.RecordUserOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("User %d deleted", id)})
}

// parseID parses a path parameter into a surrogate key.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
