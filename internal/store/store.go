// Package store is the persistence layer. A Store wraps one *gorm.DB handle
// and is passed explicitly to every handler; there is no package-level
// connection.
package store

import (
	"context"
	"errors"

	"ecommerce-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound signals that a referenced entity id does not exist. Absence is
// not exceptional; callers decide the status code.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail signals a violation of the users.email unique constraint.
var ErrDuplicateEmail = errors.New("email already in use")

// Store provides durable storage and retrieval of users, products, orders
// and the order-product association.
type Store struct {
	db *gorm.DB
}

// New returns a Store over the given database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

// --- Users ---

// GetUser loads a user and its orders.
func (s *Store) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Preload("Orders").First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Preload("Orders").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser persists a new user, assigning its id.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

// UpdateUser persists a mutated user. Field validation is the caller's job.
func (s *Store) UpdateUser(ctx context.Context, u *model.User) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error)
}

// DeleteUser removes the user row. Dependent orders are not cascaded.
func (s *Store) DeleteUser(ctx context.Context, u *model.User) error {
	return s.db.WithContext(ctx).Delete(u).Error
}

// EmailTaken reports whether another user already holds the given email.
// excludeID skips the user being updated.
func (s *Store) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id != ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// --- Products ---

// GetProduct loads a product and its orders.
func (s *Store) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	var p model.Product
	if err := s.db.WithContext(ctx).Preload("Orders").First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// ListProducts returns all products in insertion order.
func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.db.WithContext(ctx).Preload("Orders").Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct persists a new product, assigning its id.
func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

// UpdateProduct persists a mutated product.
func (s *Store) UpdateProduct(ctx context.Context, p *model.Product) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

// DeleteProduct removes the product row. Association rows are not cascaded.
func (s *Store) DeleteProduct(ctx context.Context, p *model.Product) error {
	return s.db.WithContext(ctx).Delete(p).Error
}

// --- Orders ---

// GetOrder loads an order with its user and products.
func (s *Store) GetOrder(ctx context.Context, id uint) (*model.Order, error) {
	var o model.Order
	err := s.db.WithContext(ctx).Preload("User").Preload("Products").First(&o, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// CreateOrder persists a new order, assigning its id and loading the owning
// user for serialization.
func (s *Store) CreateOrder(ctx context.Context, o *model.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(o).Error; err != nil {
			return err
		}
		return tx.First(&o.User, o.UserID).Error
	})
}

// AddProduct links a product to an order. Linking an already-linked pair is
// a no-op, never a duplicate row.
func (s *Store) AddProduct(ctx context.Context, o *model.Order, p *model.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Table("order_product").
			Where("order_id = ? AND product_id = ?", o.ID, p.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Model(o).Association("Products").Append(p)
	})
}

// RemoveProduct unlinks a product from an order. Unlinking a pair that is
// not linked is a no-op.
func (s *Store) RemoveProduct(ctx context.Context, o *model.Order, p *model.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(o).Association("Products").Delete(p)
	})
}

// OrdersByUser returns all of a user's orders, with the nested fields the
// order dump needs, in insertion order.
func (s *Store) OrdersByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("User").Preload("Products").
		Where("user_id = ?", userID).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ProductsInOrder returns the products linked to an order. Each product
// carries its orders because the product dump lists them.
func (s *Store) ProductsInOrder(ctx context.Context, orderID uint) ([]model.Product, error) {
	var o model.Order
	err := s.db.WithContext(ctx).Preload("Products.Orders").First(&o, orderID).Error
	if err != nil {
		return nil, translate(err)
	}
	return o.Products, nil
}
