package schema

import (
	"net/mail"
	"time"
	"unicode/utf8"

	"ecommerce-api/internal/model"
)

const (
	addressMinLen = 5
	addressMaxLen = 150
)

// UserPayload is the wire shape accepted on user create and update. Pointer
// fields distinguish an absent field from a zero value, which is what makes
// partial updates possible.
type UserPayload struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
}

// LoadUser validates the payload and applies it to the user. In partial mode
// required-field checks are relaxed to "if present, must be valid" and absent
// fields leave the user untouched. The user is only mutated when validation
// passes; nothing is persisted here.
func LoadUser(p *UserPayload, u *model.User, partial bool) FieldErrors {
	errs := FieldErrors{}

	if p.Name == nil {
		if !partial {
			errs.Add("name", "name is required")
		}
	} else if *p.Name == "" {
		errs.Add("name", "name must not be empty")
	}

	if p.Address == nil {
		if !partial {
			errs.Add("address", "address is required")
		}
	} else if n := utf8.RuneCountInString(*p.Address); n < addressMinLen || n > addressMaxLen {
		errs.Add("address", "address must be between 5 and 150 characters")
	}

	if p.Email == nil {
		if !partial {
			errs.Add("email", "email is required")
		}
	} else if !validEmail(*p.Email) {
		errs.Add("email", "email is not a valid email address")
	}

	if !errs.Empty() {
		return errs
	}

	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return nil
}

// validEmail accepts only a bare addr-spec, rejecting display names and
// anything mail.ParseAddress would normalize away.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// UserDump is the full user representation: orders are truncated to
// {id, order_date} so the graph stops before products and the user
// back-reference.
type UserDump struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Address string          `json:"address"`
	Email   string          `json:"email"`
	Orders  []UserOrderDump `json:"orders"`
}

// UserOrderDump is an order as seen nested under its user.
type UserOrderDump struct {
	ID        uint      `json:"id"`
	OrderDate time.Time `json:"order_date"`
}

// DumpUser serializes a user with its truncated orders.
func DumpUser(u *model.User) UserDump {
	orders := make([]UserOrderDump, 0, len(u.Orders))
	for _, o := range u.Orders {
		orders = append(orders, UserOrderDump{ID: o.ID, OrderDate: o.OrderDate})
	}
	return UserDump{
		ID:      u.ID,
		Name:    u.Name,
		Address: u.Address,
		Email:   u.Email,
		Orders:  orders,
	}
}

// DumpUsers serializes a list of users.
func DumpUsers(users []model.User) []UserDump {
	out := make([]UserDump, 0, len(users))
	for i := range users {
		out = append(out, DumpUser(&users[i]))
	}
	return out
}
