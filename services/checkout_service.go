package services

import (
	"errors"
	"log"

	"github.com/Ludvin7x/lemon-api/repository"
	"gorm.io/gorm"
)

// CheckoutService reconciles an external payment confirmation against the
// customer's cart. The payment provider expects a 2xx acknowledgment in
// every processed case, so "nothing to do" is success here, never an error.
type CheckoutService struct {
	Users  *repository.UserRepository
	Carts  *repository.CartRepository
	Orders *OrderService
}

func NewCheckoutService(users *repository.UserRepository, carts *repository.CartRepository, orders *OrderService) *CheckoutService {
	return &CheckoutService{Users: users, Carts: carts, Orders: orders}
}

// HandlePaymentConfirmed converts the cart of the user with the given email
// into an order. Unknown email or an already-empty cart is a logged no-op:
// the emptiness check is what makes provider retries of the same
// confirmation idempotent — the first delivery empties the cart, duplicates
// find nothing to convert.
func (s *CheckoutService) HandlePaymentConfirmed(customerEmail string) error {
	user, err := s.Users.FindByEmail(customerEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("payment confirmed for unknown email %q, skipping", customerEmail)
			return nil
		}
		return err
	}

	order, err := s.Orders.CreateFromCart(user.ID)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			log.Printf("payment confirmed for user %d with empty cart, skipping", user.ID)
			return nil
		}
		return err
	}

	log.Printf("payment confirmed: created order %d for user %d (total %s)", order.ID, user.ID, order.Total)
	return nil
}
