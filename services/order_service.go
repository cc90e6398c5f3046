package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/Ludvin7x/lemon-api/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	DB     *gorm.DB
	Orders *repository.OrderRepository
	Carts  *repository.CartRepository
	Users  *repository.UserRepository
}

func NewOrderService(
	db *gorm.DB,
	orders *repository.OrderRepository,
	carts *repository.CartRepository,
	users *repository.UserRepository,
) *OrderService {
	return &OrderService{DB: db, Orders: orders, Carts: carts, Users: users}
}

// CreateFromCart converts the user's cart into an order in one transaction:
// order header + one item per cart line + total, then the cart is emptied.
// Either all of it commits or none of it does.
func (s *OrderService) CreateFromCart(userID uint) (*entity.Order, error) {
	var orderID uint
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// the cart is read inside the transaction and only the converted
		// lines are deleted, so an add racing the conversion either lands
		// in this order or survives in the cart
		cart, err := s.Carts.ListForUser(tx, userID)
		if err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		order := entity.Order{
			UserID: userID,
			Status: entity.OrderStatusPending,
			Total:  decimal.Zero,
			Date:   time.Now(),
		}
		if err := s.Orders.Create(tx, &order); err != nil {
			return err
		}

		total := decimal.Zero
		lineIDs := make([]uint, 0, len(cart))
		for _, it := range cart {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: it.MenuItemID,
				Quantity:   it.Quantity,
				UnitPrice:  it.UnitPrice,
				Price:      it.Price,
			}
			if err := s.Orders.CreateItem(tx, &oi); err != nil {
				return err
			}
			total = total.Add(it.Price)
			lineIDs = append(lineIDs, it.ID)
		}

		if err := s.Orders.Updates(tx, order.ID, map[string]any{"total": total}); err != nil {
			return err
		}
		if err := s.Carts.RemoveLines(tx, userID, lineIDs); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Orders.GetWithItems(orderID)
}

// ListFilter carries the caller-supplied filters; visibility scope comes
// from the principal, not from here.
type ListFilter struct {
	Status  string
	OrderBy string
}

// List returns the orders the principal is allowed to see: admin/manager
// see all, delivery crew their assigned deliveries, everyone else their own.
func (s *OrderService) List(p Principal, f ListFilter) ([]entity.Order, error) {
	filter := repository.OrderFilter{Status: f.Status, OrderBy: f.OrderBy}
	switch {
	case p.CanViewAllOrders():
		// unrestricted
	case p.Has(RoleDeliveryCrew):
		id := p.UserID
		filter.DeliveryCrewID = &id
	default:
		id := p.UserID
		filter.UserID = &id
	}
	return s.Orders.List(filter)
}

// Get applies the same visibility scope as List. Orders outside the scope
// read as not found so ids don't leak existence.
func (s *OrderService) Get(p Principal, orderID uint) (*entity.Order, error) {
	o, err := s.Orders.GetWithItems(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if !s.visible(p, o) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return o, nil
}

func (s *OrderService) visible(p Principal, o *entity.Order) bool {
	if p.CanViewAllOrders() {
		return true
	}
	if p.Has(RoleDeliveryCrew) {
		return o.DeliveryCrewID != nil && *o.DeliveryCrewID == p.UserID
	}
	return o.UserID == p.UserID
}

// UpdatePatch is the raw key set of a PATCH body. Keys are inspected before
// anything is applied so a forbidden field rejects the whole request.
type UpdatePatch map[string]json.RawMessage

// Update applies a role-gated partial update.
//   - admin/manager: status and delivery_crew
//   - delivery crew: status only, and only on orders assigned to them;
//     any other key fails before any change
//   - everyone else: permission denied
func (s *OrderService) Update(p Principal, orderID uint, patch UpdatePatch) (*entity.Order, error) {
	switch {
	case p.CanManageOrders():
		for key := range patch {
			if key != "status" && key != "delivery_crew" {
				return nil, fmt.Errorf("%w: unknown field %q", ErrValidation, key)
			}
		}
	case p.Has(RoleDeliveryCrew):
		for key := range patch {
			if key != "status" {
				return nil, fmt.Errorf("%w: delivery crew can only update order status", ErrPermission)
			}
		}
	default:
		return nil, fmt.Errorf("%w: cannot update orders", ErrPermission)
	}

	o, err := s.Get(p, orderID)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any, len(patch))
	if raw, ok := patch["status"]; ok {
		var status string
		if err := json.Unmarshal(raw, &status); err != nil {
			return nil, fmt.Errorf("%w: status must be a string", ErrValidation)
		}
		if !entity.ValidOrderStatus(status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
		}
		fields["status"] = status
	}
	if raw, ok := patch["delivery_crew"]; ok {
		var crewID *uint
		if err := json.Unmarshal(raw, &crewID); err != nil {
			return nil, fmt.Errorf("%w: delivery_crew must be a user id or null", ErrValidation)
		}
		if crewID != nil {
			if err := s.checkDeliveryCrew(*crewID); err != nil {
				return nil, err
			}
		}
		fields["delivery_crew_id"] = crewID
	}
	if len(fields) == 0 {
		return o, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Orders.Updates(tx, o.ID, fields)
	})
	if err != nil {
		return nil, err
	}
	return s.Orders.GetWithItems(o.ID)
}

func (s *OrderService) Delete(p Principal, orderID uint) error {
	if !p.CanManageOrders() {
		return fmt.Errorf("%w: cannot delete orders", ErrPermission)
	}
	if _, err := s.Orders.Get(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Orders.Delete(tx, orderID)
	})
}

// AssignDeliveryCrew sets the order's delivery crew. The assignee must be a
// member of the Delivery crew group.
func (s *OrderService) AssignDeliveryCrew(p Principal, orderID, crewUserID uint) (*entity.Order, error) {
	if !p.CanManageOrders() {
		return nil, fmt.Errorf("%w: cannot assign delivery crew", ErrPermission)
	}
	if _, err := s.Orders.Get(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if err := s.checkDeliveryCrew(crewUserID); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Orders.Updates(tx, orderID, map[string]any{"delivery_crew_id": crewUserID})
	})
	if err != nil {
		return nil, err
	}
	return s.Orders.GetWithItems(orderID)
}

func (s *OrderService) checkDeliveryCrew(userID uint) error {
	if _, err := s.Users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return err
	}
	ok, err := s.Users.IsInGroup(userID, entity.GroupDeliveryCrew)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: user %d is not in the Delivery crew group", ErrValidation, userID)
	}
	return nil
}
