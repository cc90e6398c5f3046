package services

import (
	"testing"

	"github.com/Ludvin7x/lemon-api/entity"
)

func TestPaymentConfirmedCreatesOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", false, "Customer")
	pizza := env.createMenuItem(t, "Margherita", "10.99")
	coke := env.createMenuItem(t, "Coke", "1.99")

	if _, err := env.cart.Add(user.ID, pizza.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := env.cart.Add(user.ID, coke.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := env.checkout.HandlePaymentConfirmed("alice@lemon.test"); err != nil {
		t.Fatalf("handle: %v", err)
	}

	var orders []entity.Order
	env.db.Find(&orders)
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	wantDecimal(t, orders[0].Total, "23.97")

	items, _, err := env.cart.List(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart not cleared: %d lines", len(items))
	}
}

func TestPaymentConfirmedUnknownEmailIsNoop(t *testing.T) {
	env := newTestEnv(t)

	if err := env.checkout.HandlePaymentConfirmed("ghost@lemon.test"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	var count int64
	env.db.Model(&entity.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("orders = %d, want 0", count)
	}
}

func TestPaymentConfirmedEmptyCartIsNoop(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", false, "Customer")

	if err := env.checkout.HandlePaymentConfirmed("alice@lemon.test"); err != nil {
		t.Fatalf("handle: %v", err)
	}
	var count int64
	env.db.Model(&entity.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("orders = %d, want 0", count)
	}
}

func TestPaymentConfirmedDuplicateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", false, "Customer")
	pizza := env.createMenuItem(t, "Margherita", "10.99")

	if _, err := env.cart.Add(user.ID, pizza.ID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// the provider may redeliver the same confirmation; the first delivery
	// empties the cart, so the second finds nothing to convert
	if err := env.checkout.HandlePaymentConfirmed("alice@lemon.test"); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := env.checkout.HandlePaymentConfirmed("alice@lemon.test"); err != nil {
		t.Fatalf("second delivery: %v", err)
	}

	var count int64
	env.db.Model(&entity.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("orders = %d, want exactly 1", count)
	}
}
