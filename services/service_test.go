package services

import (
	"testing"

	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/Ludvin7x/lemon-api/repository"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db     *gorm.DB
	users  *repository.UserRepository
	menu   *repository.MenuRepository
	cartRp *repository.CartRepository

	cart     *CartService
	orders   *OrderService
	groups   *GroupService
	checkout *CheckoutService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&entity.User{}, &entity.Group{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, name := range []string{entity.GroupManager, entity.GroupDeliveryCrew, entity.GroupCustomer} {
		if err := db.Create(&entity.Group{Name: name}).Error; err != nil {
			t.Fatalf("seed group %q: %v", name, err)
		}
	}

	users := repository.NewUserRepository(db)
	menu := repository.NewMenuRepository(db)
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)

	orderSvc := NewOrderService(db, orders, carts, users)
	return &testEnv{
		db:       db,
		users:    users,
		menu:     menu,
		cartRp:   carts,
		cart:     NewCartService(db, carts, menu),
		orders:   orderSvc,
		groups:   NewGroupService(db, users),
		checkout: NewCheckoutService(users, carts, orderSvc),
	}
}

func (e *testEnv) createUser(t *testing.T, username string, admin bool, groupNames ...string) *entity.User {
	t.Helper()
	u := &entity.User{
		Username: username,
		Email:    username + "@lemon.test",
		Password: "x",
		IsAdmin:  admin,
	}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	for _, name := range groupNames {
		var g entity.Group
		if err := e.db.Where("name = ?", name).First(&g).Error; err != nil {
			t.Fatalf("group %q: %v", name, err)
		}
		if err := e.db.Model(u).Association("Groups").Append(&g); err != nil {
			t.Fatalf("add %q to %q: %v", username, name, err)
		}
	}
	return u
}

func (e *testEnv) principal(t *testing.T, userID uint) Principal {
	t.Helper()
	u, err := e.users.FindWithGroups(userID)
	if err != nil {
		t.Fatalf("reload user %d: %v", userID, err)
	}
	return ResolvePrincipal(u)
}

func (e *testEnv) createMenuItem(t *testing.T, title, price string) *entity.MenuItem {
	t.Helper()
	var cat entity.Category
	if err := e.db.Where(entity.Category{Slug: "test"}).
		Attrs(entity.Category{Title: "Test"}).
		FirstOrCreate(&cat).Error; err != nil {
		t.Fatalf("category: %v", err)
	}
	item := &entity.MenuItem{Title: title, Price: dec(t, price), CategoryID: cat.ID}
	if err := e.db.Create(item).Error; err != nil {
		t.Fatalf("create menu item %q: %v", title, err)
	}
	return item
}

func (e *testEnv) setMenuPrice(t *testing.T, itemID uint, price string) {
	t.Helper()
	err := e.db.Model(&entity.MenuItem{}).Where("id = ?", itemID).
		Update("price", dec(t, price)).Error
	if err != nil {
		t.Fatalf("set price: %v", err)
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func wantDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(t, want)) {
		t.Fatalf("got %s, want %s", got, want)
	}
}
