package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/Ludvin7x/lemon-api/repository"
	"github.com/Ludvin7x/lemon-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "whsec_test"

type webhookEnv struct {
	db     *gorm.DB
	router *gin.Engine
	now    time.Time
}

func newWebhookEnv(t *testing.T) *webhookEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	users := repository.NewUserRepository(db)
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)
	orderSvc := services.NewOrderService(db, orders, carts, users)
	checkout := services.NewCheckoutService(users, carts, orderSvc)

	now := time.Unix(1700000000, 0)
	ctl := NewPaymentController(checkout, testSecret)
	ctl.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/webhooks/stripe", ctl.StripeWebhook)
	return &webhookEnv{db: db, router: r, now: now}
}

func (e *webhookEnv) seedCart(t *testing.T, email string) {
	t.Helper()
	user := entity.User{Username: strings.Split(email, "@")[0], Email: email, Password: "x"}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	cat := entity.Category{Slug: "pizzas", Title: "Pizzas"}
	if err := e.db.Create(&cat).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	price := decimal.RequireFromString("10.99")
	item := entity.MenuItem{Title: "Margherita", Price: price, CategoryID: cat.ID}
	if err := e.db.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	line := entity.CartItem{
		UserID:     user.ID,
		MenuItemID: item.ID,
		Quantity:   2,
		UnitPrice:  price,
		Price:      price.Mul(decimal.NewFromInt(2)),
	}
	if err := e.db.Create(&line).Error; err != nil {
		t.Fatalf("create cart line: %v", err)
	}
}

func sign(payload, secret string, at time.Time) string {
	ts := fmt.Sprintf("%d", at.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "." + payload))
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func (e *webhookEnv) deliver(t *testing.T, payload, sigHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(payload))
	if sigHeader != "" {
		req.Header.Set("Stripe-Signature", sigHeader)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func checkoutCompleted(email string) string {
	return fmt.Sprintf(`{"type":"checkout.session.completed","data":{"object":{"customer_email":%q}}}`, email)
}

func TestWebhookValidSignatureCreatesOrder(t *testing.T) {
	env := newWebhookEnv(t)
	env.seedCart(t, "alice@lemon.test")

	payload := checkoutCompleted("alice@lemon.test")
	w := env.deliver(t, payload, sign(payload, testSecret, env.now))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body)
	}

	var orders []entity.Order
	env.db.Find(&orders)
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
	if !orders[0].Total.Equal(decimal.RequireFromString("21.98")) {
		t.Fatalf("total = %s, want 21.98", orders[0].Total)
	}
}

func TestWebhookBadSignatureRejected(t *testing.T) {
	env := newWebhookEnv(t)
	env.seedCart(t, "alice@lemon.test")
	payload := checkoutCompleted("alice@lemon.test")

	cases := map[string]string{
		"missing header": "",
		"wrong secret":   sign(payload, "whsec_other", env.now),
		"garbage":        "t=abc,v1=zzzz",
		"tampered body":  sign(payload+" ", testSecret, env.now),
	}
	for name, header := range cases {
		w := env.deliver(t, payload, header)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
	}

	var count int64
	env.db.Model(&entity.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("orders = %d, want 0", count)
	}
}

func TestWebhookStaleTimestampRejected(t *testing.T) {
	env := newWebhookEnv(t)
	payload := checkoutCompleted("alice@lemon.test")

	w := env.deliver(t, payload, sign(payload, testSecret, env.now.Add(-time.Hour)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestWebhookMalformedPayloadRejected(t *testing.T) {
	env := newWebhookEnv(t)
	payload := `{"type":`

	w := env.deliver(t, payload, sign(payload, testSecret, env.now))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestWebhookUnknownEmailStillAcknowledged(t *testing.T) {
	env := newWebhookEnv(t)
	payload := checkoutCompleted("ghost@lemon.test")

	w := env.deliver(t, payload, sign(payload, testSecret, env.now))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	env := newWebhookEnv(t)
	env.seedCart(t, "alice@lemon.test")
	payload := `{"type":"invoice.paid","data":{"object":{"customer_email":"alice@lemon.test"}}}`

	w := env.deliver(t, payload, sign(payload, testSecret, env.now))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var count int64
	env.db.Model(&entity.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("orders = %d, want 0", count)
	}
}

func TestWebhookRetryAfterProcessingIsNoop(t *testing.T) {
	env := newWebhookEnv(t)
	env.seedCart(t, "alice@lemon.test")
	payload := checkoutCompleted("alice@lemon.test")
	header := sign(payload, testSecret, env.now)

	for i := 0; i < 2; i++ {
		if w := env.deliver(t, payload, header); w.Code != http.StatusOK {
			t.Fatalf("delivery %d: status = %d, want 200", i+1, w.Code)
		}
	}
	var count int64
	env.db.Model(&entity.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("orders = %d, want exactly 1", count)
	}
}
