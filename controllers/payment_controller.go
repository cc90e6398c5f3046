package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Ludvin7x/lemon-api/services"
	"github.com/gin-gonic/gin"
)

const maxWebhookBody = 64 * 1024

// PaymentController receives the payment provider's signed webhook. The
// provider retries on any non-2xx, so signature failures answer 400 and
// everything successfully processed — including no-ops — answers 200.
type PaymentController struct {
	Svc           *services.CheckoutService
	WebhookSecret string
	Tolerance     time.Duration
	now           func() time.Time
}

func NewPaymentController(svc *services.CheckoutService, secret string) *PaymentController {
	return &PaymentController{
		Svc:           svc,
		WebhookSecret: secret,
		Tolerance:     5 * time.Minute,
		now:           time.Now,
	}
}

type checkoutSession struct {
	CustomerEmail string `json:"customer_email"`
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object checkoutSession `json:"object"`
	} `json:"data"`
}

// POST /webhooks/stripe
func (ctl *PaymentController) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable payload"})
		return
	}

	if err := verifySignature(payload, c.GetHeader("Stripe-Signature"), ctl.WebhookSecret, ctl.Tolerance, ctl.now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "signature verification failed"})
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "malformed payload"})
		return
	}

	// Only completed checkouts are interpreted; everything else is
	// acknowledged so the provider stops redelivering it.
	if event.Type == "checkout.session.completed" && event.Data.Object.CustomerEmail != "" {
		if err := ctl.Svc.HandlePaymentConfirmed(event.Data.Object.CustomerEmail); err != nil {
			log.Printf("webhook processing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
			return
		}
	}

	c.Status(http.StatusOK)
}

// verifySignature checks a Stripe-style signature header
// ("t=<unix>,v1=<hex>"): HMAC-SHA256 over "<t>.<payload>" with the endpoint
// secret, constant-time compare, bounded clock skew.
func verifySignature(payload []byte, header, secret string, tolerance time.Duration, now time.Time) error {
	if header == "" {
		return fmt.Errorf("missing signature header")
	}

	var ts string
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts == "" || len(sigs) == 0 {
		return fmt.Errorf("malformed signature header")
	}

	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed timestamp")
	}
	if d := now.Sub(time.Unix(unix, 0)); d > tolerance || d < -tolerance {
		return fmt.Errorf("timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	for _, sig := range sigs {
		got, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}
	return fmt.Errorf("no matching signature")
}
