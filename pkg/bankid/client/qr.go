package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// QRGenerator produces the animated QR code contents for the secure-start
// flow. The relying party renders a fresh code every second; the app verifies
// that the embedded elapsed-seconds counter is current, which ties the scan
// to a live session.
type QRGenerator struct {
	order     *OrderResponse
	startedAt time.Time
}

// NewQRGenerator creates a generator anchored at the order's start time,
// taken as now.
func NewQRGenerator(order *OrderResponse) *QRGenerator {
	return &QRGenerator{order: order, startedAt: time.Now()}
}

// Code returns the QR code content at the given instant.
func (g *QRGenerator) Code(now time.Time) string {
	return QRCode(g.order, g.startedAt, now)
}

// QRCode computes the animated QR code content for an order started at
// startedAt, observed at now:
//
//	bankid.<qrStartToken>.<seconds>.<hmac-sha256-hex>
//
// where the HMAC is keyed with qrStartSecret over the decimal seconds string.
func QRCode(order *OrderResponse, startedAt, now time.Time) string {
	seconds := int64(now.Sub(startedAt).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	counter := strconv.FormatInt(seconds, 10)

	mac := hmac.New(sha256.New, []byte(order.QRStartSecret.String()))
	mac.Write([]byte(counter))

	return fmt.Sprintf("bankid.%s.%s.%s",
		order.QRStartToken, counter, hex.EncodeToString(mac.Sum(nil)))
}
