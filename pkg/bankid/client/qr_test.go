package client

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQRCode_KnownVectors(t *testing.T) {
	order := &OrderResponse{
		QRStartToken:  testQRStartToken,
		QRStartSecret: testQRStartSecret,
	}
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	vectors := map[int64]string{
		0: "dc69358e712458a66a7525beef148ae8526b1c71610eff2c16cdffb4cdac9bf8",
		1: "949d559bf23403952a94d103e67743126381eda00f0b3cbddbf7c96b1adcbce2",
		5: "56a7bb043d51f8c7aa6828689767b412179a727a6d4e9b7e1c15ded30061bd2f",
	}
	for seconds, mac := range vectors {
		got := QRCode(order, start, start.Add(time.Duration(seconds)*time.Second))
		want := fmt.Sprintf("bankid.%s.%d.%s", testQRStartToken, seconds, mac)
		assert.Equal(t, want, got)
	}
}

func TestQRCode_ClockBeforeStart(t *testing.T) {
	order := &OrderResponse{
		QRStartToken:  testQRStartToken,
		QRStartSecret: testQRStartSecret,
	}
	start := time.Now()

	// A clock step backwards clamps the counter at zero.
	assert.Equal(t,
		QRCode(order, start, start),
		QRCode(order, start, start.Add(-3*time.Second)))
}

func TestQRGenerator(t *testing.T) {
	order := &OrderResponse{
		QRStartToken:  testQRStartToken,
		QRStartSecret: testQRStartSecret,
	}
	g := NewQRGenerator(order)

	code := g.Code(g.startedAt.Add(2 * time.Second))
	assert.Contains(t, code, fmt.Sprintf("bankid.%s.2.", testQRStartToken))
}
