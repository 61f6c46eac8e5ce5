package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/klarhet/bankid/pkg/bankid/client"
	"github.com/klarhet/bankid/pkg/bankid/identity"
	"github.com/klarhet/bankid/pkg/config"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	personalNumber := flag.String("pno", "", "Personal number (optional; empty lets the app resolve identity)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *personalNumber); err != nil {
		logger.Fatal("Demo failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, rawPNO string) error {
	ep, err := cfg.Environment.Endpoint()
	if err != nil {
		return err
	}

	c, err := client.New(ep, client.WithLogger(logger))
	if err != nil {
		return err
	}

	req := &client.AuthRequest{}
	req.EndUserIP, err = netip.ParseAddr(cfg.Order.EndUserIP)
	if err != nil {
		return fmt.Errorf("parse end user IP: %w", err)
	}
	if rawPNO != "" {
		pno, err := identity.Parse(rawPNO)
		if err != nil {
			return err
		}
		req.PersonalNumber = &pno
	}

	// Cancel the order on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	order, err := c.Auth(ctx, req)
	if err != nil {
		return err
	}
	logger.Info("Order started",
		zap.String("order_ref", order.OrderRef.String()),
		zap.String("auto_start_token", order.AutoStartToken.String()))

	qr := client.NewQRGenerator(order)

	// Poll until a terminal state. The collect loop is a relying-party
	// responsibility; the client only exposes single polls.
	ticker := time.NewTicker(cfg.Order.PollInterval)
	defer ticker.Stop()

	for {
		resp, err := c.Collect(ctx, order.OrderRef)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return cancelOrder(c, order, logger)
			}
			return err
		}

		switch {
		case resp.Pending():
			fmt.Printf("waiting (%s), scan: %s\n", resp.HintCode, qr.Code(time.Now()))
		case resp.Status == client.StatusComplete:
			user := resp.CompletionData.User
			logger.Info("Order complete",
				zap.String("personal_number", user.PersonalNumber.String()),
				zap.String("name", user.Name))
			return nil
		default:
			logger.Warn("Order failed", zap.String("hint", string(resp.HintCode)))
			return nil
		}

		select {
		case <-ctx.Done():
			return cancelOrder(c, order, logger)
		case <-ticker.C:
		}
	}
}

// cancelOrder aborts an interrupted order on a fresh context. Server errors
// here usually mean the order already reached a terminal state, which is a
// race we tolerate.
func cancelOrder(c *client.Client, order *client.OrderResponse, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Cancel(ctx, order.OrderRef); err != nil {
		var serverErr *client.ServerError
		if errors.As(err, &serverErr) {
			logger.Info("Order already settled", zap.String("code", string(serverErr.Code)))
			return nil
		}
		return err
	}
	logger.Info("Order cancelled")
	return nil
}
