package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/logger"

	"github.com/nats-io/nats.go"
)

// Publisher pushes tracking events onto NATS subjects keyed by entity
// identity ("tracking.<id>"). Tracking-page clients subscribe to the subject
// of the order they watch; delivery is best-effort core NATS, no JetStream.
type Publisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func NewPublisher(url string, logger *logger.Logger) (*Publisher, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var nc *nats.Conn
	var err error

	for i := 0; i < 3; i++ {
		nc, err = nats.Connect(url,
			nats.Name("EthioConnect Tracking"),
			nats.MaxReconnects(5),
			nats.ReconnectWait(2*time.Second),
			nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
				logger.Warn("NATS disconnected", "error", err)
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
			}),
		)

		if err == nil {
			logger.Info("Connected to NATS", "url", url)
			return &Publisher{nc: nc, logger: logger}, nil
		}

		logger.Warn("Failed to connect to NATS", "attempt", i+1, "error", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		case <-time.After(2 * time.Second):
			continue
		}
	}

	return nil, fmt.Errorf("failed to connect to NATS after retries: %w", err)
}

func (p *Publisher) Publish(ctx context.Context, key, event string, payload any) error {
	data, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := "tracking." + key

	for i := 0; i < 3; i++ {
		select {
		case <-ctx.Done():
			p.logger.Warn("Context cancelled while publishing to NATS", "subject", subject)
			return ctx.Err()
		default:
			if err := p.nc.Publish(subject, data); err != nil {
				p.logger.Warn("Failed to publish to NATS", "attempt", i+1, "error", err)
				time.Sleep(1 * time.Second)
				continue
			}

			if err := p.nc.FlushTimeout(2 * time.Second); err != nil {
				p.logger.Warn("Failed to flush NATS connection", "error", err)
				continue
			}

			return nil
		}
	}

	p.logger.Error("Failed to publish event to NATS after retries", "subject", subject, "event", event)
	return fmt.Errorf("failed to publish event after retries")
}

func (p *Publisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
		p.logger.Info("NATS connection closed")
	}
}
