package broadcast

import "context"

// Noop discards every event. Used when no real-time transport is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, key, event string, payload any) error { return nil }

func (Noop) Close() {}
