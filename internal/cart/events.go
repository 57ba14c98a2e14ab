package cart

import "context"

// Events receives cart lifecycle notifications. Implementations must not
// block the calling action for long; failures are logged and dropped.
type Events interface {
	CartCreated(ctx context.Context, sessionKey string, c *Cart) error
	CartDiscarded(ctx context.Context, sessionKey, cartID string, cause error) error
}

type noopEvents struct{}

func (noopEvents) CartCreated(context.Context, string, *Cart) error { return nil }
func (noopEvents) CartDiscarded(context.Context, string, string, error) error { return nil }
