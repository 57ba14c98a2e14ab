package cart

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Remote is the commerce platform's cart API.
type Remote interface {
	CreateCart(ctx context.Context, lines []LineInput) (*Cart, error)
	AddLines(ctx context.Context, cartID string, lines []LineInput) (*Cart, error)
	UpdateLines(ctx context.Context, cartID string, lines []LineUpdate) (*Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error)
	// Cart returns nil, nil when the platform does not know cartID.
	Cart(ctx context.Context, cartID string) (*Cart, error)
}

// Client is the only component that talks to the remote cart API. It keeps
// the stored cart id of each session in Store.
type Client struct {
	remote  Remote
	store   Store
	expired ExpiryPolicy
	events  Events
	logger  *zap.Logger
}

type ClientOption func(*Client)

func WithExpiryPolicy(p ExpiryPolicy) ClientOption {
	return func(c *Client) {
		if p != nil {
			c.expired = p
		}
	}
}

func WithEvents(e Events) ClientOption {
	return func(c *Client) {
		if e != nil {
			c.events = e
		}
	}
}

func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewClient(remote Remote, store Store, opts ...ClientOption) *Client {
	c := &Client{
		remote:  remote,
		store:   store,
		expired: DiscardOnAnyError,
		events:  noopEvents{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ForSession binds the client to one shopper session's stored cart id.
func (c *Client) ForSession(key string) *SessionClient {
	return &SessionClient{c: c, key: key, logger: c.logger.With(zap.String("session", key))}
}

type SessionClient struct {
	c      *Client
	key    string
	logger *zap.Logger
}

// CreateCart creates a remote cart, with one line when variantID is set, and
// stores its id. Failures are returned as is; there is nothing to recover to.
func (s *SessionClient) CreateCart(ctx context.Context, variantID string, quantity int) (*Cart, error) {
	var lines []LineInput
	if variantID != "" {
		lines = []LineInput{{MerchandiseID: variantID, Quantity: defaultQuantity(quantity)}}
	}

	created, err := s.c.remote.CreateCart(ctx, lines)
	if err == nil && created == nil {
		err = ErrCartNotFound
	}
	if err != nil {
		s.logger.Error("cart create failed", zap.Error(err))
		return nil, fmt.Errorf("create cart: %w", err)
	}

	// A cart that could not be remembered is still a valid cart for this call.
	if err := s.c.store.Put(ctx, s.key, created.ID); err != nil {
		s.logger.Warn("store cart id", zap.String("cart_id", created.ID), zap.Error(err))
	}
	if err := s.c.events.CartCreated(ctx, s.key, created); err != nil {
		s.logger.Warn("publish cart created", zap.String("cart_id", created.ID), zap.Error(err))
	}
	return created, nil
}

// AddToCart adds a variant to the stored cart, creating one if needed. When
// the stored cart is judged expired it is discarded and a new cart is created
// exactly once; that failure is not surfaced.
func (s *SessionClient) AddToCart(ctx context.Context, variantID string, quantity int) (*Cart, error) {
	cartID, ok := s.storedID(ctx)
	if !ok {
		return s.CreateCart(ctx, variantID, quantity)
	}

	lines := []LineInput{{MerchandiseID: variantID, Quantity: defaultQuantity(quantity)}}
	updated, err := s.c.remote.AddLines(ctx, cartID, lines)
	if err == nil && updated == nil {
		err = ErrCartNotFound
	}
	if err == nil {
		return updated, nil
	}
	if !s.discardable(ctx, err) {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	s.discard(ctx, cartID, err)
	return s.CreateCart(ctx, variantID, quantity)
}

// GetCart returns the stored cart, or nil when there is none. A cart the
// expiry policy rejects is discarded and reported as nil.
func (s *SessionClient) GetCart(ctx context.Context) (*Cart, error) {
	cartID, ok := s.storedID(ctx)
	if !ok {
		return nil, nil
	}

	current, err := s.c.remote.Cart(ctx, cartID)
	if err == nil && current == nil {
		err = ErrCartNotFound
	}
	if err == nil {
		return current, nil
	}
	if s.discardable(ctx, err) {
		s.discard(ctx, cartID, err)
		return nil, nil
	}
	return nil, fmt.Errorf("get cart: %w", err)
}

// UpdateCartLine sets a line's quantity. Quantities below 1 are a caller
// error; route them to RemoveCartLine instead.
func (s *SessionClient) UpdateCartLine(ctx context.Context, cartID, lineID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	updated, err := s.c.remote.UpdateLines(ctx, cartID, []LineUpdate{{ID: lineID, Quantity: quantity}})
	if err == nil && updated == nil {
		err = ErrCartNotFound
	}
	if err != nil {
		s.logger.Error("cart update failed", zap.String("cart_id", cartID), zap.String("line_id", lineID), zap.Error(err))
		return nil, fmt.Errorf("update cart line: %w", err)
	}
	return updated, nil
}

func (s *SessionClient) RemoveCartLine(ctx context.Context, cartID, lineID string) (*Cart, error) {
	updated, err := s.c.remote.RemoveLines(ctx, cartID, []string{lineID})
	if err == nil && updated == nil {
		err = ErrCartNotFound
	}
	if err != nil {
		s.logger.Error("cart remove failed", zap.String("cart_id", cartID), zap.String("line_id", lineID), zap.Error(err))
		return nil, fmt.Errorf("remove cart line: %w", err)
	}
	return updated, nil
}

// storedID treats an unreadable store like an empty one.
func (s *SessionClient) storedID(ctx context.Context) (string, bool) {
	id, ok, err := s.c.store.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("read stored cart id", zap.Error(err))
		return "", false
	}
	return id, ok && id != ""
}

// discardable applies the expiry policy, except when the caller gave up: a
// cancelled or timed out request says nothing about the cart.
func (s *SessionClient) discardable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return false
	}
	return s.c.expired(err)
}

func (s *SessionClient) discard(ctx context.Context, cartID string, cause error) {
	s.logger.Info("discarding stored cart", zap.String("cart_id", cartID), zap.Error(cause))
	if err := s.c.store.Clear(ctx, s.key); err != nil {
		s.logger.Warn("clear stored cart id", zap.String("cart_id", cartID), zap.Error(err))
	}
	if err := s.c.events.CartDiscarded(ctx, s.key, cartID, cause); err != nil {
		s.logger.Warn("publish cart discarded", zap.String("cart_id", cartID), zap.Error(err))
	}
}

func defaultQuantity(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}
