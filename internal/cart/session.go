package cart

import (
	"context"
	"sync"
)

// State is what the presentation layer renders.
type State struct {
	Cart        *Cart
	Loading     bool
	Err         error
	CheckoutURL *string
	ItemCount   int
}

// Session holds one shopper's cart snapshot plus loading and error
// bookkeeping around each action. Actions are not serialized: when two run
// at once the last response to arrive wins.
//
// Remote calls are detached from the caller's cancellation. A shopper who
// navigates away does not abort a cart change already sent.
type Session struct {
	client *SessionClient

	mountOnce sync.Once
	mountErr  error

	mu       sync.Mutex
	cart     *Cart
	err      error
	inFlight int
}

func NewSession(client *SessionClient) *Session {
	return &Session{client: client}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{Cart: s.cart, Loading: s.inFlight > 0, Err: s.err}
	if s.cart != nil {
		st.ItemCount = s.cart.TotalQuantity
		if s.cart.CheckoutURL != "" {
			url := s.cart.CheckoutURL
			st.CheckoutURL = &url
		}
	}
	return st
}

// Mount is the initial load: Refresh with the loading flag raised. Only the
// first call loads; callers arriving meanwhile wait for it and get its result.
func (s *Session) Mount(ctx context.Context) error {
	s.mountOnce.Do(func() {
		s.mu.Lock()
		s.inFlight++
		s.mu.Unlock()

		s.mountErr = s.Refresh(ctx)

		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	})
	return s.mountErr
}

func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()

	current, err := s.client.GetCart(context.WithoutCancel(ctx))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		return err
	}
	s.cart = current
	return nil
}

func (s *Session) AddItem(ctx context.Context, variantID string, quantity int) error {
	return s.run(ctx, func(ctx context.Context, _ *Cart) (*Cart, error) {
		return s.client.AddToCart(ctx, variantID, quantity)
	})
}

// UpdateItem changes a line's quantity; anything below 1 removes the line.
func (s *Session) UpdateItem(ctx context.Context, lineID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, lineID)
	}
	return s.run(ctx, func(ctx context.Context, current *Cart) (*Cart, error) {
		if current == nil {
			return nil, ErrNoCart
		}
		return s.client.UpdateCartLine(ctx, current.ID, lineID, quantity)
	})
}

func (s *Session) RemoveItem(ctx context.Context, lineID string) error {
	return s.run(ctx, func(ctx context.Context, current *Cart) (*Cart, error) {
		if current == nil {
			return nil, ErrNoCart
		}
		return s.client.RemoveCartLine(ctx, current.ID, lineID)
	})
}

// ClearCart removes the lines one at a time and then refreshes. It stops at
// the first failed removal; lines removed before it stay removed.
func (s *Session) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	current := s.cart
	s.mu.Unlock()

	if current != nil {
		for _, line := range current.Lines {
			if err := s.RemoveItem(ctx, line.ID); err != nil {
				return err
			}
		}
	}
	return s.Refresh(ctx)
}

func (s *Session) run(ctx context.Context, action func(context.Context, *Cart) (*Cart, error)) error {
	s.mu.Lock()
	s.inFlight++
	s.err = nil
	current := s.cart
	s.mu.Unlock()

	updated, err := action(context.WithoutCancel(ctx), current)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if err != nil {
		s.err = err
		return err
	}
	s.cart = updated
	return nil
}
