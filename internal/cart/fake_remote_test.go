package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// fakeRemote is an in-memory cart platform that counts calls.
type fakeRemote struct {
	mu     sync.Mutex
	carts  map[string]*Cart
	nextID int

	createCalls int
	addCalls    int
	updateCalls int
	removeCalls int
	getCalls    int

	updatedQuantities []int

	createErr error
	addErr    error
	getErr    error
	// removeFailAt makes the n-th RemoveLines call (1-based) fail.
	removeFailAt int
	// getGate, when set before use, holds Cart until it is closed.
	getGate chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{carts: make(map[string]*Cart)}
}

var unitPrice = decimal.NewFromInt(148)

func (f *fakeRemote) CreateCart(ctx context.Context, lines []LineInput) (*Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: "cartCreate", Err: err}
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	c := &Cart{
		ID:          fmt.Sprintf("gid://shopify/Cart/c%d", f.nextID),
		CheckoutURL: fmt.Sprintf("https://shop.test/cart/c/c%d", f.nextID),
	}
	f.carts[c.ID] = c
	f.addLocked(c, lines)
	return clone(c), nil
}

func (f *fakeRemote) AddLines(ctx context.Context, cartID string, lines []LineInput) (*Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: "cartLinesAdd", Err: err}
	}
	if f.addErr != nil {
		return nil, f.addErr
	}
	c, ok := f.carts[cartID]
	if !ok {
		return nil, UserErrors{{Field: []string{"cartId"}, Message: "The specified cart does not exist."}}
	}
	f.addLocked(c, lines)
	return clone(c), nil
}

func (f *fakeRemote) UpdateLines(ctx context.Context, cartID string, updates []LineUpdate) (*Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: "cartLinesUpdate", Err: err}
	}
	c, ok := f.carts[cartID]
	if !ok {
		return nil, UserErrors{{Message: "The specified cart does not exist."}}
	}
	for _, u := range updates {
		f.updatedQuantities = append(f.updatedQuantities, u.Quantity)
		idx := lineIndex(c, u.ID)
		if idx < 0 {
			return nil, UserErrors{{Field: []string{"lines", "0", "id"}, Message: "The merchandise line was not found."}}
		}
		c.Lines[idx].Quantity = u.Quantity
	}
	recalc(c)
	return clone(c), nil
}

func (f *fakeRemote) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: "cartLinesRemove", Err: err}
	}
	if f.removeFailAt > 0 && f.removeCalls == f.removeFailAt {
		return nil, &TransportError{Op: "cartLinesRemove", Err: fmt.Errorf("connection reset")}
	}
	c, ok := f.carts[cartID]
	if !ok {
		return nil, UserErrors{{Message: "The specified cart does not exist."}}
	}
	for _, id := range lineIDs {
		idx := lineIndex(c, id)
		if idx < 0 {
			return nil, UserErrors{{Field: []string{"lineIds"}, Message: "The merchandise line was not found."}}
		}
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	}
	recalc(c)
	return clone(c), nil
}

func (f *fakeRemote) Cart(ctx context.Context, cartID string) (*Cart, error) {
	if f.getGate != nil {
		<-f.getGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: "cart", Err: err}
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

// expire forgets a cart the way the platform does when it ages out.
func (f *fakeRemote) expire(cartID string) {
	f.mu.Lock()
	delete(f.carts, cartID)
	f.mu.Unlock()
}

func (f *fakeRemote) seed(cartID string, variants ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := &Cart{ID: cartID, CheckoutURL: "https://shop.test/cart/c/" + cartID}
	f.carts[cartID] = c
	for _, v := range variants {
		f.addLocked(c, []LineInput{{MerchandiseID: v, Quantity: 1}})
	}
}

func (f *fakeRemote) addLocked(c *Cart, lines []LineInput) {
	for _, in := range lines {
		id := "line-" + in.MerchandiseID
		if idx := lineIndex(c, id); idx >= 0 {
			c.Lines[idx].Quantity += in.Quantity
			continue
		}
		c.Lines = append(c.Lines, Line{
			ID:       id,
			Quantity: in.Quantity,
			Merchandise: Merchandise{
				ID:           in.MerchandiseID,
				Title:        "Default Title",
				Price:        Money{Amount: unitPrice, CurrencyCode: "HKD"},
				ProductTitle: "Turnip Pudding",
			},
		})
	}
	recalc(c)
}

func lineIndex(c *Cart, lineID string) int {
	for i, l := range c.Lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}

func findLine(c *Cart, lineID string) (Line, bool) {
	if c == nil {
		return Line{}, false
	}
	for _, l := range c.Lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return Line{}, false
}

func recalc(c *Cart) {
	c.TotalQuantity = 0
	total := decimal.Zero
	for _, l := range c.Lines {
		c.TotalQuantity += l.Quantity
		total = total.Add(l.Merchandise.Price.Amount.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	c.Total = Money{Amount: total, CurrencyCode: "HKD"}
}

func clone(c *Cart) *Cart {
	cp := *c
	cp.Lines = append([]Line(nil), c.Lines...)
	return &cp
}

type recordedEvents struct {
	mu        sync.Mutex
	created   []string
	discarded []string
	err       error
}

func (r *recordedEvents) CartCreated(_ context.Context, _ string, c *Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, c.ID)
	return r.err
}

func (r *recordedEvents) CartDiscarded(_ context.Context, _ string, cartID string, _ error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discarded = append(r.discarded, cartID)
	return r.err
}
