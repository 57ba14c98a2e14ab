package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(remote *fakeRemote) (*Session, Store) {
	store := NewMemoryStore()
	return NewSession(newTestClient(remote, store)), store
}

func TestEmptySessionState(t *testing.T) {
	s, _ := newTestSession(newFakeRemote())
	require.NoError(t, s.Mount(context.Background()))

	st := s.State()
	assert.Nil(t, st.Cart)
	assert.False(t, st.Loading)
	assert.NoError(t, st.Err)
	assert.Nil(t, st.CheckoutURL)
	assert.Equal(t, 0, st.ItemCount)
}

func TestSessionAddItem(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	s, _ := newTestSession(remote)

	require.NoError(t, s.AddItem(ctx, "variant-1", 2))

	st := s.State()
	require.NotNil(t, st.Cart)
	assert.False(t, st.Loading)
	assert.Equal(t, 2, st.ItemCount)
	require.NotNil(t, st.CheckoutURL)
	assert.Equal(t, st.Cart.CheckoutURL, *st.CheckoutURL)
}

func TestSessionUpdateBelowOneRemoves(t *testing.T) {
	ctx := context.Background()
	for _, q := range []int{0, -1, -5} {
		t.Run(fmt.Sprintf("quantity %d", q), func(t *testing.T) {
			remote := newFakeRemote()
			s, _ := newTestSession(remote)
			require.NoError(t, s.AddItem(ctx, "variant-1", 1))
			require.NoError(t, s.AddItem(ctx, "variant-2", 1))

			require.NoError(t, s.UpdateItem(ctx, "line-variant-1", q))

			assert.Equal(t, 0, remote.updateCalls)
			assert.Equal(t, 1, remote.removeCalls)
			_, present := findLine(s.State().Cart, "line-variant-1")
			assert.False(t, present)
		})
	}
}

func TestSessionNeverSendsQuantityBelowOne(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	s, _ := newTestSession(remote)
	require.NoError(t, s.AddItem(ctx, "variant-1", 1))

	for q := 5; q >= -2; q-- {
		_ = s.UpdateItem(ctx, "line-variant-1", q)
	}

	require.NotEmpty(t, remote.updatedQuantities)
	for _, q := range remote.updatedQuantities {
		assert.GreaterOrEqual(t, q, 1)
	}
}

func TestSessionFailureKeepsSnapshotAndRecordsError(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	s, _ := newTestSession(remote)
	require.NoError(t, s.AddItem(ctx, "variant-1", 1))
	before := s.State().Cart

	err := s.UpdateItem(ctx, "line-missing", 3)
	require.Error(t, err)

	st := s.State()
	assert.False(t, st.Loading)
	assert.ErrorIs(t, st.Err, err)
	assert.Equal(t, before, st.Cart)

	require.NoError(t, s.Refresh(ctx))
	assert.NoError(t, s.State().Err)
}

func TestSessionActionsWithoutCart(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	s, _ := newTestSession(remote)

	require.ErrorIs(t, s.UpdateItem(ctx, "line-1", 2), ErrNoCart)
	require.ErrorIs(t, s.RemoveItem(ctx, "line-1"), ErrNoCart)
	assert.Equal(t, 0, remote.updateCalls+remote.removeCalls)
}

func TestSessionClearCart(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	s, _ := newTestSession(remote)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.AddItem(ctx, fmt.Sprintf("variant-%d", i), 1))
	}

	require.NoError(t, s.ClearCart(ctx))

	assert.Equal(t, 3, remote.removeCalls)
	st := s.State()
	require.NotNil(t, st.Cart)
	assert.Empty(t, st.Cart.Lines)
	assert.Equal(t, 0, st.ItemCount)
}

func TestSessionClearCartPartialFailure(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.removeFailAt = 3
	s, _ := newTestSession(remote)
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.AddItem(ctx, fmt.Sprintf("variant-%d", i), 1))
	}

	err := s.ClearCart(ctx)
	require.Error(t, err)
	var te *TransportError
	require.ErrorAs(t, err, &te)

	assert.Equal(t, 3, remote.removeCalls)
	require.NoError(t, s.Refresh(ctx))
	c := s.State().Cart
	require.NotNil(t, c)
	for i := 1; i <= 5; i++ {
		_, present := findLine(c, fmt.Sprintf("line-variant-%d", i))
		assert.Equal(t, i >= 3, present, "line %d", i)
	}
}

func TestSessionRefreshAfterExpiry(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	s, store := newTestSession(remote)
	require.NoError(t, s.AddItem(ctx, "variant-1", 1))
	remote.expire(s.State().Cart.ID)

	require.NoError(t, s.Refresh(ctx))

	st := s.State()
	assert.Nil(t, st.Cart)
	assert.Equal(t, 0, st.ItemCount)
	_, ok, err := store.Get(ctx, session)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.AddItem(ctx, "variant-2", 1))
	assert.Equal(t, 2, remote.createCalls)
}

// blockingRemote holds CreateCart until released so Loading can be observed.
type blockingRemote struct {
	*fakeRemote
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRemote) CreateCart(ctx context.Context, lines []LineInput) (*Cart, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.fakeRemote.CreateCart(ctx, lines)
}

func TestSessionLoadingDuringAction(t *testing.T) {
	remote := &blockingRemote{fakeRemote: newFakeRemote(), entered: make(chan struct{}), release: make(chan struct{})}
	s := NewSession(NewClient(remote, NewMemoryStore()).ForSession(session))

	done := make(chan error, 1)
	go func() { done <- s.AddItem(context.Background(), "variant-1", 1) }()

	select {
	case <-remote.entered:
	case <-time.After(time.Second):
		t.Fatal("remote was not called")
	}
	assert.True(t, s.State().Loading)

	close(remote.release)
	require.NoError(t, <-done)
	assert.False(t, s.State().Loading)
}

func TestSessionConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	s, _ := newTestSession(remote)
	require.NoError(t, s.AddItem(ctx, "variant-0", 1))

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.AddItem(ctx, fmt.Sprintf("variant-%d", i), 1))
		}(i)
	}
	wg.Wait()

	st := s.State()
	assert.False(t, st.Loading)
	require.NoError(t, s.Refresh(ctx))
	assert.Equal(t, 9, s.State().ItemCount)
}

func TestSessionActionsOutliveCancelledRequest(t *testing.T) {
	remote := newFakeRemote()
	s, store := newTestSession(remote)
	require.NoError(t, s.AddItem(context.Background(), "variant-1", 1))
	cartID := s.State().Cart.ID

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.AddItem(ctx, "variant-2", 1))
	require.NoError(t, s.Refresh(ctx))

	st := s.State()
	require.NotNil(t, st.Cart)
	assert.Equal(t, cartID, st.Cart.ID)
	assert.Equal(t, 2, st.ItemCount)
	assert.Equal(t, 1, remote.createCalls)

	id, ok, err := store.Get(context.Background(), session)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cartID, id)
}

func TestSessionMountsOnce(t *testing.T) {
	remote := newFakeRemote()
	s, _ := newTestSession(remote)

	require.NoError(t, s.AddItem(context.Background(), "variant-1", 1))
	require.NoError(t, s.Mount(context.Background()))
	require.NoError(t, s.Mount(context.Background()))
	assert.Equal(t, 1, remote.getCalls)
}
