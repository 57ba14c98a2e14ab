package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

type CartHandler struct {
	sessions Sessions
	logger   *zap.Logger
}

type cartState struct {
	Cart        *cart.Cart `json:"cart"`
	Loading     bool       `json:"loading"`
	Error       string     `json:"error,omitempty"`
	CheckoutURL *string    `json:"checkoutUrl"`
	ItemCount   int        `json:"itemCount"`
}

func toCartState(st cart.State) cartState {
	out := cartState{
		Cart:        st.Cart,
		Loading:     st.Loading,
		CheckoutURL: st.CheckoutURL,
		ItemCount:   st.ItemCount,
	}
	if st.Err != nil {
		out.Error = st.Err.Error()
	}
	return out
}

type addItemRequest struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *CartHandler) session(r *http.Request) *cart.Session {
	return h.sessions.Session(r.Context(), middleware.GetSessionID(r.Context()))
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartState(h.session(r).State()))
}

func (h *CartHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	if err := s.Refresh(r.Context()); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartState(s.State()))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if req.VariantID == "" {
		respondError(w, r, h.logger, fmt.Errorf("%w: variantId is required", errBadRequest))
		return
	}

	s := h.session(r)
	if err := s.AddItem(r.Context(), req.VariantID, req.Quantity); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartState(s.State()))
}

// UpdateItem sets a line's quantity. A quantity below 1 removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if req.Quantity == nil {
		respondError(w, r, h.logger, fmt.Errorf("%w: quantity is required", errBadRequest))
		return
	}

	s := h.session(r)
	if err := s.UpdateItem(r.Context(), chi.URLParam(r, "lineId"), *req.Quantity); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartState(s.State()))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	if err := s.RemoveItem(r.Context(), chi.URLParam(r, "lineId")); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartState(s.State()))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	if err := s.ClearCart(r.Context()); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartState(s.State()))
}

// Checkout hands the shopper off to the platform's checkout page.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	st := h.session(r).State()
	if st.CheckoutURL == nil {
		respondError(w, r, h.logger, cart.ErrNoCart)
		return
	}
	http.Redirect(w, r, *st.CheckoutURL, http.StatusSeeOther)
}
