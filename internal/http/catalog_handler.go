package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
)

const defaultPageSize = 20

type CatalogHandler struct {
	catalog  Catalog
	pageSize int
	logger   *zap.Logger
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := catalog.ListOptions{
		First:      h.pageSize,
		Collection: r.URL.Query().Get("collection"),
	}
	if opts.First <= 0 {
		opts.First = defaultPageSize
	}
	if raw := r.URL.Query().Get("first"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, h.logger, fmt.Errorf("%w: first must be an integer", errBadRequest))
			return
		}
		opts.First = n
	}

	page, err := h.catalog.List(r.Context(), opts)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
