package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/theme"
)

type ThemeHandler struct {
	logger *zap.Logger
}

type stageAt struct {
	Mode         theme.Mode  `json:"mode"`
	AtMs         int64       `json:"atMs"`
	Stage        theme.Stage `json:"stage"`
	StageStartMs int64       `json:"stageStartMs"`
}

func (h *ThemeHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"modes": theme.Modes()})
}

func (h *ThemeHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	mode, err := theme.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	tl, err := theme.TimelineFor(mode)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	raw := r.URL.Query().Get("at")
	if raw == "" {
		writeJSON(w, http.StatusOK, tl)
		return
	}

	// ?at=<ms> answers which stage a page that loaded that long ago shows.
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, r, h.logger, fmt.Errorf("%w: at must be milliseconds", errBadRequest))
		return
	}
	elapsed := time.Duration(ms) * time.Millisecond
	stage := tl.At(elapsed)
	start, _ := tl.StartOf(stage)
	writeJSON(w, http.StatusOK, stageAt{Mode: mode, AtMs: ms, Stage: stage, StageStartMs: start.Milliseconds()})
}
