package handlers

import (
	"net/http"

	"brainer/internal/contextutil"
	"brainer/internal/usage"
)

// UsageHandler serves the current month's counters and limits.
type UsageHandler struct {
	ledger usage.Ledger
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(ledger usage.Ledger) *UsageHandler {
	return &UsageHandler{ledger: ledger}
}

// ServeHTTP handles GET /api/v1/usage.
func (h *UsageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := contextutil.UserIDFromContext(ctx)

	snapshot, err := h.ledger.Current(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
