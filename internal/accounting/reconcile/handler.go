package reconcile

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/platform/httpx"
)

// Handler serves outstanding reference lookups.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reconciliation endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ledgers/{id}/outstanding", h.handleOutstanding)
}

func (h *Handler) handleOutstanding(w http.ResponseWriter, r *http.Request) {
	ledgerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ledger id")
		return
	}
	asOf := h.service.years.Now()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "as_of must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}
	groups, warnings, err := h.service.Outstanding(r.Context(), ledgerID, asOf)
	if err != nil {
		if errors.Is(err, shared.ErrYearNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		h.logger.Error("outstanding references", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"groups":   groups,
		"warnings": warnings,
	})
}
