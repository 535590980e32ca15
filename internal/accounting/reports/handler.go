package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/millstone-erp/millstone-erp/internal/platform/httpx"
)

// Handler serves the trial balance report. Identical concurrent requests are
// collapsed through singleflight; the computation itself stays uncached.
type Handler struct {
	logger  *slog.Logger
	service *Service
	group   singleflight.Group
}

// NewHandler constructs the Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/trial-balance", h.handleTrialBalance)
}

func (h *Handler) handleTrialBalance(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "start must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "end must be YYYY-MM-DD")
		return
	}
	var ledgerID *int64
	if raw := r.URL.Query().Get("ledger_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ledger id")
			return
		}
		ledgerID = &parsed
	}

	key := flightKey(ledgerID, start, end)
	result, err, _ := h.doFlight(r.Context(), key, func(ctx context.Context) (any, error) {
		return h.service.TrialBalance(ctx, ledgerID, start, end)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		h.logger.Error("trial balance", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) doFlight(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error, bool) {
	resultChan := h.group.DoChan(key, func() (any, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-resultChan:
		return res.Val, res.Err, res.Shared
	}
}

func flightKey(ledgerID *int64, start, end time.Time) string {
	id := int64(0)
	if ledgerID != nil {
		id = *ledgerID
	}
	return fmt.Sprintf("tb:%d:%s:%s", id, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
