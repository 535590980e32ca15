package fiscal

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/platform/httpx"
)

// Handler serves financial year data.
type Handler struct {
	logger   *slog.Logger
	resolver *Resolver
}

// NewHandler constructs the Handler.
func NewHandler(logger *slog.Logger, resolver *Resolver) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, resolver: resolver}
}

// MountRoutes registers financial year endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/financial-years", h.handleList)
	r.Get("/financial-years/resolve", h.handleResolve)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	out, err := h.resolver.List(r.Context())
	if err != nil {
		h.logger.Error("list financial years", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	ts := h.resolver.Now()
	if raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "date must be YYYY-MM-DD")
			return
		}
		ts = parsed
	}
	fy, err := h.resolver.Resolve(r.Context(), ts)
	if err != nil {
		if errors.Is(err, shared.ErrYearNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		h.logger.Error("resolve financial year", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"financial_year": fy,
		"writable":       fy.Writable() == nil,
	})
}
