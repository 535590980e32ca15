package ledgers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/platform/httpx"
)

// Handler serves the ledger registry.
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

// MountRoutes registers ledger registry endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ledgers", h.handleList)
	r.Get("/ledgers/{id}", h.handleGet)
	r.Post("/ledgers", h.handleCreate)
	r.Delete("/ledgers/{id}", h.handleRetire)
	r.Get("/account-types", h.handleAccountTypes)
	r.Get("/ledger-groups", h.handleGroups)
}

type ledgerPayload struct {
	Name          string `json:"name"`
	Code          string `json:"code"`
	AccountTypeID int64  `json:"account_type_id"`
	GroupID       int64  `json:"group_id"`
	LocationID    *int64 `json:"location_id,omitempty"`
	StateUTID     *int64 `json:"state_ut_id,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListActive(r.Context())
	if err != nil {
		h.respondError(w, "list ledgers", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ledger id")
		return
	}
	ledger, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get ledger", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ledger)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload ledgerPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid body")
		return
	}
	ledger, err := h.service.Create(r.Context(), CreateInput{
		Name:          payload.Name,
		Code:          payload.Code,
		AccountTypeID: payload.AccountTypeID,
		GroupID:       payload.GroupID,
		LocationID:    payload.LocationID,
		StateUTID:     payload.StateUTID,
	})
	if err != nil {
		h.respondError(w, "create ledger", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ledger)
}

func (h *Handler) handleRetire(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid ledger id")
		return
	}
	if err := h.service.Retire(r.Context(), id); err != nil {
		h.respondError(w, "retire ledger", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "status": LedgerRetired})
}

func (h *Handler) handleAccountTypes(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListAccountTypes(r.Context())
	if err != nil {
		h.respondError(w, "list account types", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleGroups(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListGroups(r.Context())
	if err != nil {
		h.respondError(w, "list ledger groups", err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrLedgerNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicateLedger):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrLedgerRequired):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
