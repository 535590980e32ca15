package posting

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/millstone-erp/millstone-erp/internal/accounting/cart"
	acctshared "github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/platform/httpx"
	"github.com/millstone-erp/millstone-erp/internal/shared"
)

// Handler serves transaction posting.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	drafts   cart.DraftRepository
	validate *validator.Validate
}

// NewHandler constructs the Handler.
func NewHandler(logger *slog.Logger, service *Service, drafts cart.DraftRepository) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, drafts: drafts, validate: validator.New()}
}

// MountRoutes registers transaction endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/transactions", h.handleList)
	r.Get("/transactions/{id}", h.handleGet)
	r.Post("/transactions", h.handlePost)
	r.Post("/transactions/{id}/void", h.handleVoid)
}

type postPayload struct {
	DraftID string `json:"draft_id" validate:"required,uuid"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	out, err := h.service.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("list transactions", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid transaction id")
		return
	}
	txn, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, "get transaction", err)
		return
	}
	httpx.JSON(w, http.StatusOK, txn)
}

// handlePost commits a stored draft. On success the draft is removed; a
// rejected non-privileged edit also discards the draft so the caller lands
// back in a safe state.
func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	var payload postPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	draftID, err := uuid.Parse(payload.DraftID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid draft id")
		return
	}
	draft, err := h.drafts.Load(r.Context(), actor.UserID, draftID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "draft not found")
			return
		}
		h.logger.Error("load draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	txn, err := h.service.Post(r.Context(), *actor, draft)
	if err != nil {
		var periodErr *PeriodError
		if errors.As(err, &periodErr) {
			// keep the draft but move it onto the reset working date
			draft.Date = periodErr.ResetDate
			draft.FinancialYearID = periodErr.ResetYearID
			if saveErr := h.drafts.Save(r.Context(), actor.UserID, draft); saveErr != nil {
				h.logger.Warn("save reset draft", slog.Any("error", saveErr))
			}
		}
		if errors.Is(err, acctshared.ErrEditForbidden) {
			if delErr := h.drafts.Delete(r.Context(), actor.UserID, draftID); delErr != nil {
				h.logger.Warn("discard draft", slog.Any("error", delErr))
			}
		}
		h.respondError(w, r, "post transaction", err)
		return
	}

	if err := h.drafts.Delete(r.Context(), actor.UserID, draftID); err != nil {
		h.logger.Warn("remove committed draft", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusCreated, txn)
}

func (h *Handler) handleVoid(w http.ResponseWriter, r *http.Request) {
	actor := shared.ActorFromContext(r.Context())
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid transaction id")
		return
	}
	txn, err := h.service.Void(r.Context(), *actor, id)
	if err != nil {
		h.respondError(w, r, "void transaction", err)
		return
	}
	httpx.JSON(w, http.StatusOK, txn)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var periodErr *PeriodError
	switch {
	case errors.As(err, &periodErr):
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"title":      "Period Failure",
			"status":     http.StatusUnprocessableEntity,
			"detail":     periodErr.Reason.Error(),
			"reset_date": periodErr.ResetDate,
		})
	case errors.Is(err, acctshared.ErrEditForbidden):
		httpx.Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, acctshared.ErrTransactionNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, acctshared.ErrAlreadyVoided),
		errors.Is(err, acctshared.ErrReferenceSettled):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, acctshared.ErrUnbalanced),
		errors.Is(err, acctshared.ErrEmptyCart),
		errors.Is(err, acctshared.ErrZeroTotals),
		errors.Is(err, acctshared.ErrCompanyRequired),
		errors.Is(err, acctshared.ErrVoucherRequired):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err), slog.String("path", r.URL.Path))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
