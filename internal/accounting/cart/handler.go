package cart

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/millstone-erp/millstone-erp/internal/accounting/fiscal"
	acctshared "github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/platform/httpx"
	"github.com/millstone-erp/millstone-erp/internal/shared"
)

// Handler serves draft carts. Every route requires an authenticated actor;
// drafts are scoped to the actor and invisible to anyone else.
type Handler struct {
	logger *slog.Logger
	drafts DraftRepository
	years  *fiscal.Resolver
}

// NewHandler constructs the Handler.
func NewHandler(logger *slog.Logger, drafts DraftRepository, years *fiscal.Resolver) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, drafts: drafts, years: years}
}

// MountRoutes registers draft endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/drafts", h.handleList)
	r.Post("/drafts", h.handleCreate)
	r.Get("/drafts/{id}", h.handleGet)
	r.Patch("/drafts/{id}", h.handleUpdateHeader)
	r.Delete("/drafts/{id}", h.handleDelete)
	r.Post("/drafts/{id}/lines", h.handleAddLine)
	r.Delete("/drafts/{id}/lines/{idx}", h.handleRemoveLine)
}

type createDraftPayload struct {
	CompanyID int64     `json:"company_id"`
	VoucherID int64     `json:"voucher_id"`
	Date      time.Time `json:"date"`
}

type headerPayload struct {
	VoucherID   *int64     `json:"voucher_id,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Remarks     *string    `json:"remarks,omitempty"`
	ReferenceID *int64     `json:"reference_id,omitempty"`
	ReferenceNo *string    `json:"reference_no,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	out, err := h.drafts.List(r.Context(), actor.UserID)
	if err != nil {
		h.logger.Error("list drafts", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var payload createDraftPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid body")
		return
	}
	if payload.Date.IsZero() {
		payload.Date = h.years.Now()
	}
	draft := NewDraft(payload.CompanyID, payload.VoucherID, payload.Date)
	h.reresolveYear(r, &draft)
	if err := h.drafts.Save(r.Context(), actor.UserID, draft); err != nil {
		h.logger.Error("save draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, draft)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	_, draft, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

func (h *Handler) handleUpdateHeader(w http.ResponseWriter, r *http.Request) {
	actor, draft, ok := h.load(w, r)
	if !ok {
		return
	}
	var payload headerPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid body")
		return
	}
	reresolve := false
	if payload.VoucherID != nil {
		draft.VoucherID = *payload.VoucherID
		reresolve = true
	}
	if payload.Date != nil {
		draft.Date = *payload.Date
		reresolve = true
	}
	if payload.Remarks != nil {
		draft.Remarks = *payload.Remarks
	}
	if payload.ReferenceID != nil {
		draft.ReferenceID = payload.ReferenceID
	}
	if payload.ReferenceNo != nil {
		draft.ReferenceNo = *payload.ReferenceNo
	}
	if reresolve {
		// voucher/date changes can move the transaction into another period
		h.reresolveYear(r, &draft)
	}
	draft = Recompute(draft)
	if err := h.drafts.Save(r.Context(), actor.UserID, draft); err != nil {
		h.logger.Error("save draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actor, draft, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := h.drafts.Delete(r.Context(), actor.UserID, draft.ID); err != nil {
		h.logger.Error("delete draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddLine(w http.ResponseWriter, r *http.Request) {
	actor, draft, ok := h.load(w, r)
	if !ok {
		return
	}
	var line Line
	if err := httpx.DecodeJSON(r, &line); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid body")
		return
	}
	next, err := AddLine(draft, line)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.drafts.Save(r.Context(), actor.UserID, next); err != nil {
		h.logger.Error("save draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, next)
}

func (h *Handler) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	actor, draft, ok := h.load(w, r)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid line index")
		return
	}
	next, err := RemoveLine(draft, idx)
	if err != nil {
		if errors.Is(err, acctshared.ErrLineNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.drafts.Save(r.Context(), actor.UserID, next); err != nil {
		h.logger.Error("save draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, next)
}

func (h *Handler) reresolveYear(r *http.Request, draft *Draft) {
	fy, err := h.years.Resolve(r.Context(), draft.Date)
	if err != nil {
		draft.FinancialYearID = 0
		return
	}
	draft.FinancialYearID = fy.ID
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (*shared.Actor, bool) {
	actor := shared.ActorFromContext(r.Context())
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return nil, false
	}
	return actor, true
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*shared.Actor, Draft, bool) {
	actor, ok := h.actor(w, r)
	if !ok {
		return nil, Draft{}, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid draft id")
		return nil, Draft{}, false
	}
	draft, err := h.drafts.Load(r.Context(), actor.UserID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "draft not found")
			return nil, Draft{}, false
		}
		h.logger.Error("load draft", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return nil, Draft{}, false
	}
	return actor, draft, true
}
