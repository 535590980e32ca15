package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/millstone-erp/millstone-erp/internal/accounting/posting"
	"github.com/millstone-erp/millstone-erp/internal/documents"
)

// QueueDefault is the default queue name for background jobs.
const QueueDefault = "default"

// VoucherPrintHandler loads a transaction and renders its voucher.
type VoucherPrintHandler struct {
	transactions *posting.Service
	renderer     *documents.Renderer
	logger       *slog.Logger
}

// NewVoucherPrintHandler constructs the handler.
func NewVoucherPrintHandler(transactions *posting.Service, renderer *documents.Renderer, logger *slog.Logger) *VoucherPrintHandler {
	return &VoucherPrintHandler{transactions: transactions, renderer: renderer, logger: logger}
}

// Handle processes documents:voucher_print tasks.
func (h *VoucherPrintHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var payload documents.VoucherPrintPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	txn, err := h.transactions.Get(ctx, payload.TransactionID)
	if err != nil {
		return err
	}
	rendered := h.renderer.Voucher(txn)
	h.logger.Info("voucher rendered",
		slog.Int64("transaction_id", txn.ID),
		slog.String("kind", string(payload.Kind)),
		slog.Int("bytes", len(rendered)))
	return nil
}
