// Package documents is the printable-document collaborator. It receives
// already-validated transactions and renders or enqueues them; the accounting
// engine never depends on it for correctness.
package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
)

// TaskTypeVoucherPrint is the asynq task type for voucher print requests.
const TaskTypeVoucherPrint = "documents:voucher_print"

// VoucherPrintPayload identifies the transaction to print.
type VoucherPrintPayload struct {
	TransactionID int64                  `json:"transaction_id"`
	Kind          vouchers.ReferenceKind `json:"kind"`
}

// NewVoucherPrintTask constructs an asynq task.
func NewVoucherPrintTask(payload VoucherPrintPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeVoucherPrint, data), nil
}

// Enqueuer hands print requests to the job queue. It satisfies the posting
// service's DocumentPort.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer constructs an Enqueuer.
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueVoucherPrint queues a print request for a document-bound voucher.
func (e *Enqueuer) EnqueueVoucherPrint(ctx context.Context, transactionID int64, kind vouchers.ReferenceKind) error {
	task, err := NewVoucherPrintTask(VoucherPrintPayload{TransactionID: transactionID, Kind: kind})
	if err != nil {
		return err
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("documents: enqueue voucher print: %w", err)
	}
	return nil
}
