package vouchers

import (
	"context"
	"fmt"

	"github.com/millstone-erp/millstone-erp/internal/accounting/settings"
)

// Setting keys binding voucher ids to external document kinds.
const (
	KeySaleVoucher           = "accounting.voucher.sale"
	KeySaleReturnVoucher     = "accounting.voucher.sale_return"
	KeyPurchaseVoucher       = "accounting.voucher.purchase"
	KeyPurchaseReturnVoucher = "accounting.voucher.purchase_return"
	KeyStockTransferVoucher  = "accounting.voucher.stock_transfer"
	KeyCashLedger            = "accounting.ledger.cash"
)

// Bindings is the typed view of the configured voucher/ledger bindings,
// resolved once at startup instead of parsed per call.
type Bindings struct {
	SaleVoucherID           int64
	SaleReturnVoucherID     int64
	PurchaseVoucherID       int64
	PurchaseReturnVoucherID int64
	StockTransferVoucherID  int64
	CashLedgerID            int64
}

// LoadBindings resolves every binding key from the settings store.
func LoadBindings(ctx context.Context, store settings.Store) (Bindings, error) {
	var b Bindings
	for _, entry := range []struct {
		key    string
		target *int64
	}{
		{KeySaleVoucher, &b.SaleVoucherID},
		{KeySaleReturnVoucher, &b.SaleReturnVoucherID},
		{KeyPurchaseVoucher, &b.PurchaseVoucherID},
		{KeyPurchaseReturnVoucher, &b.PurchaseReturnVoucherID},
		{KeyStockTransferVoucher, &b.StockTransferVoucherID},
		{KeyCashLedger, &b.CashLedgerID},
	} {
		value, err := store.GetInt64(ctx, entry.key)
		if err != nil {
			return Bindings{}, fmt.Errorf("vouchers: load bindings: %w", err)
		}
		*entry.target = value
	}
	return b, nil
}

// KindForVoucher returns the external document kind bound to a voucher id,
// or RefNone when the voucher has no companion document.
func (b Bindings) KindForVoucher(voucherID int64) ReferenceKind {
	switch voucherID {
	case b.SaleVoucherID:
		return RefSale
	case b.SaleReturnVoucherID:
		return RefSaleReturn
	case b.PurchaseVoucherID:
		return RefPurchase
	case b.PurchaseReturnVoucherID:
		return RefPurchaseReturn
	case b.StockTransferVoucherID:
		return RefStockTransfer
	default:
		return RefNone
	}
}
