package vouchers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/millstone-erp/millstone-erp/internal/accounting/settings"
)

func testSettings() settings.Static {
	return settings.Static{
		KeySaleVoucher:           "10",
		KeySaleReturnVoucher:     "20",
		KeyPurchaseVoucher:       "30",
		KeyPurchaseReturnVoucher: "40",
		KeyStockTransferVoucher:  "50",
		KeyCashLedger:            "1",
	}
}

func TestLoadBindings(t *testing.T) {
	b, err := LoadBindings(context.Background(), testSettings())
	require.NoError(t, err)
	require.Equal(t, int64(10), b.SaleVoucherID)
	require.Equal(t, int64(40), b.PurchaseReturnVoucherID)
	require.Equal(t, int64(1), b.CashLedgerID)
}

func TestLoadBindingsMissingKey(t *testing.T) {
	store := testSettings()
	delete(store, KeyStockTransferVoucher)

	_, err := LoadBindings(context.Background(), store)
	require.ErrorIs(t, err, settings.ErrKeyNotFound)
}

func TestLoadBindingsNonNumeric(t *testing.T) {
	store := testSettings()
	store[KeySaleVoucher] = "journal"

	_, err := LoadBindings(context.Background(), store)
	require.Error(t, err)
}

func TestKindForVoucher(t *testing.T) {
	b, err := LoadBindings(context.Background(), testSettings())
	require.NoError(t, err)

	require.Equal(t, RefSale, b.KindForVoucher(10))
	require.Equal(t, RefSaleReturn, b.KindForVoucher(20))
	require.Equal(t, RefPurchase, b.KindForVoucher(30))
	require.Equal(t, RefPurchaseReturn, b.KindForVoucher(40))
	require.Equal(t, RefStockTransfer, b.KindForVoucher(50))
	require.Equal(t, RefNone, b.KindForVoucher(99))
}

func TestParseReferenceKind(t *testing.T) {
	require.Equal(t, RefSale, ParseReferenceKind("SALE"))
	require.Equal(t, RefNone, ParseReferenceKind(""))
	require.Equal(t, RefNone, ParseReferenceKind("sale"))
	require.Equal(t, RefNone, ParseReferenceKind("INVOICE"))
}

func TestReferenceKindDocumented(t *testing.T) {
	require.False(t, RefNone.Documented())
	require.True(t, RefSale.Documented())
	require.True(t, RefStockTransfer.Documented())
	require.False(t, ReferenceKind("BOGUS").Documented())
}
