package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
)

func ref(id int64) *int64 {
	return &id
}

func day(d int) time.Time {
	return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
}

func TestGroupOutstandingNetsPartialSettlement(t *testing.T) {
	rows := []Row{
		{LineID: 1, Date: day(1), Debit: 1500, ReferenceID: ref(10), ReferenceNo: "INV-10", ReferenceKind: vouchers.RefSale},
		{LineID: 2, Date: day(5), Credit: 600, ReferenceID: ref(10), ReferenceNo: "INV-10", ReferenceKind: vouchers.RefSale},
		{LineID: 3, Date: day(3), Debit: 900, ReferenceID: ref(11), ReferenceNo: "INV-11", ReferenceKind: vouchers.RefSale},
	}

	groups := GroupOutstanding(rows)
	require.Len(t, groups, 2)

	// most recent document date first
	require.Equal(t, "INV-11", groups[0].ReferenceNo)
	require.Equal(t, 900.0, groups[0].Outstanding())

	require.Equal(t, "INV-10", groups[1].ReferenceNo)
	require.Equal(t, 900.0, groups[1].Outstanding())
	require.Equal(t, 2, groups[1].Rows)
	// the group keeps the original invoice date, not the payment date
	require.Equal(t, day(1), groups[1].Date)
}

func TestGroupOutstandingDropsSettledGroups(t *testing.T) {
	rows := []Row{
		{LineID: 1, Date: day(1), Debit: 500, ReferenceID: ref(10), ReferenceNo: "INV-10", ReferenceKind: vouchers.RefSale},
		{LineID: 2, Date: day(2), Credit: 500, ReferenceID: ref(10), ReferenceNo: "INV-10", ReferenceKind: vouchers.RefSale},
	}
	require.Empty(t, GroupOutstanding(rows))
}

func TestGroupOutstandingSkipsUnidentifiedRows(t *testing.T) {
	rows := []Row{
		{LineID: 1, Date: day(1), Debit: 100},
		{LineID: 2, Date: day(1), Debit: 100, ReferenceID: ref(0), ReferenceNo: "INV-1", ReferenceKind: vouchers.RefSale},
		{LineID: 3, Date: day(1), Debit: 100, ReferenceID: ref(5), ReferenceKind: vouchers.RefSale},
		{LineID: 4, Date: day(2), Debit: 100, ReferenceID: ref(5), ReferenceNo: "INV-5", ReferenceKind: vouchers.RefSale},
	}

	groups := GroupOutstanding(rows)
	require.Len(t, groups, 1)
	require.Equal(t, "INV-5", groups[0].ReferenceNo)
	require.Equal(t, 100.0, groups[0].Outstanding())
}

func TestGroupOutstandingSeparatesKinds(t *testing.T) {
	// same document number under two kinds stays two groups
	rows := []Row{
		{LineID: 1, Date: day(1), Debit: 80, ReferenceID: ref(10), ReferenceNo: "DOC-1", ReferenceKind: vouchers.RefSale},
		{LineID: 2, Date: day(1), Credit: 30, ReferenceID: ref(10), ReferenceNo: "DOC-1", ReferenceKind: vouchers.RefSaleReturn},
	}

	groups := GroupOutstanding(rows)
	require.Len(t, groups, 2)
}

func TestGroupOutstandingStableOrderOnEqualDates(t *testing.T) {
	rows := []Row{
		{LineID: 1, Date: day(4), Debit: 10, ReferenceID: ref(1), ReferenceNo: "A", ReferenceKind: vouchers.RefSale},
		{LineID: 2, Date: day(4), Debit: 20, ReferenceID: ref(2), ReferenceNo: "B", ReferenceKind: vouchers.RefSale},
		{LineID: 3, Date: day(4), Debit: 30, ReferenceID: ref(3), ReferenceNo: "C", ReferenceKind: vouchers.RefSale},
	}

	groups := GroupOutstanding(rows)
	require.Equal(t, []string{"A", "B", "C"}, []string{groups[0].ReferenceNo, groups[1].ReferenceNo, groups[2].ReferenceNo})
}

func TestGroupOutstandingIsRepeatable(t *testing.T) {
	rows := []Row{
		{LineID: 1, Date: day(1), Debit: 1500, ReferenceID: ref(10), ReferenceNo: "INV-10", ReferenceKind: vouchers.RefSale},
		{LineID: 2, Date: day(5), Credit: 600, ReferenceID: ref(10), ReferenceNo: "INV-10", ReferenceKind: vouchers.RefSale},
		{LineID: 3, Date: day(3), Debit: 900, ReferenceID: ref(11), ReferenceNo: "INV-11", ReferenceKind: vouchers.RefSale},
	}

	first := GroupOutstanding(rows)
	second := GroupOutstanding(rows)
	require.Equal(t, first, second)
}

func TestGroupOutstandingEmptyInput(t *testing.T) {
	require.Empty(t, GroupOutstanding(nil))
}
