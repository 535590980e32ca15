// Package reconcile surfaces external references that still carry an
// outstanding balance against a ledger, so new payments and adjustments can
// be applied to the right document.
package reconcile

import (
	"sort"
	"time"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
)

// Row is a flattened header+detail posting against one ledger.
type Row struct {
	LineID        int64
	TransactionID int64
	Date          time.Time
	LedgerID      int64
	Debit         float64
	Credit        float64
	ReferenceID   *int64
	ReferenceNo   string
	ReferenceKind vouchers.ReferenceKind
}

// Group is the unit of reconciliation: every posting that touched one
// external document, netted. A single invoice plus its partial settlements
// collapse into one group.
type Group struct {
	ReferenceID   int64
	ReferenceNo   string
	ReferenceKind vouchers.ReferenceKind
	Date          time.Time
	Debit         float64
	Credit        float64
	Rows          int
}

// Outstanding is the net open amount of the group.
func (g Group) Outstanding() float64 {
	return shared.Round2(g.Debit - g.Credit)
}

type groupKey struct {
	no   string
	kind vouchers.ReferenceKind
	id   int64
}

// GroupOutstanding groups rows by (ReferenceNo, ReferenceKind, ReferenceID),
// nets debit against credit, drops fully settled and unidentified groups and
// orders the survivors by reference date, most recent first. The sort is
// stable: ties keep natural input order. Re-running on the same rows yields
// the same result; an empty result means nothing outstanding, not an error.
func GroupOutstanding(rows []Row) []Group {
	index := make(map[groupKey]int)
	var groups []Group
	for _, row := range rows {
		if row.ReferenceID == nil || *row.ReferenceID == 0 || row.ReferenceNo == "" {
			continue
		}
		key := groupKey{no: row.ReferenceNo, kind: row.ReferenceKind, id: *row.ReferenceID}
		at, ok := index[key]
		if !ok {
			at = len(groups)
			index[key] = at
			groups = append(groups, Group{
				ReferenceID:   key.id,
				ReferenceNo:   key.no,
				ReferenceKind: key.kind,
				Date:          row.Date,
			})
		}
		groups[at].Debit = shared.Round2(groups[at].Debit + row.Debit)
		groups[at].Credit = shared.Round2(groups[at].Credit + row.Credit)
		groups[at].Rows++
		if row.Date.Before(groups[at].Date) {
			// the group carries its earliest posting date, i.e. the
			// original document date
			groups[at].Date = row.Date
		}
	}

	open := groups[:0]
	for _, g := range groups {
		if shared.AmountsEqual(g.Debit, g.Credit) {
			continue
		}
		open = append(open, g)
	}

	sort.SliceStable(open, func(i, j int) bool {
		return open[i].Date.After(open[j].Date)
	})
	return open
}
