package vouchers

import "time"

// Voucher tags the business meaning of an accounting transaction.
type Voucher struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReferenceKind is the closed set of external document kinds a posting line
// can settle against. Matches on it are exhaustive; empty and unknown stored
// values decode to RefNone via ParseReferenceKind.
type ReferenceKind string

const (
	RefNone           ReferenceKind = "NONE"
	RefSale           ReferenceKind = "SALE"
	RefSaleReturn     ReferenceKind = "SALE_RETURN"
	RefPurchase       ReferenceKind = "PURCHASE"
	RefPurchaseReturn ReferenceKind = "PURCHASE_RETURN"
	RefStockTransfer  ReferenceKind = "STOCK_TRANSFER"
)

// ParseReferenceKind maps a stored value onto the closed set, treating
// unknown and empty values as RefNone.
func ParseReferenceKind(raw string) ReferenceKind {
	switch ReferenceKind(raw) {
	case RefSale, RefSaleReturn, RefPurchase, RefPurchaseReturn, RefStockTransfer:
		return ReferenceKind(raw)
	default:
		return RefNone
	}
}

// Valid reports whether the kind belongs to the closed set.
func (k ReferenceKind) Valid() bool {
	switch k {
	case RefNone, RefSale, RefSaleReturn, RefPurchase, RefPurchaseReturn, RefStockTransfer:
		return true
	}
	return false
}

// Documented reports whether the kind is backed by an external document.
func (k ReferenceKind) Documented() bool {
	return k.Valid() && k != RefNone
}
