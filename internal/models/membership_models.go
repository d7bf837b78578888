package models

// Membership is one year's payment record for a member.
//
// IsPaid and Discounted are never set by callers; they are recomputed from
// Amount via ApplyAmount whenever the amount is written. The flags are a
// snapshot of the pricing in effect at write time and are not re-derived when
// the configuration changes later.
type Membership struct {
	ID         int64 `json:"id" db:"id"`
	MemberID   int64 `json:"member_id" db:"member_id"`
	Year       int   `json:"year" db:"year"`
	Amount     int   `json:"amount" db:"amount"`
	IsPaid     bool  `json:"is_paid" db:"is_paid"`
	Discounted bool  `json:"discounted" db:"discounted"`
}

// MembershipPricing carries the fee settings used to classify a payment.
// It is passed explicitly into every write path rather than read from
// ambient global state.
type MembershipPricing struct {
	// StandardFee is the full non-discounted yearly amount.
	StandardFee int
	// UnpaidThreshold is the amount at or below which a membership counts as unpaid.
	UnpaidThreshold int
}

// DeriveFlags classifies an amount under this pricing.
func (p MembershipPricing) DeriveFlags(amount int) (isPaid, discounted bool) {
	isPaid = amount > p.UnpaidThreshold
	discounted = amount > p.UnpaidThreshold && amount < p.StandardFee
	return isPaid, discounted
}

// ApplyAmount sets the amount and recomputes both payment flags together.
// This is the only way amount should ever be written to a Membership.
func (m *Membership) ApplyAmount(pricing MembershipPricing, amount int) {
	m.Amount = amount
	m.IsPaid, m.Discounted = pricing.DeriveFlags(amount)
}
