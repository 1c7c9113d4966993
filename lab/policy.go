package lab

import (
	"fmt"
	"strings"
)

const (
	// MaxActiveBorrows is the number of concurrent loans that blocks further checkouts.
	MaxActiveBorrows = 2

	// RestrictedSecurityLevel requires a cleared uid prefix.
	RestrictedSecurityLevel = 3
	ClearedUIDPrefix        = "KRG"
)

// ValidatePolicy reports whether the student may borrow. An outstanding fine is
// reported before the borrow limit.
func (s *Student) ValidatePolicy() error {
	if s.FineAmount > 0 {
		return fmt.Errorf("%w: fine present (%d)", ErrPolicyViolation, s.FineAmount)
	}
	if s.CurrentBorrowCount >= MaxActiveBorrows {
		return fmt.Errorf("%w: borrow limit exceeded", ErrPolicyViolation)
	}
	return nil
}

// IncrementBorrow records a new active loan. Call only after ValidatePolicy passed.
func (s *Student) IncrementBorrow() {
	s.CurrentBorrowCount++
}

// ValidatePolicy reports whether uid may borrow the asset right now.
func (a *Asset) ValidatePolicy(uid string) error {
	if !a.Available {
		return fmt.Errorf("%w: asset %s not available", ErrUnavailable, a.AssetID)
	}
	if a.SecurityLevel == RestrictedSecurityLevel && !strings.HasPrefix(uid, ClearedUIDPrefix) {
		return fmt.Errorf("%w: only %s students allowed for %s", ErrSecurityViolation, ClearedUIDPrefix, a.AssetID)
	}
	return nil
}
