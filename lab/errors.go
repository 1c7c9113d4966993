package lab

import "errors"

var (
	// ErrInvalidArgument indicates a malformed uid, asset id or duration.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound indicates an unknown student or asset.
	ErrNotFound = errors.New("not found")
	// ErrPolicyViolation indicates the student is not eligible to borrow.
	ErrPolicyViolation = errors.New("policy violation")
	// ErrUnavailable indicates the asset is already on loan.
	ErrUnavailable = errors.New("unavailable")
	// ErrSecurityViolation indicates the uid lacks clearance for the asset.
	ErrSecurityViolation = errors.New("security violation")
)

// Kind classifies a checkout failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindPolicyViolation
	KindUnavailable
	KindSecurityViolation
)

var kindSentinels = []struct {
	kind Kind
	err  error
}{
	{KindInvalidArgument, ErrInvalidArgument},
	{KindNotFound, ErrNotFound},
	{KindPolicyViolation, ErrPolicyViolation},
	{KindUnavailable, ErrUnavailable},
	{KindSecurityViolation, ErrSecurityViolation},
}

// KindOf reports which failure kind err wraps, or KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, ks := range kindSentinels {
		if errors.Is(err, ks.err) {
			return ks.kind
		}
	}
	return KindUnknown
}

func (k Kind) String() string {
	for _, ks := range kindSentinels {
		if ks.kind == k {
			return ks.err.Error()
		}
	}
	return "unknown"
}
