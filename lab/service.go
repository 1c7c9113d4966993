package lab

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	receiptPrefix = "TXN-20260221-"

	cappedAssetKeyword = "Cable"
	cappedMaxHours     = 3

	noteMaxDuration = "Note: Max duration selected. Return strictly on time."
	noteCablePolicy = "Policy applied: Cables can be issued max 3 hours. Updated to 3."
)

// CheckoutService decides and commits checkouts against a roster and an asset store.
type CheckoutService struct {
	roster *Roster
	store  *AssetStore
	audit  AuditLogger
	logger *slog.Logger
	now    func() time.Time
}

type ServiceOption func(*CheckoutService)

func WithAuditLogger(a AuditLogger) ServiceOption {
	return func(s *CheckoutService) { s.audit = a }
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *CheckoutService) { s.logger = l }
}

func NewCheckoutService(roster *Roster, store *AssetStore, opts ...ServiceOption) *CheckoutService {
	s := &CheckoutService{
		roster: roster,
		store:  store,
		audit:  discardAuditLogger{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout runs the checkout pipeline for req:
//
//  1. structural validation of uid, asset id and hours
//  2. student lookup, then asset lookup
//  3. student policy, then asset policy
//  4. advisory note for the maximum duration
//  5. cable assets are capped at 3 hours
//  6. asset marked borrowed, student borrow count incremented
//
// Nothing is mutated unless every check in steps 1-3 passes. Exactly one audit
// entry is recorded per call, whatever the outcome.
func (s *CheckoutService) Checkout(req CheckoutRequest) (receipt Receipt, err error) {
	defer func() { s.recordAudit(req, err) }()

	if err := ValidateUID(req.UID()); err != nil {
		return Receipt{}, err
	}
	if err := ValidateAssetID(req.AssetID()); err != nil {
		return Receipt{}, err
	}
	if err := ValidateHours(req.Hours()); err != nil {
		return Receipt{}, err
	}

	student, err := s.roster.FindStudent(req.UID())
	if err != nil {
		return Receipt{}, err
	}
	asset, err := s.store.FindAsset(req.AssetID())
	if err != nil {
		return Receipt{}, err
	}

	if err := student.ValidatePolicy(); err != nil {
		return Receipt{}, err
	}
	if err := asset.ValidatePolicy(req.UID()); err != nil {
		return Receipt{}, err
	}

	receipt = Receipt{
		ID:             receiptPrefix + req.AssetID() + "-" + req.UID(),
		UID:            req.UID(),
		AssetID:        req.AssetID(),
		RequestedHours: req.Hours(),
		EffectiveHours: req.Hours(),
	}

	if req.Hours() == MaxHours {
		receipt.Notes = append(receipt.Notes, noteMaxDuration)
		s.logger.Info(noteMaxDuration, "uid", req.UID(), "asset", req.AssetID())
	}

	if strings.Contains(asset.AssetName, cappedAssetKeyword) && req.Hours() > cappedMaxHours {
		receipt.EffectiveHours = cappedMaxHours
		receipt.Notes = append(receipt.Notes, noteCablePolicy)
		s.logger.Info(noteCablePolicy, "uid", req.UID(), "asset", req.AssetID(), "requested_hours", req.Hours())
	}

	if err := s.store.MarkBorrowed(asset); err != nil {
		return Receipt{}, err
	}
	student.IncrementBorrow()

	s.logger.Debug("checkout committed", "receipt", receipt.ID, "effective_hours", receipt.EffectiveHours)
	return receipt, nil
}

func (s *CheckoutService) recordAudit(req CheckoutRequest, err error) {
	entry := AuditEntry{
		AttemptID: uuid.New(),
		UID:       req.UID(),
		AssetID:   req.AssetID(),
		Outcome:   OutcomeSuccess,
		At:        s.now(),
	}
	if err != nil {
		entry.Outcome = KindOf(err).String()
	}
	if aerr := s.audit.Record(entry); aerr != nil {
		s.logger.Warn("audit record failed", "attempt_id", entry.AttemptID, "error", aerr)
	}
}
