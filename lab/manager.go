package lab

import (
	"io"
	"log/slog"
)

// LabManager is a thin façade over the Database and a CheckoutService, keeping CLI code simple.
type LabManager struct {
	db     *Database
	svc    *CheckoutService
	roster *Roster
	store  *AssetStore
}

// ManagerOption tweaks the service a LabManager builds.
type ManagerOption func(*managerConfig)

type managerConfig struct {
	logger     *slog.Logger
	auditTrail io.Writer
}

func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(c *managerConfig) { c.logger = l }
}

// WithAuditWriter echoes audit lines to w in addition to the database.
func WithAuditWriter(w io.Writer) ManagerOption {
	return func(c *managerConfig) { c.auditTrail = w }
}

// NewLabManager opens the SQLite database at dbPath and loads its roster.
func NewLabManager(dbPath string, opts ...ManagerOption) (*LabManager, error) {
	cfg := managerConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := NewDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	roster, store, err := db.LoadRoster()
	if err != nil {
		db.Close()
		return nil, err
	}

	var audit AuditLogger = db
	if cfg.auditTrail != nil {
		audit = MultiAuditLogger{db, NewWriterAuditLogger(cfg.auditTrail)}
	}
	svc := NewCheckoutService(roster, store, WithAuditLogger(audit), WithLogger(cfg.logger))
	return &LabManager{db: db, svc: svc, roster: roster, store: store}, nil
}

// Close closes the underlying database.
func (lm *LabManager) Close() error { return lm.db.Close() }

// ------------------ Circulation ------------------

// Checkout builds the request and runs it through the service.
func (lm *LabManager) Checkout(uid, assetID string, hours int) (Receipt, error) {
	req, err := NewCheckoutRequest(uid, assetID, hours)
	if err != nil {
		return Receipt{}, err
	}
	return lm.svc.Checkout(req)
}

func (lm *LabManager) RunBatch(requests []RequestRecord, report func(BatchResult)) (succeeded, failed int) {
	return RunBatch(lm.svc, requests, report)
}

// ------------------ Listings ------------------

func (lm *LabManager) Students() []*Student { return lm.roster.Students() }
func (lm *LabManager) Assets() []*Asset     { return lm.store.Assets() }

func (lm *LabManager) AuditEntries() ([]AuditEntry, error) { return lm.db.GetAuditEntries() }
