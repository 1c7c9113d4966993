package lab

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// OutcomeSuccess is the audit outcome of a completed checkout.
const OutcomeSuccess = "success"

// AuditEntry records one finished checkout attempt.
type AuditEntry struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	UID       string    `json:"uid"`
	AssetID   string    `json:"asset_id"`
	Outcome   string    `json:"outcome"`
	At        time.Time `json:"at"`
}

// Line is the human-readable audit message.
func (e AuditEntry) Line() string {
	return fmt.Sprintf("Attempt finished for UID=%s, asset=%s", e.UID, e.AssetID)
}

// AuditLogger receives one entry per checkout attempt.
type AuditLogger interface {
	Record(entry AuditEntry) error
}

// WriterAuditLogger prints "AUDIT: <line>" for every entry.
type WriterAuditLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterAuditLogger(w io.Writer) *WriterAuditLogger {
	return &WriterAuditLogger{w: w}
}

func (l *WriterAuditLogger) Record(entry AuditEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := fmt.Fprintf(l.w, "AUDIT: %s\n", entry.Line())
	return err
}

// MultiAuditLogger records to every sink and joins their errors.
type MultiAuditLogger []AuditLogger

func (m MultiAuditLogger) Record(entry AuditEntry) error {
	var errs []error
	for _, l := range m {
		if err := l.Record(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type discardAuditLogger struct{}

func (discardAuditLogger) Record(AuditEntry) error { return nil }
