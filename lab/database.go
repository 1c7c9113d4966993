package lab

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Database holds the lab roster and the audit trail in SQLite.
// Checkout state is never written back: borrow counts and availability live in
// memory for the lifetime of a service.
type Database struct {
	db *sql.DB

	addStudentStmt *sql.Stmt
	addAssetStmt   *sql.Stmt
	addAuditStmt   *sql.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	for _, stmt := range []*sql.Stmt{d.addStudentStmt, d.addAssetStmt, d.addAuditStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS students (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            uid TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL,
            fine_amount INTEGER NOT NULL DEFAULT 0 CHECK (fine_amount >= 0),
            borrow_count INTEGER NOT NULL DEFAULT 0 CHECK (borrow_count >= 0)
        );`,
		`CREATE TABLE IF NOT EXISTS assets (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            asset_id TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL,
            available BOOLEAN NOT NULL DEFAULT 1,
            security_level INTEGER NOT NULL CHECK (security_level BETWEEN 1 AND 3)
        );`,
		`CREATE TABLE IF NOT EXISTS audit_entries (
            attempt_id TEXT PRIMARY KEY,
            uid TEXT NOT NULL,
            asset_id TEXT NOT NULL,
            outcome TEXT NOT NULL,
            recorded_at DATETIME NOT NULL
        );`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.addStudentStmt, err = d.db.Prepare(`INSERT INTO students(uid,name,fine_amount,borrow_count) VALUES(?,?,?,?)`); err != nil {
		return err
	}
	if d.addAssetStmt, err = d.db.Prepare(`INSERT INTO assets(asset_id,name,available,security_level) VALUES(?,?,?,?)`); err != nil {
		return err
	}
	if d.addAuditStmt, err = d.db.Prepare(`INSERT INTO audit_entries(attempt_id,uid,asset_id,outcome,recorded_at) VALUES(?,?,?,?,?)`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Roster
// ---------------------------------------------------------------------------

func (d *Database) AddStudent(r StudentRecord) error {
	_, err := d.addStudentStmt.Exec(r.UID, r.Name, r.Fine, r.Borrows)
	return friendlyConstraintError(err, "student", r.UID)
}

func (d *Database) AddAsset(r AssetRecord) error {
	_, err := d.addAssetStmt.Exec(r.ID, r.Name, r.Available, r.Security)
	return friendlyConstraintError(err, "asset", r.ID)
}

// ImportRoster inserts every student and asset of rf in a single transaction.
func (d *Database) ImportRoster(rf RosterFile) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range rf.Students {
		if _, err := tx.Stmt(d.addStudentStmt).Exec(s.UID, s.Name, s.Fine, s.Borrows); err != nil {
			return friendlyConstraintError(err, "student", s.UID)
		}
	}
	for _, a := range rf.Assets {
		if _, err := tx.Stmt(d.addAssetStmt).Exec(a.ID, a.Name, a.Available, a.Security); err != nil {
			return friendlyConstraintError(err, "asset", a.ID)
		}
	}
	return tx.Commit()
}

func friendlyConstraintError(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s %s already exists", entity, id)
	}
	if strings.Contains(err.Error(), "CHECK constraint failed") {
		return fmt.Errorf("%s %s has out-of-range values", entity, id)
	}
	return err
}

// GetAllStudents returns students in import order.
func (d *Database) GetAllStudents() ([]StudentRecord, error) {
	rows, err := d.db.Query(`SELECT uid,name,fine_amount,borrow_count FROM students ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []StudentRecord
	for rows.Next() {
		var s StudentRecord
		if err := rows.Scan(&s.UID, &s.Name, &s.Fine, &s.Borrows); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetAllAssets returns assets in import order.
func (d *Database) GetAllAssets() ([]AssetRecord, error) {
	rows, err := d.db.Query(`SELECT asset_id,name,available,security_level FROM assets ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []AssetRecord
	for rows.Next() {
		var a AssetRecord
		if err := rows.Scan(&a.ID, &a.Name, &a.Available, &a.Security); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// LoadRoster reads the stored roster into fresh in-memory entities.
func (d *Database) LoadRoster() (*Roster, *AssetStore, error) {
	students, err := d.GetAllStudents()
	if err != nil {
		return nil, nil, fmt.Errorf("load students: %w", err)
	}
	assets, err := d.GetAllAssets()
	if err != nil {
		return nil, nil, fmt.Errorf("load assets: %w", err)
	}
	roster, store := RosterFile{Students: students, Assets: assets}.Build()
	return roster, store, nil
}

// ---------------------------------------------------------------------------
// Audit trail
// ---------------------------------------------------------------------------

// Record appends entry to the audit trail. It satisfies AuditLogger.
func (d *Database) Record(entry AuditEntry) error {
	_, err := d.addAuditStmt.Exec(entry.AttemptID.String(), entry.UID, entry.AssetID, entry.Outcome, entry.At.UTC())
	if err != nil {
		return fmt.Errorf("record audit: %w", err)
	}
	return nil
}

// GetAuditEntries returns the audit trail oldest first.
func (d *Database) GetAuditEntries() ([]AuditEntry, error) {
	rows, err := d.db.Query(`SELECT attempt_id,uid,asset_id,outcome,recorded_at FROM audit_entries ORDER BY recorded_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			e  AuditEntry
			id string
			at time.Time
		)
		if err := rows.Scan(&id, &e.UID, &e.AssetID, &e.Outcome, &at); err != nil {
			return nil, err
		}
		if e.AttemptID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("audit entry %q: %w", id, err)
		}
		e.At = at
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
