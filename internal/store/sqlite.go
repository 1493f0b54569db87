package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yourorg/sdkdoc/pkg/types"
)

var ErrNotFound = errors.New("render not found")

type SQLiteStore struct {
	db *sql.DB
}

// connParams are applied by the driver to every pooled connection.
// Transactions begin IMMEDIATE so concurrent writers wait on busy_timeout
// instead of failing when upgrading a read lock.
const connParams = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"

func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", withConnParams(dsn))
	if err != nil {
		return nil, err
	}
	// One connection serializes the read-max-then-insert of SaveRender.
	db.SetMaxOpenConns(1)
	s := &SQLiteStore{db: db}
	if err := s.Init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func withConnParams(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + connParams
	}
	return dsn + "?" + connParams
}

func (s *SQLiteStore) Init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS renders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			service TEXT NOT NULL,
			operation TEXT NOT NULL,
			version INTEGER NOT NULL,
			body TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			UNIQUE(service, operation, version)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_renders_service ON renders(service);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRender stores body as the next version of service/operation.
func (s *SQLiteStore) SaveRender(service, operation string, body []byte) (*types.Render, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var maxVersion int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM renders WHERE service=? AND operation=?`, service, operation).Scan(&maxVersion); err != nil {
		return nil, err
	}
	r := &types.Render{
		Service:   service,
		Operation: operation,
		Version:   maxVersion + 1,
		Body:      string(body),
		CreatedAt: time.Now().UTC(),
	}
	res, err := tx.Exec(`INSERT INTO renders(service,operation,version,body,created_at) VALUES(?,?,?,?,?)`,
		r.Service, r.Operation, r.Version, r.Body, r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return r, tx.Commit()
}

func (s *SQLiteStore) GetRender(service, operation string, version int) (*types.Render, error) {
	var row *sql.Row
	if version <= 0 {
		row = s.db.QueryRow(`SELECT id,service,operation,version,body,created_at FROM renders WHERE service=? AND operation=? ORDER BY version DESC LIMIT 1`, service, operation)
	} else {
		row = s.db.QueryRow(`SELECT id,service,operation,version,body,created_at FROM renders WHERE service=? AND operation=? AND version=?`, service, operation, version)
	}
	var r types.Render
	if err := row.Scan(&r.ID, &r.Service, &r.Operation, &r.Version, &r.Body, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s.%s version %d", ErrNotFound, service, operation, version)
		}
		return nil, err
	}
	return &r, nil
}

// ListRenders returns render headers without bodies, newest first. An empty
// service lists every service.
func (s *SQLiteStore) ListRenders(service string) ([]types.Render, error) {
	query := `SELECT id,service,operation,version,created_at FROM renders`
	var args []any
	if service != "" {
		query += ` WHERE service=?`
		args = append(args, service)
	}
	query += ` ORDER BY service ASC, operation ASC, version DESC`
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]types.Render, 0)
	for rows.Next() {
		var r types.Render
		if err := rows.Scan(&r.ID, &r.Service, &r.Operation, &r.Version, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteService(service string) error {
	_, err := s.db.Exec(`DELETE FROM renders WHERE service=?`, service)
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return errors.New("store is nil")
	}
	return s.db.Close()
}
