package sqlite

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bizscan"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ bizscan.Exporter      = (*RecordStore)(nil)
	_ bizscan.RecordService = (*RecordStore)(nil)
)

// RecordStore exports records into SQLite, one run per Export call.
type RecordStore struct {
	db *DB

	// Now returns the run timestamp. Defaults to time.Now.
	Now func() time.Time

	mu      sync.Mutex
	lastRun string
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db, Now: time.Now}
}

// hashRecord computes the xxHash of the record's JSON encoding as hex.
func hashRecord(r *bizscan.BusinessRecord) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, 8)
	h := xxhash.Sum64(data)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b), nil
}

// Export writes records as a new run inside a single transaction.
func (s *RecordStore) Export(ctx context.Context, records []*bizscan.BusinessRecord) error {
	runID := uuid.New().String()
	createdAt := s.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, record_count, created_at) VALUES (?, ?, ?)
	`, runID, len(records), createdAt); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, position, business_name, address, phone_number, rating, review_text, url, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if r == nil {
			r = &bizscan.BusinessRecord{}
		}
		hash, err := hashRecord(r)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, runID, i,
			nullString(r.BusinessName), nullString(r.Address), nullString(r.PhoneNumber),
			nullFloat(r.Rating), nullString(r.ReviewText), nullString(r.URL), hash,
		); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.mu.Lock()
	s.lastRun = runID
	s.mu.Unlock()
	return nil
}

// LastRunID returns the ID of the most recent successful Export, or "".
func (s *RecordStore) LastRunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// FindRuns returns all runs, newest first.
func (s *RecordStore) FindRuns(ctx context.Context) ([]*bizscan.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, record_count, created_at FROM runs ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*bizscan.Run
	for rows.Next() {
		var run bizscan.Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.RecordCount, &createdAt); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// FindRecords returns stored records matching the filter.
func (s *RecordStore) FindRecords(ctx context.Context, filter bizscan.RecordFilter) ([]*bizscan.StoredRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT run_id, position, business_name, address, phone_number, rating, review_text, url, content_hash
		FROM records WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY run_id, position")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stored []*bizscan.StoredRecord
	for rows.Next() {
		var sr bizscan.StoredRecord
		var rec rowRecord
		if err := rows.Scan(&sr.RunID, &sr.Position,
			&rec.name, &rec.address, &rec.phone, &rec.rating, &rec.review, &rec.url,
			&sr.ContentHash); err != nil {
			return nil, err
		}
		sr.Record = rec.record()
		stored = append(stored, &sr)
	}
	return stored, rows.Err()
}
