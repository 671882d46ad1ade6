package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/goldcard"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ goldcard.RecordWriter = (*RecordService)(nil)

// StoredRecord is a record as persisted in the index.
type StoredRecord struct {
	ID          string
	ContentHash string
	HarvestedAt time.Time
	Record      *goldcard.Record
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Goldstamp *string

	Offset int
	Limit  int
}

// RecordService indexes harvested records in SQLite. Every write adds a
// new row; repeated harvests of a goldstamp are kept side by side.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashRecord computes the xxHash of the record's TSV form (labels line
// and values line) and returns it as a hex string.
func hashRecord(record *goldcard.Record) string {
	content := strings.Join(record.Labels(), "\t") + "\n" + strings.Join(record.Values(), "\t")
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// WriteRecord stores the record and its fields in one transaction.
func (s *RecordService) WriteRecord(ctx context.Context, record *goldcard.Record) error {
	if record.Goldstamp == "" {
		return goldcard.Errorf(goldcard.EINVALID, "record goldstamp required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO records (id, goldstamp, content_hash, harvested_at)
		VALUES (?, ?, ?, ?)
	`, id, record.Goldstamp, hashRecord(record), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting record %s: %w", record.Goldstamp, err)
	}

	values := record.Values()
	for i, label := range record.Labels() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO fields (record_id, position, label, value)
			VALUES (?, ?, ?, ?)
		`, id, i, label, values[i]); err != nil {
			return fmt.Errorf("inserting field %q of %s: %w", label, record.Goldstamp, err)
		}
	}

	return tx.Commit()
}

// FindRecords returns stored records matching the filter in write order.
func (s *RecordService) FindRecords(ctx context.Context, filter RecordFilter) ([]*StoredRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, goldstamp, content_hash, harvested_at FROM records WHERE 1=1")
	if filter.Goldstamp != nil {
		query.WriteString(" AND goldstamp = ?")
		args = append(args, *filter.Goldstamp)
	}
	query.WriteString(" ORDER BY rowid ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stored []*StoredRecord
	for rows.Next() {
		var sr StoredRecord
		var goldstamp, harvestedAt string
		if err := rows.Scan(&sr.ID, &goldstamp, &sr.ContentHash, &harvestedAt); err != nil {
			return nil, err
		}
		if sr.HarvestedAt, err = parseRFC3339(harvestedAt, "harvested_at"); err != nil {
			return nil, err
		}
		sr.Record = goldcard.NewRecord(goldstamp)
		stored = append(stored, &sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, sr := range stored {
		if err := s.loadFields(ctx, sr); err != nil {
			return nil, err
		}
	}

	return stored, nil
}

func (s *RecordService) loadFields(ctx context.Context, sr *StoredRecord) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT label, value FROM fields
		WHERE record_id = ?
		ORDER BY position ASC
	`, sr.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var label, value string
		if err := rows.Scan(&label, &value); err != nil {
			return err
		}
		sr.Record.Set(label, value)
	}
	return rows.Err()
}
