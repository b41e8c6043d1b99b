package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/core"
)

// SQLiteStore is a SQLite implementation of the EmailRepository interface.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (or creates) the SQLite database at dbPath.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS emails (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sender TEXT,
			subject TEXT,
			date TEXT,
			body TEXT,
			priority TEXT,
			intent TEXT,
			requires_followup TEXT,
			feedback TEXT DEFAULT '',
			processed_at TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create emails table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save stores a record and assigns its ID.
func (s *SQLiteStore) Save(ctx context.Context, record *core.EmailRecord) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO emails (sender, subject, date, body, priority, intent, requires_followup, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.Sender,
		record.Subject,
		record.Date.Format(time.RFC3339),
		record.Body,
		string(record.Priority),
		string(record.Intent),
		followupValue(record),
		record.ProcessedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert email record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted record id: %w", err)
	}
	record.ID = id
	return nil
}

// List returns all stored records ordered by ID.
func (s *SQLiteStore) List(ctx context.Context) ([]*core.EmailRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender, subject, date, body, priority, intent, requires_followup, feedback, processed_at
		FROM emails
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query email records: %w", err)
	}
	defer rows.Close()

	var records []*core.EmailRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate email records: %w", err)
	}
	return records, nil
}

// UpdateFeedback sets the feedback field of an existing record.
func (s *SQLiteStore) UpdateFeedback(ctx context.Context, id int64, feedback string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE emails SET feedback = ? WHERE id = ?
	`, feedback, id)
	if err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanRecord reads one row, parsing stored timestamps and the
// requires_followup yes/no value.
func scanRecord(rows *sql.Rows) (*core.EmailRecord, error) {
	var record core.EmailRecord
	var priority, intent, followup, date, processedAt string

	err := rows.Scan(
		&record.ID,
		&record.Sender,
		&record.Subject,
		&date,
		&record.Body,
		&priority,
		&intent,
		&followup,
		&record.Feedback,
		&processedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan email record: %w", err)
	}

	record.Priority = core.Priority(priority)
	record.Intent = core.Intent(intent)
	record.RequiresFollowup = followup == "yes"
	if parsed, err := time.Parse(time.RFC3339, date); err == nil {
		record.Date = parsed
	}
	if parsed, err := time.Parse(time.RFC3339, processedAt); err == nil {
		record.ProcessedAt = parsed
	}
	return &record, nil
}
