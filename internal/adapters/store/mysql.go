package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/core"
)

// MySQLStore is a MySQL implementation of the EmailRepository interface.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL using dsn and ensures the schema exists.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS emails (
			id BIGINT PRIMARY KEY AUTO_INCREMENT,
			sender VARCHAR(512),
			subject VARCHAR(998),
			date VARCHAR(64),
			body MEDIUMTEXT,
			priority VARCHAR(16),
			intent VARCHAR(16),
			requires_followup VARCHAR(3),
			feedback TEXT,
			processed_at VARCHAR(64)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create emails table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Save stores a record and assigns its ID.
func (s *MySQLStore) Save(ctx context.Context, record *core.EmailRecord) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO emails (sender, subject, date, body, priority, intent, requires_followup, feedback, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, '', ?)
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
func (s *MySQLStore) List(ctx context.Context) ([]*core.EmailRecord, error) {
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
func (s *MySQLStore) UpdateFeedback(ctx context.Context, id int64, feedback string) error {
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
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
