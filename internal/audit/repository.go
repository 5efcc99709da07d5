// Package audit appends immutable log entries for sensitive mutations.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Severity levels for audit entries.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
)

// Entry is one immutable audit record.
type Entry struct {
	ID           uuid.UUID
	BusinessID   uuid.UUID
	ActorID      *uuid.UUID
	Action       string
	Level        string
	ResourceType string
	Metadata     map[string]any
	CreatedAt    time.Time
}

// Repository persists audit entries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new audit repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record appends an entry to the audit log.
func (r *Repository) Record(ctx context.Context, businessID uuid.UUID, actorID *uuid.UUID, action, level, resourceType string, metadata map[string]any) error {
	payload, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_logs (business_id, actor_id, action, level, resource_type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, businessID, actorID, action, level, resourceType, payload)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByBusiness returns the most recent audit entries for the business.
func (r *Repository) ListByBusiness(ctx context.Context, businessID uuid.UUID, limit int) ([]Entry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, business_id, actor_id, action, level, resource_type, metadata, created_at
		FROM audit_logs
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		var payload []byte
		if err := rows.Scan(&entry.ID, &entry.BusinessID, &entry.ActorID,
			&entry.Action, &entry.Level, &entry.ResourceType, &payload, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("decode audit metadata: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
