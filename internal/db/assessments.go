package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/muzamilsyed/aynstyn/internal/types"
)

// SaveAssessment persists a fully-assembled result and returns its ID.
// Topic collections are stored as JSONB alongside the scalar columns.
func (db *DB) SaveAssessment(ctx context.Context, result *types.AssessmentResult) (uuid.UUID, error) {
	covered, err := json.Marshal(result.CoveredTopics)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal covered topics: %w", err)
	}
	missing, err := json.Marshal(result.MissingTopics)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal missing topics: %w", err)
	}
	coverage, err := json.Marshal(result.TopicCoverage)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal topic coverage: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO assessments (subject, language, score, covered_topics, missing_topics, topic_coverage, feedback, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		result.Subject, result.Language, result.Score, covered, missing, coverage, result.Feedback, result.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save assessment: %w", err)
	}
	return id, nil
}

// GetAssessment retrieves a stored result by ID. Returns (nil, nil) when the
// ID is unknown.
func (db *DB) GetAssessment(ctx context.Context, id uuid.UUID) (*types.AssessmentResult, error) {
	var (
		result   types.AssessmentResult
		covered  []byte
		missing  []byte
		coverage []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, subject, language, score, covered_topics, missing_topics, topic_coverage, feedback, created_at
		 FROM assessments WHERE id = $1`,
		id,
	).Scan(&result.ID, &result.Subject, &result.Language, &result.Score, &covered, &missing, &coverage, &result.Feedback, &result.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment %s: %w", id, err)
	}

	if err := json.Unmarshal(covered, &result.CoveredTopics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal covered topics: %w", err)
	}
	if err := json.Unmarshal(missing, &result.MissingTopics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal missing topics: %w", err)
	}
	if err := json.Unmarshal(coverage, &result.TopicCoverage); err != nil {
		return nil, fmt.Errorf("failed to unmarshal topic coverage: %w", err)
	}
	return &result, nil
}

// ListAssessments returns the most recent results, newest first. An empty
// subject lists across all subjects.
func (db *DB) ListAssessments(ctx context.Context, subject string, limit int) ([]types.AssessmentResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, subject, language, score, feedback, created_at
		 FROM assessments WHERE ($1 = '' OR subject = $1)
		 ORDER BY created_at DESC LIMIT $2`,
		subject, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var results []types.AssessmentResult
	for rows.Next() {
		var r types.AssessmentResult
		if err := rows.Scan(&r.ID, &r.Subject, &r.Language, &r.Score, &r.Feedback, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
