package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/solarcast/solarcast/pkg/models"
)

// PredictionRepository is the only component that touches the
// prediction_history table. Rows are append-only; nothing here updates or
// deletes.
type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Insert persists one served prediction and returns the assigned record ID.
// The write is committed before this returns.
func (r *PredictionRepository) Insert(ctx context.Context, result *models.PredictionResult) (int64, error) {
	query := `
		INSERT INTO prediction_history (created_at, city, hour, temperature, irradiance, model, prediction)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		time.Now().UTC(),
		result.City,
		result.Hour,
		result.Temperature,
		result.Irradiance,
		result.ModelUsed,
		result.PredictedEnergy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert prediction: %w", err)
	}

	return id, nil
}

// List returns the most recent records first, at most limit rows. A
// non-positive limit falls back to 100.
func (r *PredictionRepository) List(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, created_at, city, hour, temperature, irradiance, model, prediction
		FROM prediction_history
		ORDER BY id DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ExportAll returns every record in insertion order.
func (r *PredictionRepository) ExportAll(ctx context.Context) ([]models.PredictionRecord, error) {
	query := `
		SELECT id, created_at, city, hour, temperature, irradiance, model, prediction
		FROM prediction_history
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the total number of persisted predictions.
func (r *PredictionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prediction_history`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanRecords(rows *sql.Rows) ([]models.PredictionRecord, error) {
	var records []models.PredictionRecord
	for rows.Next() {
		var rec models.PredictionRecord
		err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.City, &rec.Hour, &rec.Temperature, &rec.Irradiance, &rec.Model, &rec.Prediction)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
