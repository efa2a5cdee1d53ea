package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"impact_engine/pkg/core/impact"
)

// ImpactRepo stores comprehensive analyses keyed by opportunity.
type ImpactRepo struct{}

// NewImpactRepo creates a new repository instance.
func NewImpactRepo() *ImpactRepo {
	return &ImpactRepo{}
}

// Save upserts an analysis on its opportunity ID.
// Schema assumption (managed by the host's migrations):
//
//	CREATE TABLE IF NOT EXISTS impact_analysis (
//	  opportunity_id UUID PRIMARY KEY,
//	  analysis_id    UUID,
//	  analysis_json  JSONB,
//	  updated_at     TIMESTAMPTZ
//	);
func (r *ImpactRepo) Save(ctx context.Context, analysis *impact.ComprehensiveImpactAnalysis) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	query := `
		INSERT INTO impact_analysis (opportunity_id, analysis_id, analysis_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (opportunity_id)
		DO UPDATE SET
			analysis_id = EXCLUDED.analysis_id,
			analysis_json = EXCLUDED.analysis_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, analysis.OpportunityID, analysis.AnalysisID, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// Load retrieves the stored analysis for an opportunity.
func (r *ImpactRepo) Load(ctx context.Context, opportunityID uuid.UUID) (*impact.ComprehensiveImpactAnalysis, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT analysis_json FROM impact_analysis WHERE opportunity_id = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, opportunityID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no analysis found for opportunity %s", opportunityID)
		}
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}

	var analysis impact.ComprehensiveImpactAnalysis
	if err := json.Unmarshal(jsonData, &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &analysis, nil
}
