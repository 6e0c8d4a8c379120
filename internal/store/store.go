// Package store persists analysis results in sqlite. The scoring core
// itself is stateless; the store exists so the out-of-band LLM enrichment
// has a persisted record to append suggestion lines to.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/akozlenkov/resumatch/internal/scoring"
)

// ErrNotFound is returned when no analysis exists for the given id.
var ErrNotFound = errors.New("analysis not found")

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id                   TEXT PRIMARY KEY,
	resume_text          TEXT NOT NULL,
	job_description      TEXT NOT NULL,
	match_score          REAL NOT NULL,
	keyword_similarity   REAL NOT NULL,
	skill_match_score    REAL NOT NULL,
	experience_relevance REAL NOT NULL,
	ats_compliance       REAL NOT NULL,
	skills_found         TEXT NOT NULL,
	skills_missing       TEXT NOT NULL,
	suggestions          TEXT NOT NULL,
	predicted_role       TEXT NOT NULL,
	created_at           TIMESTAMP NOT NULL
);
`

// Record is a persisted analysis row.
type Record struct {
	ID             string
	ResumeText     string
	JobDescription string
	Result         scoring.AnalysisResult
	CreatedAt      time.Time
}

// Store wraps the sqlite database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (or creates) the sqlite database at path and applies the schema.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening analysis store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying analysis store schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAnalysis persists a completed result and returns the new record id.
func (s *Store) SaveAnalysis(ctx context.Context, resumeText, jobDescription string, result *scoring.AnalysisResult) (string, error) {
	id := uuid.NewString()

	found, err := json.Marshal(result.SkillsFound)
	if err != nil {
		return "", fmt.Errorf("encoding skills found: %w", err)
	}
	missing, err := json.Marshal(result.SkillsMissing)
	if err != nil {
		return "", fmt.Errorf("encoding skills missing: %w", err)
	}
	suggestions, err := json.Marshal(result.Suggestions)
	if err != nil {
		return "", fmt.Errorf("encoding suggestions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (
			id, resume_text, job_description,
			match_score, keyword_similarity, skill_match_score,
			experience_relevance, ats_compliance,
			skills_found, skills_missing, suggestions, predicted_role,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, resumeText, jobDescription,
		result.MatchScore, result.KeywordSimilarity, result.SkillMatchScore,
		result.ExperienceRelevance, result.ATSCompliance,
		string(found), string(missing), string(suggestions), result.PredictedRole,
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting analysis: %w", err)
	}

	s.logger.Debug("analysis saved", zap.String("analysis_id", id))

	return id, nil
}

// GetAnalysis loads one persisted record by id.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, resume_text, job_description,
			match_score, keyword_similarity, skill_match_score,
			experience_relevance, ats_compliance,
			skills_found, skills_missing, suggestions, predicted_role,
			created_at
		FROM analyses WHERE id = ?`, id)

	var (
		rec                        Record
		found, missing, suggestion string
	)
	err := row.Scan(
		&rec.ID, &rec.ResumeText, &rec.JobDescription,
		&rec.Result.MatchScore, &rec.Result.KeywordSimilarity, &rec.Result.SkillMatchScore,
		&rec.Result.ExperienceRelevance, &rec.Result.ATSCompliance,
		&found, &missing, &suggestion, &rec.Result.PredictedRole,
		&rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading analysis %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(found), &rec.Result.SkillsFound); err != nil {
		return nil, fmt.Errorf("decoding skills found: %w", err)
	}
	if err := json.Unmarshal([]byte(missing), &rec.Result.SkillsMissing); err != nil {
		return nil, fmt.Errorf("decoding skills missing: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestion), &rec.Result.Suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestions: %w", err)
	}

	return &rec, nil
}

// AppendSuggestions adds lines to the persisted suggestion list, skipping
// any line already present by exact content. The read-compare-update runs in
// one transaction, so a rerun of the same enrichment is a no-op. Returns the
// number of lines actually appended.
func (s *Store) AppendSuggestions(ctx context.Context, id string, lines []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting append transaction: %w", err)
	}
	defer tx.Rollback()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT suggestions FROM analyses WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("loading suggestions for %s: %w", id, err)
	}

	var existing []string
	if err := json.Unmarshal([]byte(raw), &existing); err != nil {
		return 0, fmt.Errorf("decoding suggestions for %s: %w", id, err)
	}

	present := make(map[string]struct{}, len(existing))
	for _, line := range existing {
		present[line] = struct{}{}
	}

	appended := 0
	for _, line := range lines {
		if _, ok := present[line]; ok {
			continue
		}
		present[line] = struct{}{}
		existing = append(existing, line)
		appended++
	}

	if appended == 0 {
		return 0, nil
	}

	updated, err := json.Marshal(existing)
	if err != nil {
		return 0, fmt.Errorf("encoding suggestions for %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE analyses SET suggestions = ? WHERE id = ?`, string(updated), id); err != nil {
		return 0, fmt.Errorf("updating suggestions for %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing suggestion append: %w", err)
	}

	return appended, nil
}
