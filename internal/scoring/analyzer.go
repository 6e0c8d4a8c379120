package scoring

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/akozlenkov/resumatch/internal/skills"
	"github.com/akozlenkov/resumatch/internal/textnorm"
)

// RolePredictor predicts a role label for resume text. The inference
// implementation lives in internal/ml; tests substitute a stub.
type RolePredictor interface {
	PredictRole(text string) string
}

// Analyzer wires the scorers together. Analyze is stateless per call and
// safe for concurrent use.
type Analyzer struct {
	norm      *textnorm.Normalizer
	extractor *skills.Extractor
	predictor RolePredictor
	logger    *zap.Logger
}

// NewAnalyzer builds an Analyzer from its collaborators.
func NewAnalyzer(norm *textnorm.Normalizer, extractor *skills.Extractor, predictor RolePredictor, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{norm: norm, extractor: extractor, predictor: predictor, logger: logger}
}

// Analyze scores the resume against the job description and returns the
// complete result record. Empty inputs degrade to the per-dimension
// defaults; the method never fails on malformed text.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (*AnalysisResult, error) {
	var (
		keywordSimilarity float64
		resumeSkills      []string
		jdSkills          []string
		experience        float64
		ats               float64
	)

	// The four dimensions are independent; run them in parallel.
	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		keywordSimilarity = KeywordSimilarity(a.norm, resumeText, jobDescription)
		return nil
	})
	group.Go(func() error {
		resumeSkills = a.extractor.Extract(resumeText)
		jdSkills = a.extractor.Extract(jobDescription)
		return nil
	})
	group.Go(func() error {
		experience = ExperienceRelevance(resumeText, jobDescription)
		return nil
	})
	group.Go(func() error {
		ats = ATSCompliance(resumeText)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Without a job-description skill set the skill gap is unknowable, so
	// the dimension scores 0 and no skills are reported missing. This is a
	// different policy from the experience scorer's moderate default, on
	// purpose: each dimension defines its own degraded behavior.
	skillMatch := 0.0
	missing := []string{}
	if len(jdSkills) > 0 {
		skillMatch = float64(skills.Overlap(resumeSkills, jdSkills)) / float64(len(jdSkills)) * 100
		missing = skills.Missing(resumeSkills, jdSkills)
	}

	matchScore := keywordSimilarity*weightKeywordSimilarity +
		skillMatch*weightSkillMatch +
		experience*weightExperienceRelevance +
		ats*weightATSCompliance

	predictedRole := a.predictor.PredictRole(resumeText)
	suggestions := GenerateSuggestions(missing, ats, experience)

	result := &AnalysisResult{
		MatchScore:          round2(matchScore),
		KeywordSimilarity:   round2(keywordSimilarity),
		SkillMatchScore:     round2(skillMatch),
		ExperienceRelevance: round2(experience),
		ATSCompliance:       round2(ats),
		SkillsFound:         resumeSkills,
		SkillsMissing:       missing,
		Suggestions:         suggestions,
		PredictedRole:       predictedRole,
	}

	a.logger.Debug("analysis complete",
		zap.Float64("match_score", result.MatchScore),
		zap.Int("skills_found", len(result.SkillsFound)),
		zap.Int("skills_missing", len(result.SkillsMissing)),
		zap.String("predicted_role", result.PredictedRole),
	)

	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
