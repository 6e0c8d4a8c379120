// Package scoring computes the resume-to-job match: keyword similarity,
// skill overlap, experience relevance, ATS compliance, their weighted
// fusion, and the rule-based suggestions.
package scoring

// Fusion weights. Each component score is already in [0,100], so the fused
// match score stays in [0,100].
const (
	weightKeywordSimilarity   = 0.40
	weightSkillMatch          = 0.30
	weightExperienceRelevance = 0.20
	weightATSCompliance       = 0.10
)

// AnalysisResult is the immutable record produced per scoring call. It is
// built atomically once every synchronous sub-score is available; the only
// later mutation happens in the store, which may append AI-sourced
// suggestion lines to the persisted copy.
type AnalysisResult struct {
	MatchScore          float64  `json:"match_score"`
	KeywordSimilarity   float64  `json:"keyword_similarity"`
	SkillMatchScore     float64  `json:"skill_match_score"`
	ExperienceRelevance float64  `json:"experience_relevance"`
	ATSCompliance       float64  `json:"ats_compliance"`
	SkillsFound         []string `json:"skills_found"`
	SkillsMissing       []string `json:"skills_missing"`
	Suggestions         []string `json:"suggestions"`
	PredictedRole       string   `json:"predicted_role"`
}
