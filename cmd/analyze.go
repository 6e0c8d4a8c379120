package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/akozlenkov/resumatch/internal/enrich"
	"github.com/akozlenkov/resumatch/internal/logger"
	"github.com/akozlenkov/resumatch/internal/ml"
	"github.com/akozlenkov/resumatch/internal/scoring"
	"github.com/akozlenkov/resumatch/internal/secrets"
	"github.com/akozlenkov/resumatch/internal/skills"
	"github.com/akozlenkov/resumatch/internal/store"
	"github.com/akozlenkov/resumatch/internal/textnorm"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "path to the extracted resume text file")
	analyzeCmd.Flags().StringP("job", "b", "", "path to the job description text file")
	analyzeCmd.Flags().String("artifact-dir", "", "directory with the trained role classifier artifacts")

	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("job")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}

	resumeText := readTextFile(cmd, zl, "resume")
	jobDescription := readTextFile(cmd, zl, "job")

	vocab, err := loadVocabulary(config)
	if err != nil {
		zl.Fatal("loading skills vocabulary", zap.Error(err))
	}

	norm, err := textnorm.New()
	if err != nil {
		zl.Fatal("building text normalizer", zap.Error(err))
	}

	artifactDir := cmd.Flag("artifact-dir").Value.String()
	if artifactDir == "" && config.Model != nil {
		artifactDir = config.Model.ArtifactDir
	}

	predictor := ml.NewPredictor(ml.NewLoader(artifactDir), zl)
	analyzer := scoring.NewAnalyzer(norm, skills.NewExtractor(vocab), predictor, zl)

	result, err := analyzer.Analyze(ctx, resumeText, jobDescription)
	if err != nil {
		zl.Fatal("running analysis", zap.Error(err))
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		zl.Fatal("encoding result", zap.Error(err))
	}
	fmt.Println(string(pretty))

	// Persistence and enrichment happen after the primary result is out.
	if config.Store == nil || config.Store.Path == "" {
		return
	}

	db, err := store.Open(config.Store.Path, zl)
	if err != nil {
		zl.Fatal("opening analysis store", zap.Error(err))
	}
	defer db.Close()

	analysisID, err := db.SaveAnalysis(ctx, resumeText, jobDescription, result)
	if err != nil {
		zl.Fatal("saving analysis", zap.Error(err))
	}

	zl.Info("analysis saved", zap.String("analysis_id", analysisID))

	enrichAnalysis(ctx, config.AI, db, zl, analysisID, enrich.Input{
		ResumeText:      resumeText,
		JobDescription:  jobDescription,
		MissingSkills:   result.SkillsMissing,
		ATSScore:        result.ATSCompliance,
		ExperienceScore: result.ExperienceRelevance,
		MatchScore:      result.MatchScore,
	})
}

// enrichAnalysis schedules the optional LLM enrichment. A missing or
// unusable credential disables it silently.
func enrichAnalysis(ctx context.Context, cfg *AIConfig, db *store.Store, zl *zap.Logger, analysisID string, input enrich.Input) {
	if cfg == nil || !cfg.Enabled {
		return
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		zl.Info("enrichment disabled", zap.Error(err))
		return
	}

	generator, err := enrich.NewGenerator(ctx, apiKey, cfg.Model, cfg.BaseURL)
	if err != nil {
		zl.Warn("skipping enrichment", zap.Error(err))
		return
	}

	enricher := enrich.New(generator, db, time.Duration(cfg.TimeoutSeconds)*time.Second, cfg.MaxLogLength, zl)

	pool := enrich.NewPool(ctx, enricher, 1, 1, zl)
	pool.Submit(analysisID, input)
	pool.Close()
}

func loadVocabulary(config *Config) (*skills.Vocabulary, error) {
	if config != nil && strings.TrimSpace(config.SkillsFile) != "" {
		return skills.Load(config.SkillsFile)
	}
	return skills.Default()
}

func readTextFile(cmd *cobra.Command, zl *zap.Logger, flag string) string {
	path := cmd.Flag(flag).Value.String()
	data, err := os.ReadFile(path)
	if err != nil {
		zl.Fatal("reading input file", zap.String("flag", flag), zap.Error(err))
	}
	return string(data)
}
