package cmd

import (
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/akozlenkov/resumatch/internal/logger"
	"github.com/akozlenkov/resumatch/internal/ml"
	"github.com/akozlenkov/resumatch/internal/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the role classifier and write the artifact triple",
	Run: func(cmd *cobra.Command, _ []string) {
		train(cmd)
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringP("input", "i", "", "path to the training CSV with text,role columns")
	trainCmd.Flags().StringP("artifact-dir", "a", "", "directory where trained artifacts will be stored")
	trainCmd.Flags().BoolP("yes", "y", false, "overwrite existing artifacts without asking")

	_ = trainCmd.MarkFlagRequired("input")
	_ = trainCmd.MarkFlagRequired("artifact-dir")
}

func train(cmd *cobra.Command) {
	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	input := cmd.Flag("input").Value.String()
	artifactDir := cmd.Flag("artifact-dir").Value.String()

	if ml.ArtifactsPresent(artifactDir) && cmd.Flag("yes").Value.String() != "true" {
		prompt := promptui.Select{
			Label: "Artifacts already exist in " + artifactDir + ". Overwrite?",
			Items: []string{"Yes", "No"},
		}
		_, answer, err := prompt.Run()
		if err != nil {
			zl.Fatal("reading confirmation", zap.Error(err))
		}
		if answer != "Yes" {
			zl.Info("exiting", zap.String("reason", "overwrite declined"))
			return
		}
	}

	result, err := training.Run(training.Config{
		InputPath:   input,
		ArtifactDir: artifactDir,
	}, zl)
	if err != nil {
		zl.Fatal("training failed", zap.Error(err))
	}

	best := result.Candidates[0]
	zl.Info("training complete",
		zap.String("winner", result.Winner),
		zap.Int("rows", result.Rows),
		zap.Float64("test_macro_f1", best.Test.F1Macro),
		zap.Float64("test_accuracy", best.Test.Accuracy),
		zap.String("metrics_csv", result.MetricsCSV),
		zap.String("report", result.ReportPath),
	)
}
