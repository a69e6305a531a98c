package cli

import (
	"encoding/json"
	"sentiment-analysis/predictor"
	"strings"

	"github.com/spf13/cobra"
)

func newPredictCmd(flags *globalFlags) *cobra.Command {
	var vectorizerPath, classifierPath string

	cmd := &cobra.Command{
		Use:   "predict [review text]",
		Short: "Classify one review with the trained model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if vectorizerPath != "" {
				cfg.VectorizerPath = vectorizerPath
			}
			if classifierPath != "" {
				cfg.ClassifierPath = classifierPath
			}

			vec, clf, err := predictor.LoadArtifacts(cfg.VectorizerPath, cfg.ClassifierPath)
			if err != nil {
				return err
			}
			p, err := predictor.New(vec, clf)
			if err != nil {
				return err
			}
			prediction, err := p.Predict(strings.Join(args, " "))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(prediction)
		},
	}
	cmd.Flags().StringVar(&vectorizerPath, "vectorizer", "", "vectorizer artifact (VECTORIZER_PATH)")
	cmd.Flags().StringVar(&classifierPath, "classifier", "", "classifier artifact (CLASSIFIER_PATH)")
	return cmd
}
