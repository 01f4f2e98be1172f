package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/config"
	"github.com/nikogura/reviewrank/pkg/scorer"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config, question definitions and weight table",
	Long: `Creates ~/.reviewrank/config.json (or the --config path) together with
questions.yaml and weights.yaml next to it, holding the built-in defaults.

Point catalog_location at a catalog JSON file or URL before running other commands.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.InitConfig(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to create config")
		return err
	}

	err = catalog.SaveQuestions(cfg.QuestionsPath, catalog.DefaultQuestions())
	if err != nil {
		return err
	}

	err = scorer.SaveWeights(cfg.WeightsPath, scorer.DefaultWeightTable())
	if err != nil {
		return err
	}

	fmt.Printf("Wrote questions to %s\n", cfg.QuestionsPath)
	fmt.Printf("Wrote weights to %s\n", cfg.WeightsPath)
	fmt.Printf("Set catalog_location (currently %s) before running recommend\n", cfg.CatalogLocation)

	return err
}
