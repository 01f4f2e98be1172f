package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nikogura/reviewrank/pkg/catalog"
	"github.com/nikogura/reviewrank/pkg/config"
	"github.com/nikogura/reviewrank/pkg/logging"
	"github.com/nikogura/reviewrank/pkg/scorer"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "reviewrank",
	Short: "Score product reviews and recommend products",
	Long: `reviewrank normalizes third-party review scores into one 0-100 rating and
filters a product catalog against shopper preferences.

Products that satisfy every preference are exact matches. When none do, products
that missed only non-essential preferences are offered as close matches, each
listing what it missed.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.reviewrank/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// environment is everything a command needs after loading configuration.
type environment struct {
	cfg       config.Config
	logger    zerolog.Logger
	questions []catalog.Question
	weights   scorer.WeightTable
}

func loadEnvironment() (env environment, err error) {
	env.cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return env, err
	}

	level := env.cfg.Logging.Level
	if getVerbose() {
		level = zerolog.DebugLevel.String()
	}
	env.logger = logging.New(logging.Config{Level: level, Format: env.cfg.Logging.Format})

	env.questions = catalog.DefaultQuestions()
	if env.cfg.QuestionsPath != "" {
		env.questions, err = catalog.LoadQuestions(env.cfg.QuestionsPath)
		if err != nil {
			err = errors.Wrap(err, "failed to load questions")
			return env, err
		}
	}

	env.weights = scorer.DefaultWeightTable()
	if env.cfg.WeightsPath != "" {
		env.weights, err = scorer.LoadWeights(env.cfg.WeightsPath)
		if err != nil {
			err = errors.Wrap(err, "failed to load weights")
			return env, err
		}
	}

	env.logger.Debug().
		Str("catalog", env.cfg.CatalogLocation).
		Int("questions", len(env.questions)).
		Msg("configuration loaded")

	return env, err
}
