package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/jsphweid/eartrainer/constants"
	"github.com/jsphweid/eartrainer/logger"
	"github.com/jsphweid/eartrainer/trainer"
	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "eartrainer",
	Short: "Ear training quiz",
	Long:  `Plays intervals, chords, tempos and rhythms and asks you to name what you heard.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output")
}

func Execute() {
	defer sentry.Flush(constants.SentryFlushTimeout)
	cobra.CheckErr(rootCmd.Execute())
}

func setup() {
	logger.SetDebug(debug)
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment variables", nil)
	}

	dsn := constants.GetSentryDSN()
	if dsn == "" {
		return
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: constants.GetEnvironment(),
		Debug:       !constants.IsProduction() && debug,
	})
	if err != nil {
		logger.Warn("failed to initialize Sentry", logger.Fields{"error": err.Error()})
	}
}

// newTrainer loads the content tables and seeds a trainer. A seed of 0
// means "use the clock".
func newTrainer(seed int64) (*trainer.Trainer, error) {
	tables, err := trainer.LoadTables(constants.GetTablesPath())
	if err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return trainer.New(tables, rand.New(rand.NewSource(seed))), nil
}
