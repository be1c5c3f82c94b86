package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	adapter "github.com/SpynitterMina/DayWiseV2/internal/adapter/repository"
	"github.com/SpynitterMina/DayWiseV2/internal/infrastructure/config"
	"github.com/SpynitterMina/DayWiseV2/internal/infrastructure/database"
	"github.com/SpynitterMina/DayWiseV2/internal/infrastructure/logging"
	"github.com/SpynitterMina/DayWiseV2/internal/repository"
	"github.com/SpynitterMina/DayWiseV2/internal/schedule"
	"github.com/SpynitterMina/DayWiseV2/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "daywise",
	Short: "Local study companion: spaced review, achievements and rewards",
	Long: `daywise keeps a local SQLite database of review items scheduled by a
spaced repetition policy, evaluates an achievement catalogue over your task
and journal history, and manages a small rewards store funded by the score
those achievements earn.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// app bundles everything a subcommand needs. Each invocation opens its own
// database handle and closes it when done.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	db      *sql.DB
	cleanup func()

	reviews      usecase.ReviewItemUsecase
	achievements usecase.AchievementUsecase
	rewards      usecase.RewardUsecase
	scores       repository.ScoreStore
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	db, cleanup, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	policy := schedule.DefaultParams()
	policy.GraduateAfterReviews = cfg.Review.GraduateAfterReviews

	return &app{
		cfg:     cfg,
		log:     logger,
		db:      db,
		cleanup: cleanup,
		reviews: usecase.NewReviewItemUsecase(adapter.NewReviewItemRepository(db), policy),
		achievements: usecase.NewAchievementUsecase(
			adapter.NewSnapshotReader(db, logger),
			adapter.NewAchievementRepository(db),
		),
		rewards: usecase.NewRewardUsecase(adapter.NewRewardRepository(db)),
		scores:  adapter.NewScoreStore(db),
	}, nil
}

func (a *app) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
