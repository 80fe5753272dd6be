package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/cmd/cli/commands"
	"github.com/emberesports/crewdesk/internal/config"
	"github.com/emberesports/crewdesk/pkg/clients/gmailclient"
	"github.com/emberesports/crewdesk/pkg/clients/sheetsclient"
	"github.com/emberesports/crewdesk/pkg/db"
	"github.com/emberesports/crewdesk/pkg/postgres"
	"github.com/emberesports/crewdesk/pkg/utils/logging"
)

var (
	env     string
	app     = &commands.AppContext{}
	closeDB func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crewdesk",
		Short: "Crewdesk - staff esports match broadcasts",
		Long:  `A CLI for collecting signups, assigning observers, producers and casters, and publishing the broadcast schedule.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeDB != nil {
				closeDB()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.DefineEventsCmd(app))
	rootCmd.AddCommand(commands.ListSlotsCmd(app))
	rootCmd.AddCommand(commands.SignupCmd(app))
	rootCmd.AddCommand(commands.SignupSlotCmd(app))
	rootCmd.AddCommand(commands.WithdrawCmd(app))
	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.UnassignCmd(app))
	rootCmd.AddCommand(commands.CoverageCmd(app))
	rootCmd.AddCommand(commands.WorkloadCmd(app))
	rootCmd.AddCommand(commands.SuggestCmd(app))
	rootCmd.AddCommand(commands.ToggleScheduleCmd(app))
	rootCmd.AddCommand(commands.ViewScheduleCmd(app))
	rootCmd.AddCommand(commands.PublishScheduleCmd(app))
	rootCmd.AddCommand(commands.SetPriorityCmd(app))
	rootCmd.AddCommand(commands.ListPeopleCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config, logger, store, Google clients and the people directory
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	// Config comes first since it decides where and how verbosely to log
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(env, app.Cfg.LogDir, app.Cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Starting application", zap.String("environment", env), zap.String("storage", app.Cfg.Storage))

	app.Database, err = openStore(app.Ctx, app.Cfg, app.Logger)
	if err != nil {
		return err
	}

	if app.Cfg.NeedsGoogle() {
		if err := initGoogle(); err != nil {
			return err
		}
	}

	// A nil *sheetsclient.Client must not reach the interface as non-nil
	var source commands.PeopleSource
	if app.SheetsClient != nil {
		source = app.SheetsClient
	}
	app.Directory, err = commands.BuildDirectory(app.Cfg, source, app.Logger)
	if err != nil {
		return err
	}
	app.Logger.Debug("People directory loaded", zap.Int("people", app.Directory.Len()))

	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (db.Database, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory store; nothing will be persisted")
		return db.NewMemoryDB(), nil
	}

	logger.Info("Connecting to database")
	pg, err := postgres.NewDB(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeDB = pg.Close

	if err := pg.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database initialized successfully")

	return pg, nil
}

func initGoogle() error {
	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	app.SheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, env, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	if app.Cfg.NotifyAssignments {
		// Gmail reuses the token granted to the sheets client
		app.Logger.Info("Initializing gmail client")
		app.GmailClient, err = gmailclient.NewClient(app.Ctx, oauthCfg, app.SheetsClient.Token(), app.Cfg.GmailSender)
		if err != nil {
			return fmt.Errorf("failed to create gmail client: %w", err)
		}
	}

	return nil
}
