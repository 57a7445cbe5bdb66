package cli

import (
	"context"
	"fmt"

	"github.com/akachour/wird/internal/core/repository"
	"github.com/akachour/wird/internal/core/service"
	"github.com/akachour/wird/internal/infrastructure/sqlite"
	"github.com/akachour/wird/pkg/config"
	"github.com/akachour/wird/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wird",
	Short: "Wird - daily devotional activity tracker",
	Long: `Wird is a multi-user tracker for daily devotional activities.

It provides:
- Per-user logging of salah completion and recitation counts
- An append-only activity history per user
- Admin statistics: completion rates and per-user totals
- REST API with JWT authentication
- User management from the command line`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/wird/config.yml)")
}

// initServices initializes storage, seeds the admin account and wires all
// services. The schema migration runs inside sqlite.New, before any
// repository is used.
func initServices(ctx context.Context) (*Services, error) {
	log, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	entryRepo := sqlite.NewEntryRepository(db)

	accountService := service.NewAccountService(userRepo)
	sessionService := service.NewSessionService(accountService, cfg.JWTSecretKey, cfg.JWTAlgorithm)
	ledgerService := service.NewLedgerService(entryRepo)

	if err := accountService.Bootstrap(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Services{
		DB:             db,
		Log:            log,
		UserRepo:       userRepo,
		EntryRepo:      entryRepo,
		AccountService: accountService,
		SessionService: sessionService,
		LedgerService:  ledgerService,
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB             *sqlite.DB
	Log            *zap.Logger
	UserRepo       repository.UserRepository
	EntryRepo      repository.EntryRepository
	AccountService *service.AccountService
	SessionService *service.SessionService
	LedgerService  *service.LedgerService
}

// Close closes all resources
func (s *Services) Close() {
	if s.Log != nil {
		s.Log.Sync()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
