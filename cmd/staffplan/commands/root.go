package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"staffplan/internal/config"
	"staffplan/internal/dashboard"
	"staffplan/internal/kds"
	"staffplan/internal/logging"
	"staffplan/internal/session"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	kdsClient kds.Client
	dash      *dashboard.Service
)

var rootCmd = &cobra.Command{
	Use:   "staffplan",
	Short: "staffplan is a workforce scenario planner for hotel branches",
	Long: `Exposes branch occupancy and revenue trends, overtime and turnover risk, and
what-if staffing scenarios over MCP (stdio) or a REST API.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		// Initialize KDS Client
		kdsClient, err = kds.NewClient(cfg.KDS)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize KDS client")
		}

		dash = dashboard.NewService(kdsClient, session.NewStore(cfg.DataPath), dashboard.Options{
			DefaultDistrictID: cfg.DefaultDistrictID,
			DefaultHorizon:    cfg.DefaultHorizon,
			DefaultScenario:   cfg.DefaultScenario,
		})

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("staffplan starting")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if c, ok := kdsClient.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close KDS store")
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCP(cmd)
	},
}

// Execute runs the root command; SIGINT and SIGTERM cancel its context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
