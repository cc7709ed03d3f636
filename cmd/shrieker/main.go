package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/phroun/shrieker"
	"github.com/phroun/shrieker/cli"
	"github.com/phroun/shrieker/config"
	"github.com/phroun/shrieker/journal"
)

var (
	// Global flags
	verbose     bool
	configPath  string
	logFile     string
	journalPath string

	// Play flags
	character   string
	gender      string
	race        string
	align       string
	rows        int
	cols        int
	idleTimeout time.Duration
	lives       int

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd plays the game
var rootCmd = &cobra.Command{
	Use:   "shrieker",
	Short: "shrieker - a bot that plays NetHack through a pseudo-terminal",
	Long: `shrieker starts NetHack on a pseudo-terminal, reads the screen after
every burst of output and answers with one command at a time.

The game screen is mirrored to stdout; logs go to the log file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("failed to parse log level: %w", err)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		zcfg.OutputPaths = []string{cfg.Logging.File}
		zcfg.ErrorOutputPaths = []string{cfg.Logging.File}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPlay,
}

// initConfigCmd writes the default configuration
var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	// Runs before a config exists, so skip loading one
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

// lifeCmd prints a journaled life
var lifeCmd = &cobra.Command{
	Use:   "life <id>",
	Short: "Show a recorded life and its turns",
	Args:  cobra.ExactArgs(1),
	RunE:  runLife,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "shrieker.yaml", "Config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "Log file (or set SHRIEKER_LOG env)")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "Record games in this SQLite file (or set SHRIEKER_JOURNAL env)")

	rootCmd.Flags().StringVar(&character, "character", "", "Role, e.g. val (default: random)")
	rootCmd.Flags().StringVar(&gender, "gender", "", "mal or fem (default: random)")
	rootCmd.Flags().StringVar(&race, "race", "", "Race, e.g. elf (default: random)")
	rootCmd.Flags().StringVar(&align, "align", "", "Alignment, e.g. neu (default: random)")
	rootCmd.Flags().IntVar(&rows, "rows", 0, "Game screen rows")
	rootCmd.Flags().IntVar(&cols, "cols", 0, "Game screen columns")
	rootCmd.Flags().DurationVar(&idleTimeout, "timeout", 0, "Quiet period that ends a frame")
	rootCmd.Flags().IntVarP(&lives, "lives", "n", 1, "Number of games to play (0 = until interrupted)")

	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(lifeCmd)
}

// applyFlags lets explicitly set flags win over the config file
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("log") {
		cfg.Logging.File = logFile
	}
	if flags.Changed("journal") {
		cfg.Journal.Path = journalPath
		cfg.Journal.Enabled = journalPath != ""
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if flags.Changed("character") {
		cfg.Game.Character = character
	}
	if flags.Changed("gender") {
		cfg.Game.Gender = gender
	}
	if flags.Changed("race") {
		cfg.Game.Race = race
	}
	if flags.Changed("align") {
		cfg.Game.Align = align
	}
	if flags.Changed("rows") {
		cfg.Game.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Game.Cols = cols
	}
	if flags.Changed("timeout") {
		cfg.Relay.IdleTimeout = idleTimeout.String()
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	var store *journal.Store
	if cfg.Journal.Enabled {
		var err error
		store, err = journal.NewStore(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	host := cli.New(cli.Options{AltScreen: true})
	if err := host.CheckSize(cfg.Game.Rows, cfg.Game.Cols); err != nil {
		logger.Warn("mirror may be clipped", zap.Error(err))
	}
	if err := host.Start(); err != nil {
		return err
	}
	defer host.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var interrupted atomic.Bool
	for i := 0; lives == 0 || i < lives; i++ {
		session := shrieker.NewSession(shrieker.SessionConfig{
			Binary: cfg.Game.Binary,
			Args:   cfg.Game.Args,
			Rows:   cfg.Game.Rows,
			Cols:   cfg.Game.Cols,
			Options: shrieker.GameOptions{
				Character:   cfg.Game.Character,
				Gender:      cfg.Game.Gender,
				Race:        cfg.Game.Race,
				Align:       cfg.Game.Align,
				PickupTypes: cfg.Game.PickupTypes,
			},
			Relay: shrieker.RelayConfig{
				IdleTimeout: cfg.GetIdleTimeout(),
				ReadSize:    cfg.Relay.ReadSize,
				Mirror:      host,
			},
			Journal: store,
			Logger:  logger,
		})

		done := make(chan struct{})
		go func() {
			select {
			case sig := <-sigChan:
				logger.Info("Received signal, stopping", zap.Stringer("signal", sig))
				interrupted.Store(true)
				session.Stop()
			case <-done:
			}
		}()

		result, err := session.Run()
		close(done)
		if err != nil && !errors.Is(err, shrieker.ErrChildExited) {
			return err
		}
		if result != nil {
			logger.Info("Life finished",
				zap.String("life", result.LifeID),
				zap.Int("turns", result.Turns),
				zap.Bool("died", result.Died))
		}
		if interrupted.Load() || errors.Is(err, shrieker.ErrChildExited) {
			break
		}
	}
	return nil
}

func runLife(cmd *cobra.Command, args []string) error {
	store, err := journal.NewStore(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	life, err := store.GetLife(args[0])
	if err != nil {
		return err
	}
	turns, err := store.Turns(life.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s-%s-%s-%s  started %s\n",
		life.ID, life.Character, life.Race, life.Gender, life.Align,
		life.StartedAt.Format(time.RFC3339))
	if !life.EndedAt.IsZero() {
		fmt.Fprintf(out, "ended %s after %d turns, died=%v, Dlvl:%s HP:%d(%d) $%d\n",
			life.EndedAt.Format(time.RFC3339), life.Turns, life.Died,
			life.Dlvl, life.HP, life.HPMax, life.Money)
		fmt.Fprintf(out, "last message: %s\n", life.Message)
	}
	for _, t := range turns {
		fmt.Fprintf(out, "%6d  %-12s %-10s %s\n", t.Index, t.Kind, t.Command, t.Message)
	}
	return nil
}
