package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/lorawan-deck/internal/config"
	"github.com/iburimskiy/lorawan-deck/internal/deck"
	"github.com/iburimskiy/lorawan-deck/internal/game"
)

var (
	configPath string
	deckPath   string
	startSlide int
	verbose    bool
	logPath    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lorawan-deck",
	Short: "Interactive LoRa and LoRaWAN slide deck",
	Long: `lorawan-deck presents LoRa and LoRaWAN as an interactive slide deck:
the chirp spread spectrum sweep, the uplink frame, device classes and
session keys.

Run without arguments to open the desktop deck.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(cmd.Name() == "tui")
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
	RunE: runDesktop,
}

// newLogger builds the production logger. The terminal deck owns stdout and
// stderr, so it logs to --log or nowhere.
func newLogger(terminal bool) (*zap.Logger, error) {
	if terminal && logPath == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if logPath != "" {
		cfg.OutputPaths = []string{logPath}
		cfg.ErrorOutputPaths = []string{logPath}
	}
	return cfg.Build()
}

// loadInputs resolves the config and deck shared by both front ends. Flags
// win over the config file and environment.
func loadInputs(cmd *cobra.Command) (*config.Config, *deck.Deck, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("deck") {
		cfg.DeckFile = deckPath
	}
	if cmd.Flags().Changed("start") {
		cfg.StartSlide = startSlide
	}

	d, err := deck.Default()
	if cfg.DeckFile != "" {
		d, err = deck.Load(cfg.DeckFile)
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, d, nil
}

func runDesktop(cmd *cobra.Command, args []string) error {
	cfg, d, err := loadInputs(cmd)
	if err != nil {
		return err
	}
	g, err := game.New(game.Options{Config: cfg, Deck: d, Logger: logger})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(d.Title + " - arrows: navigate, O: open deck, Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("starting desktop deck", zap.Int("slides", len(d.Slides)))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (YAML)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&logPath, "log", "", "write logs to this file")

	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVarP(&deckPath, "deck", "d", "", "deck file (YAML) replacing the built-in deck")
		c.Flags().IntVarP(&startSlide, "start", "s", 0, "slide shown at startup")
	}
	exportCmd.Flags().IntVarP(&exportSymbols, "symbols", "n", 8, "number of chirp symbols")
	exportCmd.Flags().BoolVar(&exportOverwrite, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(tuiCmd, exportCmd, validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
