package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/lorawan-deck/internal/chirp"
	"github.com/iburimskiy/lorawan-deck/internal/config"
	"github.com/iburimskiy/lorawan-deck/internal/deck"
	"github.com/iburimskiy/lorawan-deck/internal/tui"
)

var (
	exportSymbols   int
	exportOverwrite bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Present the deck in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, d, err := loadInputs(cmd)
		if err != nil {
			return err
		}
		m, err := tui.New(tui.Options{Config: cfg, Deck: d, Logger: logger})
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export-chirp <out.wav>",
	Short: "Write the audible chirp to a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if exportSymbols < 1 {
			return fmt.Errorf("--symbols must be at least 1, got %d", exportSymbols)
		}
		tone := cfg.Tone.NewTone()
		if err := writeChirp(args[0], tone, exportSymbols, exportOverwrite); err != nil {
			return err
		}
		logger.Info("chirp exported",
			zap.String("path", args[0]),
			zap.Int("symbols", exportSymbols),
			zap.Int("sample_rate", int(tone.SampleRate)))
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d symbols (%.0f Hz -> %.0f Hz) to %s\n", exportSymbols, tone.F0, tone.F1, args[0])
		return nil
	},
}

func writeChirp(path string, tone *chirp.Tone, symbols int, overwrite bool) (err error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s exists, use --force to overwrite", path)
		}
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return chirp.ExportWAV(f, tone, symbols)
}

var validateCmd = &cobra.Command{
	Use:   "validate <deck.yaml>",
	Short: "Check a deck file and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := deck.Load(args[0])
		if err != nil {
			logger.Warn("deck rejected", zap.String("path", args[0]), zap.Error(err))
			return err
		}
		printSummary(cmd.OutOrStdout(), d)
		return nil
	},
}

func printSummary(w io.Writer, d *deck.Deck) {
	fmt.Fprintf(w, "%s: %d slides\n", d.Title, len(d.Slides))
	for i, s := range d.Slides {
		mark := " "
		if i == d.ChirpIndex() {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %d. %-10s %-9s %s\n", mark, i+1, s.ID, s.Kind, s.Title)
	}
}
