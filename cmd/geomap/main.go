package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"geomap/internal/tui"
)

const (
	logFileFlag  = "log-file"
	logLevelFlag = "log-level"
	zoomFlag     = "zoom"
	noHelpFlag   = "no-help"
)

var rootCmd = &cobra.Command{
	Use:   "geomap [file]",
	Short: "Terminal viewer for GeoJSON, WKT, CSV and KML data",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().String(logFileFlag, "", "write logs to this file (the terminal is taken by the UI)")
	rootCmd.Flags().String(logLevelFlag, "info", "log level: debug, info, warn, error")
	rootCmd.Flags().Float64P(zoomFlag, "z", 1, "initial zoom relative to fitting the data")
	rootCmd.Flags().Bool(noHelpFlag, false, "start with the key help hidden")
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	logFile, _ := flags.GetString(logFileFlag)
	logLevel, _ := flags.GetString(logLevelFlag)
	zoom, _ := flags.GetFloat64(zoomFlag)
	noHelp, _ := flags.GetBool(noHelpFlag)

	logger, err := newLogger(logFile, logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := tui.Options{Zoom: zoom, HideHelp: noHelp, Logger: logger}
	if len(args) > 0 {
		opts.Path = args[0]
	}
	logger.Debug("starting", zap.String("path", opts.Path), zap.Float64("zoom", zoom))

	p := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program failed", zap.Error(err))
		return errors.Wrap(err, "run ui")
	}
	return nil
}

// newLogger logs to path as JSON, or nowhere when path is empty.
func newLogger(path, level string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", logLevelFlag)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
