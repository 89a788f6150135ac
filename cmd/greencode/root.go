package main

import (
	"fmt"
	"os"

	"github.com/nulzo/greencode-advisor/internal/advisor"
	"github.com/nulzo/greencode-advisor/internal/cli"
	"github.com/nulzo/greencode-advisor/internal/config"
	"github.com/nulzo/greencode-advisor/internal/platform/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is built once per invocation by the root command's PersistentPreRunE.
type app struct {
	configFile string
	noColor    bool
	verbose    bool

	cfg     *config.Config
	logger  *zap.Logger
	service advisor.Service
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "greencode",
		Short: "Energy efficiency reviews for code snippets",
		Long: `greencode sends a code snippet to an AI provider and prints a markdown
critique focused on energy efficiency and sustainable coding practices.

Providers: OpenAI, Gemini, "Grok (Mock)" and "Llama (Mock)". The mock
providers need no API key.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "path to a config file (default ./config.yaml)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log dispatch details to stderr")

	root.AddCommand(
		newAnalyzeCommand(a),
		newProvidersCommand(a),
		newVersionCommand(a),
	)
	return root
}

func (a *app) init() error {
	if a.noColor {
		cli.SetEnabled(false)
	}
	path := a.configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := "error"
	if a.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:       level,
		Format:      "console",
		EnableColor: cli.Enabled(),
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	if a.service == nil {
		a.service = advisor.FromConfig(cfg, log)
	}
	return nil
}
