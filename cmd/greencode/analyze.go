package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nulzo/greencode-advisor/internal/cli"
	"github.com/nulzo/greencode-advisor/internal/llm"
	"github.com/nulzo/greencode-advisor/pkg/api"
	"github.com/spf13/cobra"
)

var errNoCode = errors.New("no code to analyze: pass --file or pipe code on stdin")

type analyzeOptions struct {
	provider string
	apiKey   string
	file     string
	json     bool
}

func newAnalyzeCommand(a *app) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Review a code snippet for energy efficiency",
		Example: `  greencode analyze --provider "Grok (Mock)" --file main.py
  cat main.go | greencode analyze -p Gemini -k "$GEMINI_API_KEY"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.analyze(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.provider, "provider", "p", llm.Grok.String(), "provider name, exactly as listed by 'greencode providers'")
	cmd.Flags().StringVarP(&opts.apiKey, "api-key", "k", "", "provider API key (defaults to the configured key)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "file to analyze (default stdin)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	return cmd
}

func (a *app) analyze(cmd *cobra.Command, opts *analyzeOptions) error {
	code, err := readCode(cmd.InOrStdin(), opts.file)
	if err != nil {
		return err
	}

	credential := opts.apiKey
	if credential == "" {
		if p, err := llm.ParseProvider(opts.provider); err == nil {
			credential = a.cfg.DefaultKey(p)
		}
	}

	result, err := a.service.Analyze(cmd.Context(), code, opts.provider, credential)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return cli.PrintJSON(out, api.AnalyzeResponse{Provider: opts.provider, Result: result})
	}
	_, err = fmt.Fprintln(out, result)
	return err
}

func readCode(stdin io.Reader, file string) (string, error) {
	var (
		raw []byte
		err error
	)
	if file != "" {
		raw, err = os.ReadFile(file)
	} else {
		raw, err = io.ReadAll(stdin)
	}
	if err != nil {
		return "", fmt.Errorf("read code: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return "", errNoCode
	}
	return string(raw), nil
}
