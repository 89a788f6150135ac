package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/nulzo/greencode-advisor/internal/llm"
)

const (
	DefaultDelay = time.Second
	previewLen   = 100
)

const template = "## %[1]s Analysis (Mock)\n" +
	"\n" +
	"This is a placeholder. The real %[1]s API would be called here.\n" +
	"\n" +
	"### Code Snippet Analyzed:\n" +
	"```\n" +
	"%[2]s\n" +
	"```\n" +
	"\n" +
	"**Note:** Integration with %[1]s API coming soon!"

// Adapter is a placeholder backend that answers with a fixed template after a delay.
type Adapter struct {
	name  string
	delay time.Duration
}

func NewAdapter(name string, delay time.Duration) *Adapter {
	return &Adapter{name: name, delay: delay}
}

func NewGrok(delay time.Duration) *Adapter {
	return NewAdapter("Grok", delay)
}

func NewLlama(delay time.Duration) *Adapter {
	return NewAdapter("Llama", delay)
}

// Analyze ignores the credential.
func (a *Adapter) Analyze(ctx context.Context, code, _ string) (string, error) {
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", llm.NetworkError(a.name, ctx.Err())
		case <-timer.C:
		}
	}
	return Render(a.name, code), nil
}

// Render produces the placeholder report for code.
func Render(name, code string) string {
	return fmt.Sprintf(template, name, llm.Preview(code, previewLen))
}
