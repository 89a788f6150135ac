package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider_ExactMatch(t *testing.T) {
	for _, p := range Providers {
		got, err := ParseProvider(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestParseProvider_RejectsNearMisses(t *testing.T) {
	for _, name := range []string{"UnknownXYZ", "openai", "Gemini ", "Grok", "", "unknown"} {
		_, err := ParseProvider(name)
		require.Error(t, err, name)
		assert.Equal(t, MsgInvalidProvider, err.Error())
		assert.Equal(t, KindSelection, KindOf(err))
	}
}

func TestProviderFlags(t *testing.T) {
	assert.True(t, OpenAI.RequiresKey())
	assert.True(t, Gemini.RequiresKey())
	assert.False(t, Grok.RequiresKey())
	assert.False(t, Llama.RequiresKey())
	assert.True(t, Grok.Mock())
	assert.False(t, Gemini.Mock())
}

func TestNetworkError_Wording(t *testing.T) {
	e := NetworkError("OpenAI", errors.New("dial tcp: refused"))
	assert.Equal(t, "Network error: Unable to connect to OpenAI API.", e.Error())
	assert.Equal(t, KindTransport, e.Kind)

	e = NetworkError("Gemini", fmt.Errorf("do: %w", context.DeadlineExceeded))
	assert.Equal(t, "Gemini request timed out.", e.Error())
	assert.ErrorIs(t, e, context.DeadlineExceeded)
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", MissingKey("Gemini"))
	assert.Equal(t, KindConfiguration, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestPreview(t *testing.T) {
	exact := strings.Repeat("a", 100)
	assert.Equal(t, exact, Preview(exact, 100))

	over := strings.Repeat("b", 101)
	assert.Equal(t, strings.Repeat("b", 100)+"...", Preview(over, 100))

	runes := strings.Repeat("é", 101)
	assert.Equal(t, strings.Repeat("é", 100)+"...", Preview(runes, 100))
}

func TestCombinedPrompt(t *testing.T) {
	p := CombinedPrompt("x := 1")
	assert.True(t, strings.HasPrefix(p, CombinedInstruction))
	assert.True(t, strings.HasSuffix(p, "\n\nCode:\nx := 1"))
}
