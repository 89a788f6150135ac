package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withColor(t *testing.T, on bool) {
	t.Helper()
	prev := Enabled()
	SetEnabled(on)
	t.Cleanup(func() { SetEnabled(prev) })
}

func TestStylize(t *testing.T) {
	withColor(t, true)
	assert.Equal(t, Green+"ok"+ResetCode, Stylize("ok", Green))

	SetEnabled(false)
	assert.Equal(t, "ok", Stylize("ok", Green))
	assert.Equal(t, "GreenCode", Banner("GreenCode"))
}

func TestHighlightJSON(t *testing.T) {
	withColor(t, true)
	out := HighlightJSON(`{"provider":"Gemini","ok":true,"n":3,"x":null}`)

	assert.Contains(t, out, Blue+`"provider"`+ResetCode+":")
	assert.Contains(t, out, Green+`"Gemini"`+ResetCode)
	assert.Contains(t, out, Yellow+"true"+ResetCode)
	assert.Contains(t, out, Purple+"3"+ResetCode)
	assert.Contains(t, out, DimCode+"null"+ResetCode)

	SetEnabled(false)
	assert.Equal(t, `{"a":1}`, HighlightJSON(`{"a":1}`))
}

func TestPrintJSON_PlainWhenNotTerminal(t *testing.T) {
	withColor(t, true)

	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]interface{}{"provider": "Gemini", "ok": true}))

	assert.NotContains(t, buf.String(), "\x1b")
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Gemini", got["provider"])
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.json"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestGradientEndpoints(t *testing.T) {
	withColor(t, true)
	assert.Equal(t, ColorizeRGB("x", Leaf), Gradient("x", Leaf, Sprout, 0))
	assert.Equal(t, ColorizeRGB("x", Sprout), Gradient("x", Leaf, Sprout, 1))
}
