package logger

import (
	"strings"

	"github.com/nulzo/greencode-advisor/internal/cli"
	"github.com/nulzo/greencode-advisor/internal/httpclient"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	highlightedEncoding  = "highlighted-console"
	redactedJSONEncoding = "redacted-json"
)

var pool = buffer.NewPool()

func init() {
	_ = zap.RegisterEncoder(highlightedEncoding, func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
		return NewHighlightedEncoder(cfg), nil
	})
	_ = zap.RegisterEncoder(redactedJSONEncoding, func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
		return NewRedactedJSONEncoder(cfg), nil
	})
}

// redactedJSONEncoder is zap's JSON encoder with credentials redacted from
// the whole line.
type redactedJSONEncoder struct {
	zapcore.Encoder
}

func NewRedactedJSONEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &redactedJSONEncoder{Encoder: zapcore.NewJSONEncoder(cfg)}
}

func (e *redactedJSONEncoder) Clone() zapcore.Encoder {
	return &redactedJSONEncoder{Encoder: e.Encoder.Clone()}
}

func (e *redactedJSONEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf, err := e.Encoder.EncodeEntry(ent, fields)
	if err != nil {
		return nil, err
	}

	line := buf.String()
	redacted := httpclient.RedactURL(line)
	if redacted == line {
		return buf, nil
	}

	out := pool.Get()
	out.AppendString(redacted)
	buf.Free()
	return out, nil
}

// highlightedEncoder is zap's console encoder with the trailing JSON fields
// colorized and any leaked credential redacted.
type highlightedEncoder struct {
	zapcore.Encoder
}

func NewHighlightedEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &highlightedEncoder{Encoder: zapcore.NewConsoleEncoder(cfg)}
}

func (e *highlightedEncoder) Clone() zapcore.Encoder {
	return &highlightedEncoder{Encoder: e.Encoder.Clone()}
}

func (e *highlightedEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf, err := e.Encoder.EncodeEntry(ent, fields)
	if err != nil {
		return nil, err
	}

	// The console encoder separates the header from the fields with "\t{".
	line := buf.String()
	idx := strings.Index(line, "\t{")
	if idx == -1 {
		return buf, nil
	}

	out := pool.Get()
	out.AppendString(line[:idx+1])
	out.AppendString(cli.HighlightJSON(httpclient.RedactURL(line[idx+1:])))
	buf.Free()
	return out, nil
}
