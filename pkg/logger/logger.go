package logger

import (
	"io"
	stdlog "log"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

type Zerolog struct {
	logger zerolog.Logger
}

type ZeroConfig struct {
	Level             string
	TimeFieldFormat   string
	PrettyPrint       bool
	DisableSampling   bool
	RedirectStdLogger bool
	ErrorStack        bool
	ShowCaller        bool
}

func NewZerolog(cfg ZeroConfig) *Zerolog {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.TimeFieldFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFieldFormat
	}
	if cfg.ErrorStack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	}

	var out io.Writer = os.Stderr
	if cfg.PrettyPrint {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: zerolog.TimeFieldFormat}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ShowCaller {
		ctx = ctx.Caller()
	}

	l := &Zerolog{logger: ctx.Logger()}

	if cfg.DisableSampling {
		zerolog.DisableSampling(true)
	}
	if cfg.RedirectStdLogger {
		stdlog.SetFlags(0)
		stdlog.SetOutput(l.logger)
	}

	return l
}

// NewDefaultZerolog is used before the configuration is available.
func NewDefaultZerolog() *Zerolog {
	return NewZerolog(ZeroConfig{Level: "info"})
}

func (l *Zerolog) Debug() *zerolog.Event { return l.logger.Debug() }
func (l *Zerolog) Info() *zerolog.Event  { return l.logger.Info() }
func (l *Zerolog) Warn() *zerolog.Event  { return l.logger.Warn() }
func (l *Zerolog) Error() *zerolog.Event { return l.logger.Error() }
func (l *Zerolog) Fatal() *zerolog.Event { return l.logger.Fatal() }
