// Package logsvc adapts zerolog to the core.Logger surface.
package logsvc

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/itmsdev/itms-client/core"
)

type ZerologLogger struct {
	log zerolog.Logger
}

var _ core.Logger = (*ZerologLogger)(nil)

func NewZerologLogger(conf *core.Config) *ZerologLogger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    conf.Env == "PROD",
	}

	log := zerolog.New(output).With().
		Timestamp().
		Str("env", conf.Env).
		Logger()

	if conf.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return &ZerologLogger{log: log}
}

// expected args fmt: error | key, value pairs
func (l ZerologLogger) event(ev *zerolog.Event, msg string, args []interface{}) {
	for i := 0; i < len(args); i++ {
		if err, okErr := args[i].(error); okErr {
			ev = ev.AnErr("error", err)
			continue
		}
		if key, okKey := args[i].(string); okKey && i+1 < len(args) {
			ev = ev.Interface(key, args[i+1])
			i++
			continue
		}
		ev = ev.Interface("arg", args[i])
	}
	ev.Msg(msg)
}

func (l ZerologLogger) Debug(msg string, args ...interface{}) { l.event(l.log.Debug(), msg, args) }
func (l ZerologLogger) Info(msg string, args ...interface{})  { l.event(l.log.Info(), msg, args) }
func (l ZerologLogger) Warn(msg string, args ...interface{})  { l.event(l.log.Warn(), msg, args) }
func (l ZerologLogger) Error(msg string, args ...interface{}) { l.event(l.log.Error(), msg, args) }
func (l ZerologLogger) Fatal(msg string, args ...interface{}) { l.event(l.log.Fatal(), msg, args) }
