package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/MrSnakeDoc/arbcheck/internal/printer"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON lines, one object per event
	Color bool      // colorize (console)
	Out   io.Writer // default os.Stdout
}

var (
	mu       sync.RWMutex
	zlog     *zap.SugaredLogger
	out      io.Writer = os.Stdout
	p        *printer.ColorPrinter
	curLevel = zapcore.InfoLevel
	jsonMode bool
	ready    atomic.Bool
)

// Configure sets up the global logger.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	configureLocked(opts)
}

func configureLocked(opts Options) {
	if opts.Out != nil {
		out = opts.Out
	}

	var enc zapcore.Encoder
	if opts.JSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "ts"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encCfg.CallerKey = ""
		encCfg.MessageKey = "msg"
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	}
	jsonMode = opts.JSON

	if !opts.Color || opts.JSON {
		color.NoColor = true
	}
	p = printer.NewColorPrinter()

	curLevel = parseLevel(opts.Level)
	core := zapcore.NewCore(enc, zapcore.AddSync(writerAdapter{out}), curLevel)
	zlog = zap.New(core).Sugar()

	ready.Store(true)
}

// SetLevel adjusts current level at runtime ("debug","info","warn","error").
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	configureLocked(Options{Level: level, JSON: jsonMode, Color: !color.NoColor})
}

// SetOutput replaces the logger writer (use io.Discard in tests).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	configureLocked(Options{Level: curLevel.String(), JSON: jsonMode, Color: !color.NoColor, Out: w})
}

// UseTestMode silences logs during tests.
func UseTestMode() {
	Configure(Options{
		Level: "error",
		Out:   io.Discard,
	})
}

// Out returns the current output writer (for tables and banners).
func Out() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

// JSON reports whether events are emitted as JSON lines.
func JSON() bool {
	mu.RLock()
	defer mu.RUnlock()
	return jsonMode
}

func Info(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, nil, func(pp *printer.ColorPrinter) string { return pp.Info("✨ "+msg, args...) })
}

func Success(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, nil, func(pp *printer.ColorPrinter) string { return pp.Success("✅ "+msg, args...) })
}

func LogError(msg string, args ...interface{}) {
	emit(zapcore.ErrorLevel, nil, func(pp *printer.ColorPrinter) string { return pp.Error("❌ "+msg, args...) })
}

func Warn(msg string, args ...interface{}) {
	emit(zapcore.WarnLevel, nil, func(pp *printer.ColorPrinter) string { return pp.Warning("⚠️ "+msg, args...) })
}

func Debug(msg string, args ...interface{}) {
	emit(zapcore.DebugLevel, nil, func(pp *printer.ColorPrinter) string { return pp.Debug("🛠️ "+msg, args...) })
}

// Scoped carries structured fields (check id, model, ...) onto every event.
type Scoped struct {
	fields []interface{}
}

func With(keysAndValues ...interface{}) *Scoped {
	return &Scoped{fields: keysAndValues}
}

func (s *Scoped) Info(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, s.fields, func(pp *printer.ColorPrinter) string { return pp.Info("✨ "+msg, args...) })
}

func (s *Scoped) Warn(msg string, args ...interface{}) {
	emit(zapcore.WarnLevel, s.fields, func(pp *printer.ColorPrinter) string { return pp.Warning("⚠️ "+msg, args...) })
}

func (s *Scoped) Debug(msg string, args ...interface{}) {
	emit(zapcore.DebugLevel, s.fields, func(pp *printer.ColorPrinter) string { return pp.Debug("🛠️ "+msg, args...) })
}

func (s *Scoped) LogError(msg string, args ...interface{}) {
	emit(zapcore.ErrorLevel, s.fields, func(pp *printer.ColorPrinter) string { return pp.Error("❌ "+msg, args...) })
}

// CreateTable returns a table writing to w, or to the log output when w is nil.
func CreateTable(w io.Writer, headers []string) *tablewriter.Table {
	if w == nil {
		w = Out()
	}
	t := tablewriter.NewTable(w)
	t.Header(headers)
	return t
}

func emit(level zapcore.Level, fields []interface{}, render func(*printer.ColorPrinter) string) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	if zlog == nil || p == nil || !zlog.Desugar().Core().Enabled(level) {
		return
	}
	msg := render(p)
	l := zlog
	if len(fields) > 0 {
		l = l.With(fields...)
	}
	switch level {
	case zapcore.DebugLevel:
		l.Debug(msg)
	case zapcore.WarnLevel:
		l.Warn(msg)
	case zapcore.ErrorLevel:
		l.Error(msg)
	default:
		l.Info(msg)
	}
}

type writerAdapter struct{ w io.Writer }

func (wa writerAdapter) Write(b []byte) (int, error) { return wa.w.Write(b) }

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
