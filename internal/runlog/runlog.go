package runlog

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options of the rotating file sink. Sizes are in megabytes
type Options struct {
	Path       string
	MaxSize    int
	MaxBackups int
	MaxAge     int // Days
	Compress   bool
}

// RunLog appends one JSON line per run. It is observational only: nothing in the scheduler reads it back
type RunLog struct {
	sink   *lumberjack.Logger
	logger *zap.Logger
}

func New(options Options) (*RunLog, error) {
	if options.Path == "" {
		return nil, errors.New("run log path is required")
	}

	sink := &lumberjack.Logger{
		Filename:   options.Path,
		MaxSize:    options.MaxSize,
		MaxBackups: options.MaxBackups,
		MaxAge:     options.MaxAge,
		Compress:   options.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.CallerKey = zapcore.OmitKey
	encoderConfig.StacktraceKey = zapcore.OmitKey

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(sink), zapcore.InfoLevel)
	return &RunLog{
		sink:   sink,
		logger: zap.New(core),
	}, nil
}

type Entry struct {
	RunID      string
	Players    int
	Rounds     int
	Strategy   string
	Status     string
	Cost       int
	Iterations int
	Seed       uint64
	Elapsed    time.Duration
}

func (log *RunLog) Append(entry Entry) {
	if log == nil {
		return
	}

	log.logger.Info("run",
		zap.String("run_id", entry.RunID),
		zap.Int("players", entry.Players),
		zap.Int("rounds", entry.Rounds),
		zap.String("strategy", entry.Strategy),
		zap.String("status", entry.Status),
		zap.Int("cost", entry.Cost),
		zap.Int("iterations", entry.Iterations),
		zap.Uint64("seed", entry.Seed),
		zap.Duration("elapsed", entry.Elapsed),
	)
}

// Close flushes pending entries and closes the file
func (log *RunLog) Close() error {
	if log == nil {
		return nil
	}
	_ = log.logger.Sync()
	return log.sink.Close()
}
