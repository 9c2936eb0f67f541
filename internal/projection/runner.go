package projection

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"talentGraph/internal/model"
)

// RunnerConfig controls how a typed event stream is fed to the projector.
type RunnerConfig struct {
	// CheckpointEvery saves the cursor after this many applied events.
	CheckpointEvery int
	Cursor          CursorStore
}

// Stats summarises one runner pass.
type Stats struct {
	Total   int
	Applied int
	Skipped int
	Failed  int
	Last    model.Position
}

// Runner streams typed events into a Projector in file order, which must be
// canonical ledger order. Events at or before the saved cursor are skipped.
type Runner struct {
	cfg       RunnerConfig
	projector *Projector
	logger    *zap.Logger
}

func NewRunner(projector *Projector, cfg RunnerConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CheckpointEvery <= 0 {
		cfg.CheckpointEvery = 500
	}
	return &Runner{cfg: cfg, projector: projector, logger: logger}
}

// Run projects a typed events JSONL file.
func (r *Runner) Run(ctx context.Context, inputPath string) (Stats, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()
	return r.Consume(ctx, file)
}

// Consume projects typed events read line by line from in.
//
// It resumes after the later of the saved cursor and the progress committed to
// the store. The cursor is saved every CheckpointEvery events and again on
// every return, including cancellation and read or store failures.
func (r *Runner) Consume(ctx context.Context, in io.Reader) (stats Stats, err error) {
	if r.projector == nil {
		return Stats{}, fmt.Errorf("projector is nil")
	}

	cursor, hasCursor, err := r.resumePosition(ctx)
	if err != nil {
		return stats, err
	}
	if hasCursor {
		stats.Last = cursor
		r.logger.Info("resume from cursor", zap.Stringer("position", cursor))
	}

	sinceCheckpoint := 0
	defer func() {
		if sinceCheckpoint == 0 {
			return
		}
		if saveErr := r.saveCursor(context.WithoutCancel(ctx), stats.Last); saveErr != nil {
			if err == nil {
				err = saveErr
			} else {
				r.logger.Error("save cursor on exit", zap.Stringer("position", stats.Last), zap.Error(saveErr))
			}
		}
	}()

	scanner := bufio.NewScanner(in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Total++

		var record model.TypedEventRecord
		if err := json.Unmarshal(line, &record); err != nil {
			stats.Failed++
			r.logger.Warn("decode typed event", zap.Error(err))
			continue
		}

		pos := record.Position()
		if hasCursor && !pos.After(stats.Last) {
			stats.Skipped++
			continue
		}

		if err := r.projector.Apply(ctx, record); err != nil {
			if !IsEventScoped(err) {
				return stats, err
			}
			stats.Failed++
			r.logger.Warn("skip event",
				zap.String("event", record.EventName),
				zap.Stringer("position", pos),
				zap.String("tx_hash", record.TxHash),
				zap.Error(err),
			)
		} else {
			stats.Applied++
		}

		stats.Last = pos
		hasCursor = true
		sinceCheckpoint++
		if sinceCheckpoint >= r.cfg.CheckpointEvery {
			if err := r.saveCursor(ctx, pos); err != nil {
				return stats, err
			}
			sinceCheckpoint = 0
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}

	r.logger.Info("project complete",
		zap.Int("total", stats.Total),
		zap.Int("applied", stats.Applied),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
		zap.Stringer("last", stats.Last),
	)
	return stats, nil
}

// resumePosition picks the later of the saved cursor and the store progress.
// The cursor may lag the store after a crash between checkpoints.
func (r *Runner) resumePosition(ctx context.Context) (model.Position, bool, error) {
	cursor, hasCursor, err := r.loadCursor(ctx)
	if err != nil {
		return model.Position{}, false, err
	}
	progress, hasProgress, err := r.projector.Progress(ctx)
	if err != nil {
		return model.Position{}, false, err
	}
	switch {
	case hasProgress && (!hasCursor || progress.After(cursor)):
		if hasCursor {
			r.logger.Warn("cursor behind store progress",
				zap.Stringer("cursor", cursor),
				zap.Stringer("progress", progress),
			)
		}
		return progress, true, nil
	default:
		return cursor, hasCursor, nil
	}
}

func (r *Runner) loadCursor(ctx context.Context) (model.Position, bool, error) {
	if r.cfg.Cursor == nil {
		return model.Position{}, false, nil
	}
	pos, ok, err := r.cfg.Cursor.Load(ctx)
	if err != nil {
		return model.Position{}, false, fmt.Errorf("load cursor: %w", err)
	}
	return pos, ok, nil
}

func (r *Runner) saveCursor(ctx context.Context, pos model.Position) error {
	if r.cfg.Cursor == nil {
		return nil
	}
	if err := r.cfg.Cursor.Save(ctx, pos); err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}
