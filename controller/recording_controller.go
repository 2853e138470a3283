package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"imuplot/models"
	"imuplot/services/ingest"
	"imuplot/utils"
	"imuplot/views"
)

// RecordingController is the last stage of a capture: it writes every
// sample it receives to the capture CSV, flushing on a ticker.
type RecordingController struct {
	cfg    utils.RecordConfig
	path   string
	writer *views.CSVWriter

	rowsWritten uint64
	done        chan struct{}
	wg          sync.WaitGroup

	errMu sync.Mutex
	err   error
}

// NewRecordingController creates the output file and writes its header.
func NewRecordingController(cfg utils.RecordConfig) (*RecordingController, error) {
	if cfg.Output == "" {
		return nil, errors.New("record output path is empty")
	}
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	w, err := views.NewCSVWriter(cfg.Output, cfg.BufferSizeKB*1024, true, models.Sample{}.CSVHeader())
	if err != nil {
		return nil, err
	}

	utils.L().Info("recording controller ready  file=%s", cfg.Output)
	return &RecordingController{
		cfg:    cfg,
		path:   cfg.Output,
		writer: w,
		done:   make(chan struct{}),
	}, nil
}

// Start consumes samples until the channel closes or ctx is cancelled.
func (rc *RecordingController) Start(ctx context.Context, samples <-chan *models.Sample) {
	rc.wg.Add(1)
	go func() {
		defer rc.wg.Done()
		flushMs := rc.cfg.FlushIntervalMs
		if flushMs <= 0 {
			flushMs = 100
		}
		ticker := time.NewTicker(time.Duration(flushMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-rc.done:
				return
			case <-ticker.C:
				rc.flush()
			}
		}
	}()

	rc.wg.Add(1)
	go func() {
		defer rc.wg.Done()
		defer close(rc.done)
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-samples:
				if !ok {
					return
				}
				rc.writer.WriteRow(s.CSVRow())
				atomic.AddUint64(&rc.rowsWritten, 1)
			}
		}
	}()

	utils.L().Info("recording controller started")
}

// Done is closed once the writer goroutine has finished.
func (rc *RecordingController) Done() <-chan struct{} {
	return rc.done
}

func (rc *RecordingController) flush() {
	if err := rc.writer.Flush(); err != nil {
		rc.setErr(err)
	}
}

func (rc *RecordingController) setErr(err error) {
	rc.errMu.Lock()
	if rc.err == nil {
		rc.err = err
	}
	rc.errMu.Unlock()
}

// Stop waits for both goroutines, then flushes and closes the file. It
// returns the first write error seen.
func (rc *RecordingController) Stop() error {
	rc.wg.Wait()
	if err := rc.writer.Close(); err != nil {
		rc.setErr(err)
	}

	utils.L().Info("recording controller stopped  (rows_written=%d, file=%s)", rc.RowsWritten(), rc.path)
	rc.errMu.Lock()
	defer rc.errMu.Unlock()
	return rc.err
}

// Path returns the capture file being written.
func (rc *RecordingController) Path() string {
	return rc.path
}

// RowsWritten returns the number of samples persisted.
func (rc *RecordingController) RowsWritten() uint64 {
	return atomic.LoadUint64(&rc.rowsWritten)
}

// Record runs a full simulated capture: reader → recording controller.
func Record(ctx context.Context, cfg utils.RecordConfig) (uint64, error) {
	rc, err := NewRecordingController(cfg)
	if err != nil {
		return 0, err
	}

	reader := ingest.NewMPU6050Reader(cfg)
	reader.Start(ctx)
	rc.Start(ctx, reader.Out)

	select {
	case <-rc.Done():
	case <-ctx.Done():
	}
	if err := rc.Stop(); err != nil {
		return rc.RowsWritten(), err
	}
	if err := ctx.Err(); err != nil {
		return rc.RowsWritten(), fmt.Errorf("recording interrupted: %w", err)
	}
	return rc.RowsWritten(), nil
}
