// Package export pushes loaded capture files to external stores.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"imuplot/models"
	"imuplot/utils"
)

// InfluxWriter writes sample tables to an InfluxDB v2 bucket.
type InfluxWriter struct {
	client      influxdb2.Client
	org         string
	bucket      string
	measurement string
	batchSize   int
	interval    time.Duration
}

// NewInfluxWriter validates cfg and opens a client. Close releases it.
func NewInfluxWriter(cfg utils.InfluxConfig) (*InfluxWriter, error) {
	var errs []error
	if cfg.URL == "" {
		errs = append(errs, errors.New("influx.url is required"))
	}
	if cfg.Org == "" {
		errs = append(errs, errors.New("influx.org is required"))
	}
	if cfg.Bucket == "" {
		errs = append(errs, errors.New("influx.bucket is required"))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("influx config: %w", errors.Join(errs...))
	}

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 500
	}
	measurement := cfg.Measurement
	if measurement == "" {
		measurement = "mpu6050"
	}

	return &InfluxWriter{
		client:      influxdb2.NewClient(cfg.URL, cfg.Token),
		org:         cfg.Org,
		bucket:      cfg.Bucket,
		measurement: measurement,
		batchSize:   batch,
		interval:    time.Duration(cfg.IntervalMs) * time.Millisecond,
	}, nil
}

// Points converts t into one point per row, timestamped from start at the
// configured sampling interval.
func (w *InfluxWriter) Points(t *models.SampleTable, source string, start time.Time) []*write.Point {
	tags := map[string]string{"source": source}
	points := make([]*write.Point, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		s := t.Row(i)
		points = append(points, influxdb2.NewPoint(
			w.measurement,
			tags,
			map[string]interface{}{
				models.ColIndex:  s.Index,
				models.ColAccelX: s.AccelX,
				models.ColAccelY: s.AccelY,
				models.ColAccelZ: s.AccelZ,
				models.ColGiroX:  s.GiroX,
				models.ColGiroY:  s.GiroY,
				models.ColGiroZ:  s.GiroZ,
			},
			utils.SampleTime(start, s.Index, w.interval),
		))
	}
	return points
}

// WriteTable writes every row of t and returns the number of points written.
func (w *InfluxWriter) WriteTable(ctx context.Context, t *models.SampleTable, source string, start time.Time) (int, error) {
	points := w.Points(t, source, start)
	api := w.client.WriteAPIBlocking(w.org, w.bucket)

	written := 0
	for len(points) > 0 {
		n := min(w.batchSize, len(points))
		if err := api.WritePoint(ctx, points[:n]...); err != nil {
			return written, fmt.Errorf("influx write %s/%s: %w", w.org, w.bucket, err)
		}
		written += n
		points = points[n:]
		utils.L().Debug("influx: wrote %d/%d points", written, t.Len())
	}
	return written, nil
}

func (w *InfluxWriter) Close() {
	w.client.Close()
}
