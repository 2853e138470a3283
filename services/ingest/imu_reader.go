package ingest

import (
	"context"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"imuplot/models"
	"imuplot/utils"
)

// MPU6050Reader simulates the data logger's capture loop: it reads the
// sensor at a fixed interval, converts each reading to a logged row and
// emits a fixed number of rows on Out.
type MPU6050Reader struct {
	cfg      utils.RecordConfig
	rng      *rand.Rand
	est      AttitudeEstimator
	Out      chan *models.Sample
	produced uint64
}

func NewMPU6050Reader(cfg utils.RecordConfig) *MPU6050Reader {
	buf := cfg.ChannelBuffer
	if buf <= 0 {
		buf = 256
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MPU6050Reader{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
		Out: make(chan *models.Sample, buf),
	}
}

func (r *MPU6050Reader) Start(ctx context.Context) {
	go r.run(ctx)
	utils.L().Info("mpu6050 reader started  (samples=%d, interval=%dms, buffer=%d)",
		r.cfg.Samples, r.cfg.IntervalMs, cap(r.Out))
}

func (r *MPU6050Reader) run(ctx context.Context) {
	defer close(r.Out)

	var tick <-chan time.Time
	interval := time.Duration(r.cfg.IntervalMs) * time.Millisecond
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var prev int64
	for i := 1; i <= r.cfg.Samples; i++ {
		now := utils.NowNano()
		var dt time.Duration
		if prev != 0 {
			dt = time.Duration(now - prev)
		}
		prev = now

		raw := r.read(float64(i-1) * interval.Seconds())
		roll, pitch, yaw := r.est.Update(raw, dt)
		s := SampleFromReading(i, raw, roll, pitch, yaw)

		select {
		case <-ctx.Done():
			r.logStopped()
			return
		case r.Out <- &s:
			atomic.AddUint64(&r.produced, 1)
		}

		if tick != nil && i < r.cfg.Samples {
			select {
			case <-ctx.Done():
				r.logStopped()
				return
			case <-tick:
			}
		}
	}
	r.logStopped()
}

func (r *MPU6050Reader) logStopped() {
	utils.L().Info("mpu6050 reader stopped  (produced=%d)", atomic.LoadUint64(&r.produced))
}

// read synthesises raw registers for a board slowly rocking about x and y
// while turning about z, t seconds into the capture.
func (r *MPU6050Reader) read(t float64) models.RawReading {
	rollRad := 20 * math.Pi / 180 * math.Sin(2*math.Pi*t/4)
	pitchRad := 10 * math.Pi / 180 * math.Cos(2*math.Pi*t/6)

	gx := -math.Sin(pitchRad)
	gy := math.Sin(rollRad) * math.Cos(pitchRad)
	gz := math.Cos(rollRad) * math.Cos(pitchRad)

	noise := func(sd float64) float64 { return r.rng.NormFloat64() * sd }

	return models.RawReading{
		Accel: [3]int16{
			toCounts((gx+noise(0.01))*models.AccelLSBPerG),
			toCounts((gy+noise(0.01))*models.AccelLSBPerG),
			toCounts((gz+noise(0.01))*models.AccelLSBPerG),
		},
		Gyro: [3]int16{
			toCounts((31.4*math.Cos(2*math.Pi*t/4) + noise(0.5)) * models.GyroLSBPerDegS),
			toCounts((-10.5*math.Sin(2*math.Pi*t/6) + noise(0.5)) * models.GyroLSBPerDegS),
			toCounts((15.0 + noise(0.5)) * models.GyroLSBPerDegS),
		},
	}
}

// toCounts rounds to the nearest register value, saturating like the ADC.
func toCounts(v float64) int16 {
	v = math.Round(v)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func (r *MPU6050Reader) Produced() uint64 {
	return atomic.LoadUint64(&r.produced)
}
