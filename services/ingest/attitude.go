package ingest

import (
	"math"
	"time"

	"imuplot/models"
)

// AttitudeEstimator derives roll and pitch from gravity and integrates yaw
// from the z gyro, the way the data logger firmware does before writing a row.
type AttitudeEstimator struct {
	yaw float64
}

// Update folds in one reading taken dt after the previous one and returns
// roll, pitch and yaw in degrees. Yaw stays within [-180, 180].
func (e *AttitudeEstimator) Update(r models.RawReading, dt time.Duration) (roll, pitch, yaw float64) {
	ax, ay, az := r.AccelG()
	_, _, gz := r.GyroDegS()

	roll = math.Atan2(ay, az) * 180 / math.Pi
	pitch = math.Atan2(-ax, math.Sqrt(ay*ay+az*az)) * 180 / math.Pi

	e.yaw += gz * dt.Seconds()
	if e.yaw > 180 {
		e.yaw -= 360
	}
	if e.yaw < -180 {
		e.yaw += 360
	}
	return roll, pitch, e.yaw
}

// Yaw returns the integrated heading.
func (e *AttitudeEstimator) Yaw() float64 { return e.yaw }

// SampleFromReading builds the logged row: acceleration in g and the three
// attitude angles in the giro columns.
func SampleFromReading(index int, r models.RawReading, roll, pitch, yaw float64) models.Sample {
	ax, ay, az := r.AccelG()
	return models.Sample{
		Index:  index,
		AccelX: ax,
		AccelY: ay,
		AccelZ: az,
		GiroX:  roll,
		GiroY:  pitch,
		GiroZ:  yaw,
	}
}
