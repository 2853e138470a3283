package models

// MPU6050 full-scale sensitivities at the power-on ranges (±2 g, ±250 °/s).
const (
	AccelLSBPerG   = 16384.0
	GyroLSBPerDegS = 131.0
)

// RawReading is one burst read of the MPU6050 data registers.
type RawReading struct {
	Accel [3]int16
	Gyro  [3]int16
}

// AccelG converts the raw accelerometer counts to g.
func (r RawReading) AccelG() (x, y, z float64) {
	return float64(r.Accel[0]) / AccelLSBPerG,
		float64(r.Accel[1]) / AccelLSBPerG,
		float64(r.Accel[2]) / AccelLSBPerG
}

// GyroDegS converts the raw gyroscope counts to °/s.
func (r RawReading) GyroDegS() (x, y, z float64) {
	return float64(r.Gyro[0]) / GyroLSBPerDegS,
		float64(r.Gyro[1]) / GyroLSBPerDegS,
		float64(r.Gyro[2]) / GyroLSBPerDegS
}
