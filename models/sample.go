package models

// Column names of the MPU6050 capture file, in the order the logger writes them.
const (
	ColIndex  = "numero_amostra"
	ColAccelX = "accel_x"
	ColAccelY = "accel_y"
	ColAccelZ = "accel_z"
	ColGiroX  = "giro_x"
	ColGiroY  = "giro_y"
	ColGiroZ  = "giro_z"
)

// Sample holds one row of the capture file.
type Sample struct {
	Index  int     `json:"numero_amostra"`
	AccelX float64 `json:"accel_x"` // g
	AccelY float64 `json:"accel_y"`
	AccelZ float64 `json:"accel_z"`
	GiroX  float64 `json:"giro_x"` // °/s
	GiroY  float64 `json:"giro_y"`
	GiroZ  float64 `json:"giro_z"`
}

var _ CSVRowWriter = (*Sample)(nil)

func (Sample) CSVHeader() []string {
	return []string{
		ColIndex,
		ColAccelX, ColAccelY, ColAccelZ,
		ColGiroX, ColGiroY, ColGiroZ,
	}
}

// CSVRow formats the sample the way the data logger firmware does: the
// index as an integer and every measurement with two decimals.
func (s *Sample) CSVRow() []string {
	return []string{
		itoa(s.Index),
		ftoa(s.AccelX, 2), ftoa(s.AccelY, 2), ftoa(s.AccelZ, 2),
		ftoa(s.GiroX, 2), ftoa(s.GiroY, 2), ftoa(s.GiroZ, 2),
	}
}
