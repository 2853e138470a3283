package models

// SampleTable is the loaded capture file, stored column-wise.
// Every column has the same length as Index. A table is not modified after
// it has been built.
type SampleTable struct {
	Index  []int
	AccelX []float64
	AccelY []float64
	AccelZ []float64
	GiroX  []float64
	GiroY  []float64
	GiroZ  []float64
}

// NewSampleTable returns an empty table with room for n rows.
func NewSampleTable(n int) *SampleTable {
	return &SampleTable{
		Index:  make([]int, 0, n),
		AccelX: make([]float64, 0, n),
		AccelY: make([]float64, 0, n),
		AccelZ: make([]float64, 0, n),
		GiroX:  make([]float64, 0, n),
		GiroY:  make([]float64, 0, n),
		GiroZ:  make([]float64, 0, n),
	}
}

// Append adds one row. Only loaders and the recorder call it.
func (t *SampleTable) Append(s Sample) {
	t.Index = append(t.Index, s.Index)
	t.AccelX = append(t.AccelX, s.AccelX)
	t.AccelY = append(t.AccelY, s.AccelY)
	t.AccelZ = append(t.AccelZ, s.AccelZ)
	t.GiroX = append(t.GiroX, s.GiroX)
	t.GiroY = append(t.GiroY, s.GiroY)
	t.GiroZ = append(t.GiroZ, s.GiroZ)
}

// Len returns the number of rows.
func (t *SampleTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Index)
}

// Row materialises row i.
func (t *SampleTable) Row(i int) Sample {
	return Sample{
		Index:  t.Index[i],
		AccelX: t.AccelX[i],
		AccelY: t.AccelY[i],
		AccelZ: t.AccelZ[i],
		GiroX:  t.GiroX[i],
		GiroY:  t.GiroY[i],
		GiroZ:  t.GiroZ[i],
	}
}

// Column returns a measurement column by its CSV name. The index column is
// returned converted to float64 so it can be used as an axis directly.
func (t *SampleTable) Column(name string) ([]float64, bool) {
	switch name {
	case ColIndex:
		xs := make([]float64, len(t.Index))
		for i, v := range t.Index {
			xs[i] = float64(v)
		}
		return xs, true
	case ColAccelX:
		return t.AccelX, true
	case ColAccelY:
		return t.AccelY, true
	case ColAccelZ:
		return t.AccelZ, true
	case ColGiroX:
		return t.GiroX, true
	case ColGiroY:
		return t.GiroY, true
	case ColGiroZ:
		return t.GiroZ, true
	}
	return nil, false
}

// MeasurementColumns lists the six value columns in file order.
func MeasurementColumns() []string {
	return []string{ColAccelX, ColAccelY, ColAccelZ, ColGiroX, ColGiroY, ColGiroZ}
}
