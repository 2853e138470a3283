package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"imuplot/models"
	"imuplot/utils"
	"imuplot/views"
)

// LoadSampleTable reads a capture file into a SampleTable. The whole file is
// loaded or a *models.DataFormatError is returned.
func LoadSampleTable(path string) (*models.SampleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.DataFormatError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := ReadSampleTable(f, path)
	if err != nil {
		return nil, err
	}
	utils.L().Debug("loaded %d samples from %s", t.Len(), path)
	return t, nil
}

// ReadSampleTable parses CSV from r. name only labels errors.
func ReadSampleTable(r io.Reader, name string) (*models.SampleTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.DataFormatError{Path: name, Err: models.ErrEmptyFile}
	}
	if err != nil {
		return nil, csvError(name, err)
	}

	pos, missing := views.ColumnPositions(header)
	if missing != "" {
		return nil, &models.DataFormatError{Path: name, Line: 1, Column: missing, Err: models.ErrMissingColumn}
	}

	t := models.NewSampleTable(0)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}
		line, _ := cr.FieldPos(0)

		s, col, err := parseSample(rec, pos)
		if err != nil {
			return nil, &models.DataFormatError{
				Path:   name,
				Line:   line,
				Column: col,
				Err:    fmt.Errorf("%w: %v", models.ErrMalformedRow, err),
			}
		}
		t.Append(s)
	}
	return t, nil
}

func csvError(name string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &models.DataFormatError{
			Path: name,
			Line: perr.Line,
			Err:  fmt.Errorf("%w: %v", models.ErrMalformedRow, perr.Err),
		}
	}
	return &models.DataFormatError{Path: name, Err: err}
}

// parseSample returns the offending column name alongside any error.
func parseSample(rec []string, pos map[string]int) (models.Sample, string, error) {
	var s models.Sample

	raw := strings.TrimSpace(rec[pos[models.ColIndex]])
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return s, models.ColIndex, fmt.Errorf("invalid integer %q", raw)
	}
	s.Index = idx

	fields := []struct {
		col string
		dst *float64
	}{
		{models.ColAccelX, &s.AccelX},
		{models.ColAccelY, &s.AccelY},
		{models.ColAccelZ, &s.AccelZ},
		{models.ColGiroX, &s.GiroX},
		{models.ColGiroY, &s.GiroY},
		{models.ColGiroZ, &s.GiroZ},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(rec[pos[f.col]])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return s, f.col, fmt.Errorf("invalid number %q", raw)
		}
		*f.dst = v
	}
	return s, "", nil
}
