package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredColumns(t *testing.T) {
	assert.Equal(t, []string{
		"numero_amostra", "accel_x", "accel_y", "accel_z", "giro_x", "giro_y", "giro_z",
	}, RequiredColumns)
}

func TestColumnPositions(t *testing.T) {
	t.Run("reordered with extras", func(t *testing.T) {
		header := []string{"\uFEFFgiro_z", " accel_x ", "temp", "numero_amostra", "accel_y", "accel_z", "giro_x", "giro_y"}
		pos, missing := ColumnPositions(header)
		require.Empty(t, missing)
		assert.Equal(t, 0, pos["giro_z"])
		assert.Equal(t, 1, pos["accel_x"])
		assert.Equal(t, 3, pos["numero_amostra"])
		assert.NotContains(t, pos, "temp")
	})

	t.Run("duplicate keeps first", func(t *testing.T) {
		header := append([]string{"accel_x"}, RequiredColumns...)
		pos, missing := ColumnPositions(header)
		require.Empty(t, missing)
		assert.Equal(t, 0, pos["accel_x"])
	})

	t.Run("missing", func(t *testing.T) {
		pos, missing := ColumnPositions([]string{"numero_amostra", "accel_x", "accel_y"})
		assert.Nil(t, pos)
		assert.Equal(t, "accel_z", missing)
	})
}
