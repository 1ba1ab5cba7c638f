package xtime

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestNewLocalDate(t *testing.T) {
	assert.Equal(t, LocalDate{1970, time.January, 1}, NewLocalDate(time.Date(1970, time.January, 1, 0, 0, 0, 0, time.FixedZone("", -60*60*14))))
	assert.Equal(t, LocalDate{1970, time.January, 1}, NewLocalDate(time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, LocalDate{1970, time.January, 1}, NewLocalDate(time.Date(1970, time.January, 1, 23, 59, 59, 0, time.FixedZone("", 60*60*14))))
}

func TestParseLocalDate(t *testing.T) {
	d, err := ParseLocalDate("2025-06-01")
	assert.NoError(t, err)
	assert.Equal(t, LocalDate{2025, time.June, 1}, d)
	assert.Equal(t, "2025-06-01", d.String())
}

func TestParseLocalDate_Invalid(t *testing.T) {
	for _, v := range []string{"", "2025-6-1", "01.06.2025", "2025-13-01", "tomorrow"} {
		t.Run(v, func(t *testing.T) {
			d, err := ParseLocalDate(v)
			assert.Error(t, err)
			assert.True(t, d.IsZero())
		})
	}
}

func TestLocalDate_JSON(t *testing.T) {
	b, err := json.Marshal(LocalDate{2024, time.June, 15})
	assert.NoError(t, err)
	assert.Equal(t, `"2024-06-15"`, string(b))

	var d LocalDate
	assert.NoError(t, json.Unmarshal(b, &d))
	assert.Equal(t, LocalDate{2024, time.June, 15}, d)
}
