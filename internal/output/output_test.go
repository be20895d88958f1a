package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePlainKV_SortedLines(t *testing.T) {
	var sb strings.Builder
	err := WritePlainKV(&sb, map[string]string{
		"state":       "Printing",
		"bed_actual":  "59.8",
		"tool0_target": "210.0",
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	assert.Equal(t, []string{
		"bed_actual=59.8",
		"state=Printing",
		"tool0_target=210.0",
	}, lines)
}

func TestWriteJSON_Indented(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteJSON(&sb, map[string]int{"tool0": 210}))
	assert.Contains(t, sb.String(), "\"tool0\": 210")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512B", FormatSize(512))
	assert.Equal(t, "1.4MB", FormatSize(1468987))
	assert.Equal(t, "3.4GB", FormatSize(3672615068))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "-", FormatDuration(0))
	assert.Equal(t, "43s", FormatDuration(43))
	assert.Equal(t, "19m36s", FormatDuration(1176))
	assert.Equal(t, "2h26m", FormatDuration(8811))
}
