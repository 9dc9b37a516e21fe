package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOctileMap = "type octile\nheight 3\nwidth 3\nmap\n...\n...\n...\n"

func TestRunnerRunsBatchAndWritesCSV(t *testing.T) {
	g, err := LoadMap(strings.NewReader(testOctileMap))
	require.NoError(t, err)

	experiments := []Experiment{
		{Bucket: 0, MapName: "test", Width: 3, Height: 3, StartX: 0, StartY: 0, TargetX: 2, TargetY: 2, UpperBound: 2.828},
		{Bucket: 0, MapName: "test", Width: 3, Height: 3, StartX: 0, StartY: 0, TargetX: 2, TargetY: 0, UpperBound: 2},
	}

	runner := NewRunner(g, "test", 2)
	var out bytes.Buffer
	require.NoError(t, runner.Run(context.Background(), experiments, &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "true")
	assert.Contains(t, lines[2], "true")
}
