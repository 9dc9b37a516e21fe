package scenario

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileParsesWellFormedLines(t *testing.T) {
	src := "version 1\n" +
		"0\tmap01.map\t8\t8\t0\t0\t7\t7\t9.899\n" +
		"1\tmap01.map\t8\t8\t1\t1\t6\t6\t7.071\n"

	experiments, err := LoadFile(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, experiments, 2)

	assert.Equal(t, Experiment{
		Bucket: 0, MapName: "map01.map", Width: 8, Height: 8,
		StartX: 0, StartY: 0, TargetX: 7, TargetY: 7, UpperBound: 9.899,
	}, experiments[0])
	assert.Equal(t, 1, experiments[1].Bucket)
}

func TestLoadFileSkipsMalformedLines(t *testing.T) {
	src := "version 1\n" +
		"0\tmap01.map\t8\t8\t0\t0\t7\t7\t9.899\n" +
		"this line has the wrong shape\n" +
		"1\tmap01.map\t8\t8\t1\t1\t6\t6\t7.071\n"

	experiments, err := LoadFile(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, experiments, 2)
}

func TestLoadFileEmptyAfterHeader(t *testing.T) {
	experiments, err := LoadFile(strings.NewReader("version 1\n"))
	require.NoError(t, err)
	assert.Empty(t, experiments)
}

func TestWriterProducesSemicolonSeparatedCSV(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.Write(Result{
		Exp: 0, PathFound: true, Alg: "anya",
		Expanded: 5, Generated: 9, HeapOps: 11,
		RealCost: 7.071, GridCost: 7.071, Map: "map01.map",
	}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "exp;path_found;alg;wallt_micro;runt_micro;expanded;generated;heapops;start;target;gridcost;realcost;map", lines[0])
	assert.Contains(t, lines[1], "anya")
	assert.Contains(t, lines[1], "7.071")
}
