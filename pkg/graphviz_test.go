package genoscrub

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPedigree(t *testing.T) *Pedigree {
	t.Helper()
	p, err := BuildPedigree(
		PedEntry{IndividualID: "s", PaternalID: "0", MaternalID: "0"},
		PedEntry{IndividualID: "d", PaternalID: "0", MaternalID: "0"},
		PedEntry{IndividualID: "x", PaternalID: "s", MaternalID: "d"},
		PedEntry{IndividualID: "k", PaternalID: "x", MaternalID: "0"},
		PedEntry{IndividualID: "u", PaternalID: "0", MaternalID: "0"},
	)
	require.NoError(t, err)
	return p
}

func TestToGraphViz(t *testing.T) {
	p := testPedigree(t)
	var b bytes.Buffer
	n, err := ToGraphViz(&b, p, GraphVizOpts{Focal: "x", Corrections: map[string]int{"x": 3}})
	require.NoError(t, err)
	assert.Equal(t, b.Len(), n)

	want := "digraph full {\n" +
		`"s" [style=filled; label="s"; fillcolor="#6666cc"; shape=square]` + "\n" +
		`"d" [style=filled; label="d"; fillcolor="#cc6666"; shape=circle]` + "\n" +
		`"x" [style=filled; label="x\n3"; fillcolor="#6666cc"; shape=square]` + "\n" +
		`"s" -> "x"` + "\n" +
		`"d" -> "x"` + "\n" +
		`"k" [style=filled; label="k"]` + "\n" +
		`"x" -> "k"` + "\n" +
		"}\n"
	assert.Equal(t, want, b.String())
}

func TestToGraphVizAll(t *testing.T) {
	var b bytes.Buffer
	_, err := ToGraphViz(&b, testPedigree(t), GraphVizOpts{})
	require.NoError(t, err)
	assert.Contains(t, b.String(), `"u" [style=filled; label="u"]`)
}

func TestCorrectionCountsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changes.txt")
	body := "#run\tabc\nParentBlanked\ts\tm1\t0\t0\nInferred\tx\tm1\tA\tC\nScrubbed\tx\tm2\t0\t0\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	counts, err := CorrectionCountsPath(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"s": 1, "x": 2}, counts)

	require.NoError(t, os.WriteFile(path, []byte("Inferred\tx\tm1\n"), 0o644))
	_, err = CorrectionCountsPath(path)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestCorrectionCountsFromCheckLog(t *testing.T) {
	ds := loadTest(t, "", threeAccusers)
	res, err := Check(ds, DefaultConfig(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Discords)

	path := filepath.Join(t.TempDir(), "check.log")
	require.NoError(t, WritePath(path, func(w io.Writer) error {
		if e := WriteChangeLog(w, NewRunID(), res.Log.Changes); e != nil {
			return e
		}
		return WriteDiscords(w, res.Discords)
	}))

	counts, err := CorrectionCountsPath(path)
	require.NoError(t, err)
	assert.Equal(t, CorrectionCounts(res.Log.Changes), counts)
	assert.Equal(t, 1, counts["s"])
}
