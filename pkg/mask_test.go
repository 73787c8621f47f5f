package genoscrub

import (
	"bytes"
	"testing"

	"github.com/jgbaldwinbrown/iterh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const maskGeno = `#	m1	m2
s	0	0	A	A	A	C
d	0	0	C	C	0	0
x	s	d	A	C	A	A
`

func TestMaskAll(t *testing.T) {
	ds := loadTest(t, "", maskGeno)
	ms := Mask(ds, 1, rand.NewSource(1))
	require.Len(t, ms, 5)
	assert.Equal(t, Masked{Marker: "m1", Animal: "s", Genotype: Hom(A)}, ms[0])
	for _, m := range ms {
		assert.Equal(t, NoCall, gt(t, ds, m.Animal, m.Marker))
	}
}

func TestMaskNone(t *testing.T) {
	ds := loadTest(t, "", maskGeno)
	assert.Empty(t, Mask(ds, 0, rand.NewSource(1)))
	assert.Equal(t, Genotype{A, C}, gt(t, ds, "x", "m1"))
}

func TestTruthRoundTrip(t *testing.T) {
	ms := []Masked{
		{Marker: "m1", Animal: "s", Genotype: Hom(A)},
		{Marker: "m2", Animal: "x", Genotype: Genotype{A, C}},
	}
	var b bytes.Buffer
	require.NoError(t, WriteTruth(&b, ms))
	assert.Equal(t, "m1\ts\t0\t0\tA\tA\nm2\tx\t0\t0\tA\tC\n", b.String())

	got, err := iterh.CollectWithError(ParseTruth(&b))
	require.NoError(t, err)
	assert.Equal(t, ms, got)
}

func TestEvaluateMask(t *testing.T) {
	ds := loadTest(t, "", maskGeno)
	truth := []Masked{
		{Marker: "m1", Animal: "x", Genotype: Genotype{C, A}},
		{Marker: "m2", Animal: "x", Genotype: Genotype{A, C}},
		{Marker: "m2", Animal: "d", Genotype: Hom(C)},
		{Marker: "m9", Animal: "x", Genotype: Hom(C)},
	}
	ev := EvaluateMask(ds, truth)
	assert.Equal(t, MaskEval{Masked: 4, Called: 2, Correct: 1, Unknown: 1}, ev)
	assert.InDelta(t, 0.5, ev.CallRate(), 1e-9)
	assert.InDelta(t, 0.5, ev.Concordance(), 1e-9)

	assert.Equal(t, 0.0, MaskEval{}.CallRate())
	assert.Equal(t, 0.0, MaskEval{}.Concordance())
}
