package genoscrub

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHardyWeinberg(t *testing.T) {
	chisq, p := HardyWeinberg(25, 50, 25)
	assert.InDelta(t, 0, chisq, 1e-9)
	assert.InDelta(t, 1, p, 1e-9)

	chisq, p = HardyWeinberg(50, 0, 50)
	assert.InDelta(t, 100, chisq, 1e-9)
	assert.Less(t, p, 1e-6)

	chisq, p = HardyWeinberg(0, 0, 0)
	assert.Equal(t, 0.0, chisq)
	assert.Equal(t, 1.0, p)
}

const statGeno = `#	m1	m2	m3
x	0	0	A	A	A	C	A	C
y	0	0	A	C	C	C	G	G
z	0	0	C	C	C	C	T	T
w	0	0	0	0	C	C	0	0
`

func TestMarkerStats(t *testing.T) {
	ds := loadTest(t, "", statGeno)
	sts := MarkerStats(ds)
	require.Len(t, sts, 3)

	m1 := sts[0]
	assert.Equal(t, GenoCounts{Blank: 1, Hom1: 1, Het: 1, Hom2: 1}, m1.GenoCounts)
	assert.Equal(t, 3, m1.Count1)
	assert.Equal(t, 3, m1.Count2)
	assert.InDelta(t, 0.5, m1.MAF, 1e-9)

	m2 := sts[1]
	assert.Equal(t, GenoCounts{Het: 1, Hom2: 3}, m2.GenoCounts)
	assert.InDelta(t, 0.125, m2.MAF, 1e-9)

	// multi-allelic markers count every call as wrong
	assert.Equal(t, 3, sts[2].Wrong)
	assert.Equal(t, 0, sts[2].Called())
}

func TestAnimalStats(t *testing.T) {
	ds := loadTest(t, "", statGeno)
	sts := AnimalStats(ds)
	require.Len(t, sts, 4)
	assert.Equal(t, "w", sts[3].Animal)
	assert.Equal(t, GenoCounts{Blank: 2, Hom2: 1}, sts[3].GenoCounts)
	assert.Equal(t, GenoCounts{Hom1: 1, Het: 1, Wrong: 1}, sts[0].GenoCounts)
}

func TestWriteAlleleTable(t *testing.T) {
	ds := loadTest(t, "", statGeno)
	var b bytes.Buffer
	require.NoError(t, WriteAlleleTable(&b, MarkerStats(ds)[:2]))
	assert.Equal(t, "m1\t0\tA\tC\t3\t3\nm2\t1\tC\tA\t7\t1\n", b.String())
}

func TestWriteStats(t *testing.T) {
	ds := loadTest(t, "", statGeno)
	var b bytes.Buffer
	require.NoError(t, WriteMarkerStats(&b, "r", MarkerStats(ds)[:1]))
	assert.True(t, strings.HasPrefix(b.String(), "#run\tr\n#marker\tblank\thom1\thet\thom2\twrong\tmaf\tchisq\tp\nm1\t1\t1\t1\t1\t0\t0.5000\t0.3333\t"), b.String())

	b.Reset()
	require.NoError(t, WriteAnimalStats(&b, AnimalStats(ds)[3:]))
	assert.Equal(t, "#animal\tblank\thom1\thet\thom2\twrong\nw\t2\t0\t0\t1\t0\n", b.String())
}
