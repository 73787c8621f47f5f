package genoscrub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChiSqTrio(t *testing.T) {
	assert.Equal(t, 0.0, ChiSqTrio(0, 0))
	assert.InDelta(t, 3.6, ChiSqTrio(8, 2), 1e-9)
	assert.Equal(t, 0.0, ChiSqTrio(5, 5))
}

func TestTransmitted(t *testing.T) {
	het := Genotype{A, C}
	assert.Equal(t, A, transmitted(Hom(A), het, NoCall))
	assert.Equal(t, C, transmitted(het, het, Hom(A)))
	assert.Equal(t, Missing, transmitted(het, het, het))
	assert.Equal(t, Missing, transmitted(het, het, Hom(G)))
	assert.Equal(t, Missing, transmitted(Hom(A), Hom(A), het))
	assert.Equal(t, Missing, transmitted(NoCall, het, Hom(A)))
}

func TestTransmissions(t *testing.T) {
	ds := loadTest(t, "", `#	m1	m2
s	0	0	A	C	G	G
d	0	0	A	A	G	G
k1	s	d	A	A	G	G
k2	s	d	A	C	G	G
k3	s	d	A	C	G	G
`)
	ts := Transmissions(ds)
	require.Len(t, ts, 2)
	assert.Equal(t, 1, ts[0].T1)
	assert.Equal(t, 2, ts[0].T2)
	assert.InDelta(t, 1.0/3, ts[0].ChiSq, 1e-9)
	assert.Greater(t, ts[0].P, 0.5)

	// monomorphic
	assert.Equal(t, 0, ts[1].T1+ts[1].T2)
	assert.Equal(t, 1.0, ts[1].P)
}
