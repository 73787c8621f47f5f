package genoscrub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCorrector(ds *Dataset, cfg Config) (*Corrector, *ChangeLog) {
	log := &ChangeLog{}
	in := NewInferrer(ds.Pedigree, ds.Markers, cfg.OffspringLimit, nil)
	return NewCorrector(ds.Pedigree, ds.Markers, in, cfg, log, nil), log
}

const threeAccusers = `#	m1
s	0	0	A	A
d1	0	0	C	C
d2	0	0	C	C
d3	0	0	C	C
k1	s	d1	C	C
k2	s	d2	C	C
k3	s	d3	C	C
`

func TestCorrectorBlamesSire(t *testing.T) {
	ds := loadTest(t, "", threeAccusers)
	c, log := newTestCorrector(ds, DefaultConfig())
	rep := c.Run(ds.Store)

	assert.Equal(t, NoCall, gt(t, ds, "s", "m1"))
	for _, k := range []string{"k1", "k2", "k3"} {
		assert.Equal(t, Hom(C), gt(t, ds, k, "m1"), k)
	}
	require.Len(t, log.Changes, 1)
	assert.Equal(t, ParentBlanked, log.Changes[0].Action)
	assert.Equal(t, "s", log.Changes[0].Animal)
	assert.Equal(t, Hom(A), log.Changes[0].Before)

	require.Len(t, rep.Markers, 1)
	assert.Equal(t, 1, rep.Markers[0].Corrected)
	assert.InDelta(t, 1.0/7.0, rep.Markers[0].Fraction, 1e-9)
	assert.Equal(t, 1, rep.Discords[mustAnimal(t, ds, "s")])
}

func TestCorrectorBlamesOffspring(t *testing.T) {
	ds := loadTest(t, "", `#	m1
s	0	0	A	A
d1	0	0	C	C
d2	0	0	C	C
k1	s	d1	C	C
k2	s	d2	A	C
`)
	c, log := newTestCorrector(ds, DefaultConfig())
	c.Run(ds.Store)

	assert.Equal(t, Hom(A), gt(t, ds, "s", "m1"))
	// blanked, then rebuilt from the two homozygous parents
	assert.Equal(t, Genotype{A, C}, gt(t, ds, "k1", "m1"))
	assert.Equal(t, Genotype{A, C}, gt(t, ds, "k2", "m1"))
	assert.Equal(t, 1, log.Count(OffspringBlanked))
	assert.Equal(t, 1, log.Count(Inferred))
	assert.Equal(t, 0, log.Count(ParentBlanked))
}

func TestCorrectorThreshold(t *testing.T) {
	ds := loadTest(t, "", threeAccusers)
	cfg := DefaultConfig()
	cfg.BlameThreshold = 3
	c, log := newTestCorrector(ds, cfg)
	c.Run(ds.Store)

	assert.Equal(t, Hom(A), gt(t, ds, "s", "m1"))
	assert.Equal(t, 3, log.Count(OffspringBlanked))
	for _, k := range []string{"k1", "k2", "k3"} {
		assert.Equal(t, Genotype{A, C}, gt(t, ds, k, "m1"), k)
	}
}

func TestCorrectorImputeMissing(t *testing.T) {
	ds := loadTest(t, "", `#	m1
s	0	0	A	A
d	0	0	C	C
k	s	d	0	0
`)
	cfg := DefaultConfig()
	cfg.ImputeMissing = false
	c, log := newTestCorrector(ds, cfg)
	c.Run(ds.Store)
	assert.Equal(t, NoCall, gt(t, ds, "k", "m1"))
	assert.Empty(t, log.Changes)

	cfg.ImputeMissing = true
	c, log = newTestCorrector(ds, cfg)
	c.Run(ds.Store)
	assert.Equal(t, Genotype{A, C}, gt(t, ds, "k", "m1"))
	assert.Equal(t, 1, log.Count(Inferred))
}

func TestCorrectorMarkersIndependent(t *testing.T) {
	ds := loadTest(t, "", `#	m1	m2
s	0	0	A	A	G	G
d	0	0	C	C	T	T
k	s	d	G	G	G	T
`)
	c, log := newTestCorrector(ds, DefaultConfig())
	rep := c.Run(ds.Store)

	assert.Equal(t, Genotype{A, C}, gt(t, ds, "k", "m1"))
	assert.Equal(t, Genotype{G, T}, gt(t, ds, "k", "m2"))
	assert.Equal(t, 1, rep.Markers[0].Corrected)
	assert.Equal(t, 0, rep.Markers[1].Corrected)
	// both parents accused once each, so the offspring is blanked once
	assert.Equal(t, 1, log.Count(OffspringBlanked))
}

func TestCheckReportsDiscords(t *testing.T) {
	ds := loadTest(t, "", threeAccusers)
	res, err := Check(ds, DefaultConfig(), nil)
	require.NoError(t, err)
	require.Len(t, res.Discords, 1)
	assert.Equal(t, "s", res.Discords[0].Animal)
	assert.Equal(t, 1, res.Stats.Corrected)
}

func TestCorrectorFractionOverPedigree(t *testing.T) {
	// u is listed but never genotyped and still counts
	ds := loadTest(t, "s\nd1\nd2\nd3\nk1 s d1\nk2 s d2\nk3 s d3\nu\n", threeAccusers)
	require.Equal(t, 8, ds.Pedigree.Len())
	c, _ := newTestCorrector(ds, DefaultConfig())
	rep := c.Run(ds.Store)
	require.Len(t, rep.Markers, 1)
	assert.Equal(t, 1, rep.Markers[0].Corrected)
	assert.InDelta(t, 1.0/8.0, rep.Markers[0].Fraction, 1e-9)
}
