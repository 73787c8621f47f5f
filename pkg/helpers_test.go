package genoscrub

import (
	"strings"
	"testing"

	"github.com/jgbaldwinbrown/iterh"
	"github.com/stretchr/testify/require"
)

// loadTest builds a dataset from an inline genotype file and, when ped is not
// empty, an inline pedigree file.
func loadTest(t *testing.T, ped, geno string) *Dataset {
	t.Helper()
	rows, err := iterh.CollectWithError(ParseGenotypes(strings.NewReader(geno)))
	require.NoError(t, err)
	var peds []PedEntry
	if ped != "" {
		peds, err = ParsePedSafe(strings.NewReader(ped), nil)
		require.NoError(t, err)
	}
	ds, err := BuildDataset(peds, nil, rows, nil)
	require.NoError(t, err)
	return ds
}

func mustAnimal(t *testing.T, ds *Dataset, name string) AnimalID {
	t.Helper()
	id, ok := ds.Pedigree.Lookup(name)
	require.True(t, ok, "animal %v", name)
	return id
}

func mustMarker(t *testing.T, ds *Dataset, name string) MarkerID {
	t.Helper()
	id, ok := ds.Markers.Lookup(name)
	require.True(t, ok, "marker %v", name)
	return id
}

func gt(t *testing.T, ds *Dataset, animal, marker string) Genotype {
	t.Helper()
	return ds.Store.Get(mustAnimal(t, ds, animal), mustMarker(t, ds, marker))
}
