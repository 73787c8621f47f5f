package genoscrub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testGenotypes = []Genotype{
	NoCall,
	Hom(A), Hom(C), Hom(G),
	{A, C}, {C, A}, {A, G}, {C, G},
}

func TestClassifyHetFromSameHomParents(t *testing.T) {
	for _, a := range []Allele{A, C, G, T} {
		for _, b := range []Allele{A, C, G, T} {
			if a == b {
				continue
			}
			assert.Equal(t, ConflictBoth, Classify(Genotype{a, b}, Hom(a), Hom(a)), "%v%v", a, b)
			assert.Equal(t, ConflictBoth, Classify(Genotype{a, b}, Hom(b), Hom(b)), "%v%v", a, b)
		}
	}
}

func TestClassifyParentSymmetry(t *testing.T) {
	mirror := map[Conflict]Conflict{
		Consistent:   Consistent,
		NoParents:    NoParents,
		NoAnimalData: NoAnimalData,
		ConflictSire: ConflictDam,
		ConflictDam:  ConflictSire,
		ConflictBoth: ConflictBoth,
	}
	for _, a := range testGenotypes {
		for _, s := range testGenotypes {
			for _, d := range testGenotypes {
				assert.Equal(t, mirror[Classify(a, s, d)], Classify(a, d, s), "%v %v %v", a, s, d)
			}
		}
	}
}

func TestClassifyTrio(t *testing.T) {
	sire, dam := Hom(A), Hom(C)
	assert.Equal(t, Consistent, Classify(Genotype{A, C}, sire, dam))
	assert.Equal(t, Consistent, Classify(Genotype{C, A}, sire, dam))
	// the dam cannot pass an A
	assert.Equal(t, ConflictDam, Classify(Hom(A), sire, dam))
	assert.Equal(t, ConflictSire, Classify(Hom(C), sire, dam))
	assert.Equal(t, ConflictBoth, Classify(Hom(G), sire, dam))
}

func TestClassifyNoInformation(t *testing.T) {
	assert.Equal(t, NoParents, Classify(Hom(A), NoCall, NoCall))
	assert.Equal(t, NoAnimalData, Classify(NoCall, Hom(A), NoCall))
	assert.True(t, NoParents.NoInformation())
	assert.True(t, NoAnimalData.NoInformation())
	assert.False(t, Consistent.IsConflict())
}

func TestClassifySingleParent(t *testing.T) {
	assert.Equal(t, ConflictSire, Classify(Hom(A), Hom(C), NoCall))
	assert.Equal(t, ConflictDam, Classify(Hom(A), NoCall, Hom(C)))
	// a heterozygous side is never a single parent conflict
	assert.Equal(t, Consistent, Classify(Genotype{A, G}, Hom(C), NoCall))
	assert.Equal(t, Consistent, Classify(Hom(A), Genotype{C, G}, NoCall))

	assert.Equal(t, ConflictSire, ClassifyAgainstParent(Hom(G), Hom(T)))
	assert.Equal(t, NoParents, ClassifyAgainstParent(Hom(G), NoCall))
}

func TestConflictBlame(t *testing.T) {
	assert.True(t, ConflictBoth.BlamesSire())
	assert.True(t, ConflictBoth.BlamesDam())
	assert.False(t, ConflictSire.BlamesDam())
	assert.False(t, ConflictDam.BlamesSire())
	assert.Equal(t, "conflict-both", ConflictBoth.String())
}
