package genoscrub

import (
	"fmt"
)

// Genotype is an allele pair. Once phased, slot 0 holds the paternal allele
// and slot 1 the maternal allele.
type Genotype [2]Allele

var NoCall = Genotype{Missing, Missing}

// NewGenotype normalizes half-calls and error alleles to NoCall. Every writer
// goes through here.
func NewGenotype(a1, a2 Allele) Genotype {
	if !a1.Known() || !a2.Known() {
		return NoCall
	}
	return Genotype{a1, a2}
}

func Hom(a Allele) Genotype {
	return NewGenotype(a, a)
}

func ParseGenotype(s1, s2 string) Genotype {
	return NewGenotype(ParseAllele(s1), ParseAllele(s2))
}

func (g Genotype) Missing() bool {
	return !g[0].Known() || !g[1].Known()
}

func (g Genotype) Homozygous() bool {
	return !g.Missing() && g[0] == g[1]
}

func (g Genotype) Heterozygous() bool {
	return !g.Missing() && g[0] != g[1]
}

func (g Genotype) Has(a Allele) bool {
	return !g.Missing() && (g[0] == a || g[1] == a)
}

func (g Genotype) Swap() Genotype {
	return Genotype{g[1], g[0]}
}

// SameAlleles compares ignoring phase.
func (g Genotype) SameAlleles(o Genotype) bool {
	return g == o || g == o.Swap()
}

func (g Genotype) String() string {
	return fmt.Sprintf("%v/%v", g[0], g[1])
}
