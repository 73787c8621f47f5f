package genoscrub

import (
	"log/slog"
)

const DefaultOffspringLimit = 5

// Inferrer derives legal genotypes from relatives. Unknown results are
// reported as (NoCall, false) and are never errors.
type Inferrer struct {
	Pedigree *Pedigree
	Markers  *MarkerTable
	// Homozygous parents are only inferred from more than OffspringLimit
	// informative offspring.
	OffspringLimit int
	Logger         *slog.Logger
}

func NewInferrer(p *Pedigree, mt *MarkerTable, limit int, l *slog.Logger) *Inferrer {
	return &Inferrer{Pedigree: p, Markers: mt, OffspringLimit: limit, Logger: orDiscard(l)}
}

// FromOffspring guesses a parent's genotype from its offspring. Any
// heterozygous offspring makes the answer unknown. Offspring homozygous for
// both alleles prove a heterozygous parent.
func (in *Inferrer) FromOffspring(g Genotypes, offspring []AnimalID, m MarkerID) (Genotype, bool) {
	if len(offspring) == 0 {
		return NoCall, false
	}
	m1, m2, ok := in.Markers.Alleles(m)
	if !ok {
		return NoCall, false
	}
	var n1, n2 int
	for _, off := range offspring {
		o := g.Get(off, m)
		switch {
		case o.Missing():
			continue
		case o.Heterozygous():
			return NoCall, false
		case o[0] == m1:
			n1++
		case o[0] == m2:
			n2++
		default:
			return NoCall, false
		}
	}
	if n1 > 0 && n2 > 0 {
		return Genotype{m1, m2}, true
	}
	if n1 > in.OffspringLimit {
		return Hom(m1), true
	}
	if n2 > in.OffspringLimit {
		return Hom(m2), true
	}
	return NoCall, false
}

// orient puts a heterozygous guess into paternal/maternal order when a
// homozygous parent pins one of the slots.
func orient(x, sire, dam Genotype) Genotype {
	if !x.Heterozygous() {
		return x
	}
	if (sire.Homozygous() && sire[0] == x[1]) || (dam.Homozygous() && dam[0] == x[0]) {
		return x.Swap()
	}
	return x
}

// LegalGenotype proposes a genotype for animal at m. Offspring evidence wins
// when it proves heterozygosity; otherwise two homozygous parents fix the
// answer; a homozygous offspring guess must be carried by both parents.
func (in *Inferrer) LegalGenotype(g Genotypes, animal, sire, dam AnimalID, m MarkerID) (Genotype, bool) {
	s, d := g.Get(sire, m), g.Get(dam, m)
	o, ok := in.FromOffspring(g, in.Pedigree.Offspring(animal), m)
	if !ok {
		if s.Homozygous() && d.Homozygous() {
			return Genotype{s[0], d[0]}, true
		}
		return NoCall, false
	}
	if o.Heterozygous() {
		if s.Homozygous() && d.Homozygous() && s[0] == d[0] {
			in.Logger.Debug("offspring override parents",
				"animal", in.Pedigree.Name(animal),
				"marker", in.Markers.Name(m),
				"offspring", o.String(),
				"parents", s[0].String(),
			)
		}
		return orient(o, s, d), true
	}
	if s.Has(o[0]) && d.Has(o[0]) {
		return o, true
	}
	return NoCall, false
}

// LegalGenotypeFor looks the parents up in the pedigree.
func (in *Inferrer) LegalGenotypeFor(g Genotypes, animal AnimalID, m MarkerID) (Genotype, bool) {
	return in.LegalGenotype(g, animal, in.Pedigree.Sire(animal), in.Pedigree.Dam(animal), m)
}
