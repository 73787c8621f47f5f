package genoscrub

import (
	"strings"
)

// Phase symbols. Lower case origins are relative, upper case ones are
// confirmed by a homozygous grandparent.
type Phase byte

const (
	Uninformative Phase = '-'
	Illegal       Phase = 'x'
	OriginA       Phase = 'i'
	OriginB       Phase = 'o'
	AbsoluteA     Phase = 'I'
	AbsoluteB     Phase = 'O'
)

func (p Phase) Informative() bool {
	switch p {
	case OriginA, OriginB, AbsoluteA, AbsoluteB:
		return true
	}
	return false
}

// Origin folds absolute symbols onto their relative form.
func (p Phase) Origin() Phase {
	switch p {
	case AbsoluteA:
		return OriginA
	case AbsoluteB:
		return OriginB
	}
	return p
}

type Track []Phase

func (t Track) Count(p Phase) int {
	n := 0
	for _, s := range t {
		if s == p {
			n++
		}
	}
	return n
}

func (t Track) String() string {
	var b strings.Builder
	b.Grow(len(t))
	for _, s := range t {
		b.WriteByte(byte(s))
	}
	return b.String()
}

// Chunks renders the track in pieces of width symbols.
func (t Track) Chunks(width int) []string {
	s := t.String()
	if width <= 0 {
		return []string{s}
	}
	var out []string
	for i := 0; i < len(s); i += width {
		out = append(out, s[i:min(i+width, len(s))])
	}
	return out
}

// ClassifySwitch says which parental allele the child allele matches.
func ClassifySwitch(child, p1, p2 Allele, absolute bool) Phase {
	if p1.Known() && p2.Known() && p1 != p2 && child.Known() && child != p1 && child != p2 {
		return Illegal
	}
	if !p1.Known() || !p2.Known() || p1 == p2 || !child.Known() {
		return Uninformative
	}
	a, b := OriginA, OriginB
	if absolute {
		a, b = AbsoluteA, AbsoluteB
	}
	if child == p1 {
		return a
	}
	return b
}

type Phaser struct {
	Pedigree *Pedigree
	Markers  *MarkerTable
}

func NewPhaser(p *Pedigree, mt *MarkerTable) *Phaser {
	return &Phaser{Pedigree: p, Markers: mt}
}

func (ph *Phaser) track(g Genotypes, animal, parent AnimalID, slot int) Track {
	t := make(Track, ph.Markers.Len())
	// sire of the parent anchors absolute origin
	grand := ph.Pedigree.Sire(parent)
	for _, m := range ph.Markers.IDs() {
		p := g.Get(parent, m)
		if parent == NoAnimal || p.Missing() {
			t[m] = Uninformative
			continue
		}
		abs := g.Get(grand, m).Homozygous()
		t[m] = ClassifySwitch(g.Get(animal, m)[slot], p[0], p[1], abs)
	}
	return t
}

// Phase compares the paternal slot of animal with sire and the maternal slot
// with dam.
func (ph *Phaser) Phase(g Genotypes, animal, sire, dam AnimalID) (pat, mat Track) {
	return ph.track(g, animal, sire, 0), ph.track(g, animal, dam, 1)
}

// PhaseBestOrientation retries with sire and dam swapped when illegal symbols
// show up and keeps whichever orientation has fewer of them.
func (ph *Phaser) PhaseBestOrientation(g Genotypes, animal, sire, dam AnimalID) (pat, mat Track, swapped bool) {
	pat, mat = ph.Phase(g, animal, sire, dam)
	bad := pat.Count(Illegal) + mat.Count(Illegal)
	if bad == 0 {
		return pat, mat, false
	}
	// slot 0 against dam, slot 1 against sire
	spat, smat := ph.track(g, animal, sire, 1), ph.track(g, animal, dam, 0)
	if spat.Count(Illegal)+smat.Count(Illegal) < bad {
		return spat, smat, true
	}
	return pat, mat, false
}

// SafePhase tracks which grandparental allele passed through a heterozygous
// parent, using only markers where the animal and grandparent are
// homozygous.
func (ph *Phaser) SafePhase(g Genotypes, animal, parent, grand AnimalID) Track {
	t := make(Track, ph.Markers.Len())
	for _, m := range ph.Markers.IDs() {
		a, p, gp := g.Get(animal, m), g.Get(parent, m), g.Get(grand, m)
		switch {
		case !a.Homozygous() || !p.Heterozygous() || !gp.Homozygous():
			t[m] = Uninformative
		case a[0] == gp[0]:
			t[m] = AbsoluteA
		default:
			t[m] = AbsoluteB
		}
	}
	return t
}

type PhaseReportOpts struct {
	// Focal keeps only offspring of this animal.
	Focal string
	// Safe reports the grandsire-anchored track of the sire only.
	Safe       bool
	DoubleSize int
}

func innerPositions(ivs []Interval) []int {
	seen := map[int]bool{}
	var out []int
	for _, iv := range ivs {
		for _, p := range iv.Inner {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func (ph *Phaser) line(animal, parent AnimalID, role string, t Track, size int) PhaseLine {
	return PhaseLine{
		Animal:         ph.Pedigree.Name(animal),
		Parent:         ph.Pedigree.Name(parent),
		Role:           role,
		Recombinations: len(Detector{}.Scan(t)),
		Track:          t,
		Flagged:        innerPositions(Detector{Size: size}.Scan(t)),
	}
}

// Report phases every genotyped animal with a known parent.
func (ph *Phaser) Report(g *Store, opts PhaseReportOpts) []PhaseLine {
	var out []PhaseLine
	for _, id := range ph.Pedigree.ProgenyOf(opts.Focal, ph.Pedigree.IDs()) {
		if !g.Genotyped(id) || !ph.Pedigree.HasParent(id) {
			continue
		}
		sire, dam := ph.Pedigree.Sire(id), ph.Pedigree.Dam(id)
		if opts.Safe {
			if grand := ph.Pedigree.Sire(sire); sire != NoAnimal && grand != NoAnimal {
				t := ph.SafePhase(g, id, sire, grand)
				out = append(out, ph.line(id, sire, "sire", t, opts.DoubleSize))
			}
			continue
		}
		pat, mat, _ := ph.PhaseBestOrientation(g, id, sire, dam)
		if sire != NoAnimal {
			out = append(out, ph.line(id, sire, "sire", pat, opts.DoubleSize))
		}
		if dam != NoAnimal {
			out = append(out, ph.line(id, dam, "dam", mat, opts.DoubleSize))
		}
	}
	return out
}
