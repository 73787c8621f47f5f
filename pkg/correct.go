package genoscrub

import (
	"log/slog"

	"golang.org/x/exp/slices"
)

const DefaultBlameThreshold = 2

type MarkerSummary struct {
	Marker    string
	Corrected int
	Fraction  float64
}

type CorrectionReport struct {
	Markers []MarkerSummary
	// Discords counts blankings per animal, indexed by AnimalID.
	Discords []int
}

// Corrector runs one sweep per marker: conflicts are blamed on a parent when
// more than BlameThreshold offspring accuse it, otherwise on the accusing
// offspring. Blanked animals are then re-inferred.
type Corrector struct {
	Pedigree       *Pedigree
	Markers        *MarkerTable
	Inferrer       *Inferrer
	BlameThreshold int
	// ImputeMissing also queues animals that were already missing.
	ImputeMissing bool
	Log           *ChangeLog
	Logger        *slog.Logger
}

func NewCorrector(p *Pedigree, mt *MarkerTable, in *Inferrer, cfg Config, log *ChangeLog, l *slog.Logger) *Corrector {
	return &Corrector{
		Pedigree:       p,
		Markers:        mt,
		Inferrer:       in,
		BlameThreshold: cfg.BlameThreshold,
		ImputeMissing:  cfg.ImputeMissing,
		Log:            log,
		Logger:         orDiscard(l),
	}
}

func (c *Corrector) genotyped(s *Store) []AnimalID {
	var out []AnimalID
	for _, id := range c.Pedigree.IDs() {
		if s.Genotyped(id) {
			out = append(out, id)
		}
	}
	return out
}

func (c *Corrector) record(a Action, animal AnimalID, m MarkerID, before, after Genotype) {
	c.Log.Record(Change{
		Action: a,
		Animal: c.Pedigree.Name(animal),
		Marker: c.Markers.Name(m),
		Before: before,
		After:  after,
	})
}

// CorrectMarker classifies against the store as it was on entry, applies all
// blankings, then infers every queued animal from the blanked state and
// applies the repairs together.
func (c *Corrector) CorrectMarker(s *Store, m MarkerID, discords []int) MarkerSummary {
	population := c.genotyped(s)
	counts := map[AnimalID]int{}
	accusers := map[AnimalID][]AnimalID{}
	var queue []AnimalID
	queued := map[AnimalID]bool{}
	enqueue := func(id AnimalID) {
		if !queued[id] {
			queued[id] = true
			queue = append(queue, id)
		}
	}

	for _, id := range population {
		g := s.Get(id, m)
		if g.Missing() {
			if c.ImputeMissing {
				enqueue(id)
			}
			continue
		}
		sire, dam := c.Pedigree.Sire(id), c.Pedigree.Dam(id)
		if sire == NoAnimal && dam == NoAnimal {
			continue
		}
		res := Classify(g, s.Get(sire, m), s.Get(dam, m))
		if res.BlamesSire() {
			counts[sire]++
			accusers[sire] = append(accusers[sire], id)
		}
		if res.BlamesDam() {
			counts[dam]++
			accusers[dam] = append(accusers[dam], id)
		}
	}

	parents := make([]AnimalID, 0, len(counts))
	for p := range counts {
		parents = append(parents, p)
	}
	slices.Sort(parents)

	var blanks []Edit
	blanked := map[AnimalID]bool{}
	blank := func(a Action, id AnimalID) {
		if blanked[id] {
			return
		}
		blanked[id] = true
		c.record(a, id, m, s.Get(id, m), NoCall)
		blanks = append(blanks, Edit{Animal: id, Marker: m, Genotype: NoCall})
		enqueue(id)
		if discords != nil && int(id) < len(discords) {
			discords[id]++
		}
	}
	for _, p := range parents {
		if counts[p] > c.BlameThreshold {
			blank(ParentBlanked, p)
			continue
		}
		for _, off := range accusers[p] {
			blank(OffspringBlanked, off)
		}
	}
	s.Apply(blanks)

	var repairs []Edit
	for _, id := range queue {
		x, ok := c.Inferrer.LegalGenotypeFor(s, id, m)
		if !ok {
			continue
		}
		c.record(Inferred, id, m, s.Get(id, m), x)
		repairs = append(repairs, Edit{Animal: id, Marker: m, Genotype: x})
	}
	s.Apply(repairs)

	sum := MarkerSummary{Marker: c.Markers.Name(m), Corrected: len(blanks)}
	if n := c.Pedigree.Len(); n > 0 {
		sum.Fraction = float64(sum.Corrected) / float64(n)
	}
	if sum.Corrected > 0 {
		c.Logger.Debug("marker corrected", "marker", sum.Marker, "corrected", sum.Corrected, "repaired", len(repairs))
	}
	return sum
}

// Run sweeps every marker once. Markers share no state, so their order does
// not matter.
func (c *Corrector) Run(s *Store) CorrectionReport {
	rep := CorrectionReport{Discords: make([]int, c.Pedigree.Len())}
	for _, m := range c.Markers.IDs() {
		rep.Markers = append(rep.Markers, c.CorrectMarker(s, m, rep.Discords))
	}
	return rep
}
