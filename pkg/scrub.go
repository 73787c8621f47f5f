package genoscrub

import (
	"log/slog"
)

const (
	DefaultMaxIterations = 50
	DefaultDoubleSize    = 1
)

type ScrubResult struct {
	Iterations int
	Changes    int
	Converged  bool
}

func (r ScrubResult) Err() error {
	if r.Converged {
		return nil
	}
	return ErrNotConverged
}

// Scrubber repeats phase-driven repair until a pass changes nothing or
// MaxIterations passes have run. Each pass reads a snapshot and commits its
// edits at the end.
type Scrubber struct {
	Pedigree      *Pedigree
	Markers       *MarkerTable
	Phaser        *Phaser
	Inferrer      *Inferrer
	Detector      Detector
	MaxIterations int
	Log           *ChangeLog
	Logger        *slog.Logger
}

func NewScrubber(p *Pedigree, mt *MarkerTable, in *Inferrer, cfg Config, log *ChangeLog, l *slog.Logger) *Scrubber {
	return &Scrubber{
		Pedigree:      p,
		Markers:       mt,
		Phaser:        NewPhaser(p, mt),
		Inferrer:      in,
		Detector:      Detector{Size: cfg.DoubleSize},
		MaxIterations: cfg.MaxIterations,
		Log:           log,
		Logger:        orDiscard(l),
	}
}

func suspect(t Track, flagged map[int]bool) map[int]bool {
	out := map[int]bool{}
	for i, s := range t {
		if s == Illegal || flagged[i] {
			out[i] = true
		}
	}
	return out
}

// ScrubAnimal proposes edits for one animal from the snapshot.
func (sc *Scrubber) ScrubAnimal(snap Genotypes, id AnimalID) []Edit {
	sire, dam := sc.Pedigree.Sire(id), sc.Pedigree.Dam(id)
	pat, mat := sc.Phaser.Phase(snap, id, sire, dam)
	bad := [2]map[int]bool{
		suspect(pat, Flagged(sc.Detector.Scan(pat))),
		suspect(mat, Flagged(sc.Detector.Scan(mat))),
	}

	var edits []Edit
	for _, m := range sc.Markers.IDs() {
		if !bad[0][int(m)] && !bad[1][int(m)] {
			continue
		}
		cur := snap.Get(id, m)
		next := NoCall
		if x, ok := sc.Inferrer.LegalGenotype(snap, id, sire, dam, m); ok {
			// an unflagged slot keeps its allele
			valid := true
			for i := range x {
				if !bad[i][int(m)] && x[i] != cur[i] {
					valid = false
				}
			}
			if valid {
				next = x
			}
		}
		if next == cur {
			continue
		}
		edits = append(edits, Edit{Animal: id, Marker: m, Genotype: next})
	}
	return edits
}

// Pass runs one iteration and returns the number of changed genotypes.
func (sc *Scrubber) Pass(s *Store) int {
	snap := s.Clone()
	var edits []Edit
	for _, id := range sc.Pedigree.IDs() {
		if !sc.Pedigree.HasParent(id) || !snap.Genotyped(id) {
			continue
		}
		edits = append(edits, sc.ScrubAnimal(snap, id)...)
	}
	for _, e := range edits {
		sc.Log.Record(Change{
			Action: Scrubbed,
			Animal: sc.Pedigree.Name(e.Animal),
			Marker: sc.Markers.Name(e.Marker),
			Before: snap.Get(e.Animal, e.Marker),
			After:  e.Genotype,
		})
	}
	s.Apply(edits)
	return len(edits)
}

func (sc *Scrubber) Run(s *Store) ScrubResult {
	var res ScrubResult
	for res.Iterations < sc.MaxIterations {
		res.Iterations++
		n := sc.Pass(s)
		res.Changes += n
		sc.Logger.Debug("scrub pass", "iteration", res.Iterations, "changes", n)
		if n == 0 {
			res.Converged = true
			return res
		}
	}
	sc.Logger.Warn("scrub did not converge", "iterations", res.Iterations, "changes", res.Changes)
	return res
}
