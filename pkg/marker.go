package genoscrub

import (
	"fmt"
)

// MarkerID is the marker's rank in the table.
type MarkerID int

const NoMarker MarkerID = -1

type Marker struct {
	Name  string
	Chrom string
	Pos   int64
	Rank  int

	// alleles in observation order; nalleles == 1 is a monomorphic marker
	alleles      [2]Allele
	nalleles     int
	MultiAllelic bool
}

type MarkerTable struct {
	markers []Marker
	byName  map[string]MarkerID
}

func NewMarkerTable() *MarkerTable {
	return &MarkerTable{byName: map[string]MarkerID{}}
}

// Add registers a marker, returning the existing handle when the name is
// already known.
func (t *MarkerTable) Add(name, chrom string, pos int64) MarkerID {
	if id, ok := t.byName[name]; ok {
		return id
	}
	id := MarkerID(len(t.markers))
	t.markers = append(t.markers, Marker{Name: name, Chrom: chrom, Pos: pos, Rank: int(id)})
	t.byName[name] = id
	return id
}

func (t *MarkerTable) Len() int {
	return len(t.markers)
}

func (t *MarkerTable) Lookup(name string) (MarkerID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

func (t *MarkerTable) valid(id MarkerID) bool {
	return id >= 0 && int(id) < len(t.markers)
}

func (t *MarkerTable) Marker(id MarkerID) (Marker, bool) {
	if !t.valid(id) {
		return Marker{}, false
	}
	return t.markers[id], true
}

func (t *MarkerTable) Name(id MarkerID) string {
	if !t.valid(id) {
		return "0"
	}
	return t.markers[id].Name
}

func (t *MarkerTable) IDs() []MarkerID {
	out := make([]MarkerID, 0, len(t.markers))
	for i := range t.markers {
		out = append(out, MarkerID(i))
	}
	return out
}

// SetAlleles installs a supplied reference pair, replacing anything observed.
func (t *MarkerTable) SetAlleles(id MarkerID, a1, a2 Allele) error {
	if !t.valid(id) {
		return fmt.Errorf("SetAlleles: %w %v", ErrUnknownMarker, id)
	}
	m := &t.markers[id]
	m.nalleles = 0
	m.MultiAllelic = false
	for _, a := range []Allele{a1, a2} {
		if a.Known() && (m.nalleles == 0 || m.alleles[0] != a) {
			m.alleles[m.nalleles] = a
			m.nalleles++
		}
	}
	return nil
}

// Observe adds the alleles of g to the marker's allele set. A third distinct
// allele marks the marker multi-allelic and returns ErrMultiAllelic the first
// time it happens.
func (t *MarkerTable) Observe(id MarkerID, g Genotype) error {
	if !t.valid(id) || g.Missing() {
		return nil
	}
	m := &t.markers[id]
	if m.MultiAllelic {
		return nil
	}
	for _, a := range g {
		if m.nalleles > 0 && m.alleles[0] == a {
			continue
		}
		if m.nalleles > 1 && m.alleles[1] == a {
			continue
		}
		if m.nalleles == 2 {
			m.MultiAllelic = true
			return fmt.Errorf("marker %v: %w: %v %v %v", m.Name, ErrMultiAllelic, m.alleles[0], m.alleles[1], a)
		}
		m.alleles[m.nalleles] = a
		m.nalleles++
	}
	return nil
}

// Alleles returns the sorted reference pair. A monomorphic marker returns the
// same allele twice. ok is false when nothing was observed or the marker is
// multi-allelic.
func (t *MarkerTable) Alleles(id MarkerID) (m1, m2 Allele, ok bool) {
	if !t.valid(id) {
		return Missing, Missing, false
	}
	m := t.markers[id]
	if m.MultiAllelic {
		return Missing, Missing, false
	}
	switch m.nalleles {
	case 0:
		return Missing, Missing, false
	case 1:
		return m.alleles[0], m.alleles[0], true
	}
	m1, m2 = m.alleles[0], m.alleles[1]
	if m2 < m1 {
		m1, m2 = m2, m1
	}
	return m1, m2, true
}

// Other returns the reference allele that is not a, or Missing.
func (t *MarkerTable) Other(id MarkerID, a Allele) Allele {
	m1, m2, ok := t.Alleles(id)
	if !ok || m1 == m2 {
		return Missing
	}
	switch a {
	case m1:
		return m2
	case m2:
		return m1
	}
	return Missing
}
