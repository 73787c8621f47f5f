package genoscrub

// Genotypes is the read side of a Store.
type Genotypes interface {
	Get(a AnimalID, m MarkerID) Genotype
}

type Edit struct {
	Animal   AnimalID
	Marker   MarkerID
	Genotype Genotype
}

// Store is the animal x marker genotype table. Rows exist only for animals
// that were genotyped; everything else reads as NoCall.
type Store struct {
	nmarkers int
	rows     [][]Genotype
}

func NewStore(nanimals, nmarkers int) *Store {
	return &Store{nmarkers: nmarkers, rows: make([][]Genotype, nanimals)}
}

func (s *Store) Markers() int {
	return s.nmarkers
}

func (s *Store) Genotyped(a AnimalID) bool {
	return a >= 0 && int(a) < len(s.rows) && s.rows[a] != nil
}

func (s *Store) Get(a AnimalID, m MarkerID) Genotype {
	if !s.Genotyped(a) || m < 0 || int(m) >= s.nmarkers {
		return NoCall
	}
	return s.rows[a][m]
}

// Set normalizes g and writes it, creating the row on first write. Writes to
// unknown coordinates are dropped.
func (s *Store) Set(a AnimalID, m MarkerID, g Genotype) {
	if a < 0 || int(a) >= len(s.rows) || m < 0 || int(m) >= s.nmarkers {
		return
	}
	if s.rows[a] == nil {
		s.rows[a] = make([]Genotype, s.nmarkers)
	}
	s.rows[a][m] = NewGenotype(g[0], g[1])
}

func (s *Store) Apply(edits []Edit) {
	for _, e := range edits {
		s.Set(e.Animal, e.Marker, e.Genotype)
	}
}

// Clone returns an independent copy used as the read snapshot of a pass.
func (s *Store) Clone() *Store {
	out := &Store{nmarkers: s.nmarkers, rows: make([][]Genotype, len(s.rows))}
	for i, row := range s.rows {
		if row != nil {
			out.rows[i] = append([]Genotype(nil), row...)
		}
	}
	return out
}

func (s *Store) Row(a AnimalID) []Genotype {
	if !s.Genotyped(a) {
		return nil
	}
	return s.rows[a]
}
