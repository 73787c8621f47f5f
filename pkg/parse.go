package genoscrub

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/iterh"
	"golang.org/x/sync/errgroup"
)

const maxLine = 1 << 28

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 1<<16), maxLine)
	return s
}

func ShouldSkipLine(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || strings.HasPrefix(t, "#")
}

// openMaybe reads stdin for an empty path.
func openMaybe(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return csvh.OpenMaybeGz(path)
}

// GenoRow is one line of a genotype file. The header line only sets Markers.
type GenoRow struct {
	Markers   []string
	Animal    string
	Sire      string
	Dam       string
	Genotypes []Genotype
}

func (r GenoRow) Header() bool {
	return r.Markers != nil
}

func ParseGenoLine(line string) (GenoRow, error) {
	if strings.HasPrefix(line, "#") {
		return GenoRow{Markers: append([]string{}, strings.Fields(strings.TrimPrefix(line, "#"))...)}, nil
	}
	f := strings.Fields(line)
	if len(f) < 3 || (len(f)-3)%2 != 0 {
		return GenoRow{}, fmt.Errorf("%w: %v fields", ErrMalformedLine, len(f))
	}
	row := GenoRow{Animal: f[0], Sire: f[1], Dam: f[2], Genotypes: make([]Genotype, 0, (len(f)-3)/2)}
	for i := 3; i < len(f); i += 2 {
		row.Genotypes = append(row.Genotypes, ParseGenotype(f[i], f[i+1]))
	}
	return row, nil
}

func ParseGenotypes(r io.Reader) iter.Seq2[GenoRow, error] {
	return func(y func(GenoRow, error) bool) {
		h := csvh.Handle0("ParseGenotypes: %w")
		s := newScanner(r)
		for i := 1; s.Scan(); i++ {
			if strings.TrimSpace(s.Text()) == "" {
				continue
			}
			row, e := ParseGenoLine(s.Text())
			if e != nil {
				e = fmt.Errorf("line %v: %w", i, e)
				if !y(row, h(e)) {
					return
				}
				continue
			}
			if !y(row, nil) {
				return
			}
		}
		if e := s.Err(); e != nil {
			y(GenoRow{}, h(e))
		}
	}
}

func ParseGenotypesPath(path string) iter.Seq2[GenoRow, error] {
	return func(y func(GenoRow, error) bool) {
		r, e := openMaybe(path)
		if e != nil {
			y(GenoRow{}, e)
			return
		}
		defer r.Close()
		for row, e := range ParseGenotypes(r) {
			if !y(row, e) {
				return
			}
		}
	}
}

// ParsePedEntry reads "animal [sire] [dam] [family] [sex] [phenotype]".
func ParsePedEntry(s string) (PedEntry, error) {
	line := strings.Fields(s)
	p := PedEntry{PaternalID: "0", MaternalID: "0"}
	if len(line) < 1 {
		return p, fmt.Errorf("%w: empty", ErrMalformedLine)
	}
	ptrs := []any{&p.IndividualID, &p.PaternalID, &p.MaternalID, &p.FamilyID, &p.Sex, &p.Phenotype}
	if len(line) > len(ptrs) {
		line = line[:len(ptrs)]
	}
	_, e := csvh.Scan(line, ptrs[:len(line)]...)
	return p, e
}

func ParsePed(r io.Reader) iter.Seq2[PedEntry, error] {
	return func(y func(PedEntry, error) bool) {
		hl := func(e error, i int) error {
			return fmt.Errorf("ParsePed: line %v; %w", i, e)
		}
		s := newScanner(r)
		for i := 1; s.Scan(); i++ {
			if ShouldSkipLine(s.Text()) {
				continue
			}
			p, e := ParsePedEntry(s.Text())
			if e != nil {
				e = hl(e, i)
			}
			if !y(p, e) {
				return
			}
		}
		if e := s.Err(); e != nil {
			y(PedEntry{}, fmt.Errorf("ParsePed: %w", e))
		}
	}
}

// ParsePedSafe logs and skips lines that do not parse.
func ParsePedSafe(r io.Reader, l *slog.Logger) ([]PedEntry, error) {
	l = orDiscard(l)
	s := newScanner(r)
	var ps []PedEntry
	for i := 1; s.Scan(); i++ {
		if ShouldSkipLine(s.Text()) {
			continue
		}
		p, e := ParsePedEntry(s.Text())
		if e != nil {
			l.Warn("skipping pedigree line", "line", i, "err", e)
			continue
		}
		ps = append(ps, p)
	}
	if e := s.Err(); e != nil {
		return nil, fmt.Errorf("ParsePedSafe: %w", e)
	}
	return ps, nil
}

func ParsePedPath(path string) ([]PedEntry, error) {
	r, e := openMaybe(path)
	if e != nil {
		return nil, e
	}
	defer r.Close()
	return iterh.CollectWithError(ParsePed(r))
}

type MarkerDialect int

const (
	DialectUnknown MarkerDialect = iota
	// name
	DialectSimple
	// name pos a1 a2 [chrom]
	DialectOld
	// chrom rank name pos
	DialectNew
)

type MarkerRecord struct {
	Name  string
	Chrom string
	Pos   int64
	A1    Allele
	A2    Allele
}

// DetectDialect guesses the marker file dialect from its first data line.
func DetectDialect(fields []string) MarkerDialect {
	switch {
	case len(fields) == 1:
		return DialectSimple
	case len(fields) == 5, len(fields) == 4 && len(fields[2]) == 1 && len(fields[3]) == 1:
		return DialectOld
	}
	return DialectNew
}

func ParseMarkerLine(fields []string, d MarkerDialect, rank int) (MarkerRecord, error) {
	m := MarkerRecord{Chrom: "99", Pos: int64(rank)}
	var e error
	switch {
	case d == DialectSimple && len(fields) >= 1:
		m.Name = fields[0]
	case d == DialectOld && (len(fields) == 4 || len(fields) == 5):
		var a1, a2 string
		_, e = csvh.Scan(fields[:4], &m.Name, &m.Pos, &a1, &a2)
		m.A1, m.A2 = ParseAllele(a1), ParseAllele(a2)
		if len(fields) == 5 {
			m.Chrom = fields[4]
		}
	case d == DialectNew && len(fields) == 4:
		var nr int
		_, e = csvh.Scan(fields, &m.Chrom, &nr, &m.Name, &m.Pos)
	default:
		return m, fmt.Errorf("%w: %v fields for marker dialect %v", ErrMalformedLine, len(fields), d)
	}
	return m, e
}

func ParseMarkers(r io.Reader) iter.Seq2[MarkerRecord, error] {
	return func(y func(MarkerRecord, error) bool) {
		h := csvh.Handle0("ParseMarkers: %w")
		s := newScanner(r)
		d := DialectUnknown
		rank := 0
		for i := 1; s.Scan(); i++ {
			if ShouldSkipLine(s.Text()) {
				continue
			}
			f := strings.Fields(s.Text())
			if d == DialectUnknown {
				d = DetectDialect(f)
			}
			m, e := ParseMarkerLine(f, d, rank)
			if e != nil {
				if !y(m, h(fmt.Errorf("line %v: %w", i, e))) {
					return
				}
				continue
			}
			rank++
			if !y(m, nil) {
				return
			}
		}
		if e := s.Err(); e != nil {
			y(MarkerRecord{}, h(e))
		}
	}
}

func ParseMarkersPath(path string) ([]MarkerRecord, error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, e
	}
	defer r.Close()
	return iterh.CollectWithError(ParseMarkers(r))
}

// Dataset is everything the engines need: pedigree, marker table and
// genotypes.
type Dataset struct {
	Pedigree *Pedigree
	Markers  *MarkerTable
	Store    *Store
}

func genoEntries(rows []GenoRow, withParents bool) []PedEntry {
	var ps []PedEntry
	for _, r := range rows {
		if r.Header() {
			continue
		}
		p := PedEntry{IndividualID: r.Animal, PaternalID: "0", MaternalID: "0"}
		if withParents {
			p.PaternalID, p.MaternalID = r.Sire, r.Dam
		}
		ps = append(ps, p)
	}
	return ps
}

// mergeGenotype resolves a repeated genotype for the same animal and marker.
func mergeGenotype(old, g Genotype) Genotype {
	switch {
	case old.SameAlleles(g):
		return old
	case old.Missing():
		return g
	case g.Missing():
		return old
	}
	return NoCall
}

// BuildDataset assembles a dataset. Parents come from peds when given,
// otherwise from the genotype rows. Reference alleles come from marks when
// given, otherwise from the genotypes.
func BuildDataset(peds []PedEntry, marks []MarkerRecord, rows []GenoRow, l *slog.Logger) (*Dataset, error) {
	l = orDiscard(l)
	mt := NewMarkerTable()
	for _, m := range marks {
		id := mt.Add(m.Name, m.Chrom, m.Pos)
		if m.A1.Known() && m.A2.Known() {
			if e := mt.SetAlleles(id, m.A1, m.A2); e != nil {
				return nil, e
			}
		}
	}

	var cols []MarkerID
	for _, r := range rows {
		if r.Header() {
			cols = cols[:0]
			for _, name := range r.Markers {
				cols = append(cols, mt.Add(name, "99", int64(mt.Len())))
			}
		}
	}

	allPeds := append(append([]PedEntry{}, peds...), genoEntries(rows, len(peds) == 0)...)
	ped, e := BuildPedigree(allPeds...)
	if e != nil {
		return nil, fmt.Errorf("BuildDataset: %w", e)
	}

	// without a header, columns follow marker file order, then M0.. names
	ncols := 0
	for _, r := range rows {
		ncols = max(ncols, len(r.Genotypes))
	}
	if cols == nil {
		for j := 0; j < ncols; j++ {
			if j < mt.Len() {
				cols = append(cols, MarkerID(j))
			} else {
				cols = append(cols, mt.Add(fmt.Sprintf("M%v", j), "99", int64(j)))
			}
		}
	}

	s := NewStore(ped.Len(), mt.Len())
	seen := map[AnimalID]bool{}
	for _, r := range rows {
		if r.Header() {
			continue
		}
		if len(r.Genotypes) != len(cols) {
			return nil, fmt.Errorf("BuildDataset: animal %v: %w: %v genotypes for %v markers", r.Animal, ErrMalformedLine, len(r.Genotypes), len(cols))
		}
		id, ok := ped.Lookup(r.Animal)
		if !ok {
			l.Warn("skipping genotype row with unknown animal id", "animal", r.Animal)
			continue
		}
		dup := seen[id]
		if dup {
			l.Warn("duplicate genotype row", "animal", r.Animal)
		}
		seen[id] = true
		for j, g := range r.Genotypes {
			if dup {
				g = mergeGenotype(s.Get(id, cols[j]), g)
			}
			s.Set(id, cols[j], g)
		}
	}

	for _, id := range ped.IDs() {
		for _, m := range mt.IDs() {
			if e := mt.Observe(m, s.Get(id, m)); e != nil {
				l.Warn("marker excluded", "err", e)
			}
		}
	}
	return &Dataset{Pedigree: ped, Markers: mt, Store: s}, nil
}

// LoadDataset reads the three inputs concurrently and builds the dataset.
func LoadDataset(ctx context.Context, cfg Config, l *slog.Logger) (*Dataset, error) {
	var peds []PedEntry
	var marks []MarkerRecord
	var rows []GenoRow

	g, ctx := errgroup.WithContext(ctx)
	if cfg.PedigreePath != "" {
		g.Go(func() error {
			r, e := csvh.OpenMaybeGz(cfg.PedigreePath)
			if e != nil {
				return e
			}
			defer r.Close()
			peds, e = ParsePedSafe(r, l)
			return e
		})
	}
	if cfg.MarkerPath != "" {
		g.Go(func() (e error) {
			marks, e = ParseMarkersPath(cfg.MarkerPath)
			return e
		})
	}
	g.Go(func() error {
		for row, e := range ParseGenotypesPath(cfg.GenotypePath) {
			if e != nil {
				return e
			}
			if e := ctx.Err(); e != nil {
				return e
			}
			rows = append(rows, row)
		}
		return nil
	})
	if e := g.Wait(); e != nil {
		return nil, fmt.Errorf("LoadDataset: %w", e)
	}
	return BuildDataset(peds, marks, rows, l)
}
