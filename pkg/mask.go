package genoscrub

import (
	"fmt"
	"io"
	"iter"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/iterh"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Masked is one known genotype hidden from the data.
type Masked struct {
	Marker   string
	Animal   string
	Genotype Genotype
}

// Mask blanks each known genotype with probability p and returns what it
// hid, in animal then marker order.
func Mask(ds *Dataset, p float64, src rand.Source) []Masked {
	b := distuv.Bernoulli{P: p, Src: src}
	var out []Masked
	for _, id := range ds.Pedigree.IDs() {
		if !ds.Store.Genotyped(id) {
			continue
		}
		for _, m := range ds.Markers.IDs() {
			g := ds.Store.Get(id, m)
			if g.Missing() || b.Rand() < 1 {
				continue
			}
			out = append(out, Masked{Marker: ds.Markers.Name(m), Animal: ds.Pedigree.Name(id), Genotype: g})
			ds.Store.Set(id, m, NoCall)
		}
	}
	return out
}

func WriteTruth(w io.Writer, ms []Masked) error {
	for _, m := range ms {
		if _, e := fmt.Fprintf(w, "%v\t%v\t0\t0\t%v\t%v\n", m.Marker, m.Animal, m.Genotype[0], m.Genotype[1]); e != nil {
			return e
		}
	}
	return nil
}

func ParseTruth(r io.Reader) iter.Seq2[Masked, error] {
	return func(y func(Masked, error) bool) {
		hl := func(e error, l []string) error {
			return fmt.Errorf("ParseTruth: line %v; %w", l, e)
		}
		cr := csvh.CsvIn(r)
		for l, e := cr.Read(); e != io.EOF; l, e = cr.Read() {
			if e != nil {
				if !y(Masked{}, hl(e, l)) {
					return
				}
				continue
			}
			if len(l) != 6 {
				if !y(Masked{}, hl(ErrMalformedLine, l)) {
					return
				}
				continue
			}
			m := Masked{Marker: l[0], Animal: l[1], Genotype: ParseGenotype(l[4], l[5])}
			if !y(m, nil) {
				return
			}
		}
	}
}

func ParseTruthPath(path string) ([]Masked, error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, e
	}
	defer r.Close()
	return iterh.CollectWithError(ParseTruth(r))
}

type MaskEval struct {
	Masked  int
	Called  int
	Correct int
	// Unknown counts truth rows whose animal or marker is absent.
	Unknown int
}

func (e MaskEval) CallRate() float64 {
	if e.Masked == 0 {
		return 0
	}
	return float64(e.Called) / float64(e.Masked)
}

func (e MaskEval) Concordance() float64 {
	if e.Called == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.Called)
}

// EvaluateMask compares imputed genotypes in ds with the hidden truth,
// ignoring allele order.
func EvaluateMask(ds *Dataset, truth []Masked) MaskEval {
	var ev MaskEval
	for _, t := range truth {
		ev.Masked++
		id, ok1 := ds.Pedigree.Lookup(t.Animal)
		m, ok2 := ds.Markers.Lookup(t.Marker)
		if !ok1 || !ok2 {
			ev.Unknown++
			continue
		}
		g := ds.Store.Get(id, m)
		if g.Missing() {
			continue
		}
		ev.Called++
		if g.SameAlleles(t.Genotype) {
			ev.Correct++
		}
	}
	return ev
}
