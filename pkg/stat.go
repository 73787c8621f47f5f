package genoscrub

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// GenoCounts tallies genotype classes against a marker's reference pair.
type GenoCounts struct {
	Blank int
	Hom1  int
	Het   int
	Hom2  int
	Wrong int
}

func (c *GenoCounts) Add(g Genotype, m1, m2 Allele, ok bool) {
	switch {
	case g.Missing():
		c.Blank++
	case !ok:
		c.Wrong++
	case g.Homozygous() && g[0] == m1:
		c.Hom1++
	case g.Homozygous() && g[0] == m2:
		c.Hom2++
	case g.Has(m1) && g.Has(m2):
		c.Het++
	default:
		c.Wrong++
	}
}

func (c GenoCounts) Called() int {
	return c.Hom1 + c.Het + c.Hom2
}

type MarkerStat struct {
	Marker string
	A1     Allele
	A2     Allele
	GenoCounts
	Count1 int
	Count2 int
	MAF    float64
	ChiSq  float64
	P      float64
}

// HardyWeinberg returns the one degree of freedom chi-square for the observed
// genotype classes and its p-value.
func HardyWeinberg(hom1, het, hom2 int) (chisq, p float64) {
	n := float64(hom1 + het + hom2)
	if n == 0 {
		return 0, 1
	}
	f1 := (2*float64(hom1) + float64(het)) / (2 * n)
	f2 := 1 - f1
	obs := []float64{float64(hom1), float64(het), float64(hom2)}
	exp := []float64{f1 * f1 * n, 2 * f1 * f2 * n, f2 * f2 * n}
	for i := range obs {
		if exp[i] == 0 {
			continue
		}
		chisq += (obs[i] - exp[i]) * (obs[i] - exp[i]) / exp[i]
	}
	dist := distuv.ChiSquared{K: 1}
	return chisq, 1 - dist.CDF(math.Abs(chisq))
}

func MarkerStats(ds *Dataset) []MarkerStat {
	out := make([]MarkerStat, 0, ds.Markers.Len())
	for _, m := range ds.Markers.IDs() {
		m1, m2, ok := ds.Markers.Alleles(m)
		st := MarkerStat{Marker: ds.Markers.Name(m), A1: m1, A2: m2}
		for _, id := range ds.Pedigree.IDs() {
			if ds.Store.Genotyped(id) {
				st.Add(ds.Store.Get(id, m), m1, m2, ok)
			}
		}
		st.Count1 = 2*st.Hom1 + st.Het
		st.Count2 = 2*st.Hom2 + st.Het
		if tot := st.Count1 + st.Count2; tot > 0 {
			st.MAF = float64(min(st.Count1, st.Count2)) / float64(tot)
		}
		st.ChiSq, st.P = HardyWeinberg(st.Hom1, st.Het, st.Hom2)
		out = append(out, st)
	}
	return out
}

type AnimalStat struct {
	Animal string
	GenoCounts
}

func AnimalStats(ds *Dataset) []AnimalStat {
	var out []AnimalStat
	for _, id := range ds.Pedigree.IDs() {
		if !ds.Store.Genotyped(id) {
			continue
		}
		st := AnimalStat{Animal: ds.Pedigree.Name(id)}
		for _, m := range ds.Markers.IDs() {
			m1, m2, ok := ds.Markers.Alleles(m)
			st.Add(ds.Store.Get(id, m), m1, m2, ok)
		}
		out = append(out, st)
	}
	return out
}

func WriteMarkerStats(w io.Writer, runID string, sts []MarkerStat) error {
	if e := writeRunHeader(w, runID); e != nil {
		return e
	}
	if _, e := fmt.Fprintln(w, "#marker\tblank\thom1\thet\thom2\twrong\tmaf\tchisq\tp"); e != nil {
		return e
	}
	for _, s := range sts {
		_, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\t%.4f\t%.4f\t%.4g\n",
			s.Marker, s.Blank, s.Hom1, s.Het, s.Hom2, s.Wrong, s.MAF, s.ChiSq, s.P)
		if e != nil {
			return e
		}
	}
	return nil
}

func WriteAnimalStats(w io.Writer, sts []AnimalStat) error {
	if _, e := fmt.Fprintln(w, "#animal\tblank\thom1\thet\thom2\twrong"); e != nil {
		return e
	}
	for _, s := range sts {
		if _, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n", s.Animal, s.Blank, s.Hom1, s.Het, s.Hom2, s.Wrong); e != nil {
			return e
		}
	}
	return nil
}

// WriteAlleleTable writes "name rank a1 a2 count1 count2" with the major
// allele first.
func WriteAlleleTable(w io.Writer, sts []MarkerStat) error {
	for i, s := range sts {
		a1, a2, c1, c2 := s.A1, s.A2, s.Count1, s.Count2
		if c2 > c1 {
			a1, a2, c1, c2 = a2, a1, c2, c1
		}
		if _, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n", s.Marker, i, a1, a2, c1, c2); e != nil {
			return e
		}
	}
	return nil
}
