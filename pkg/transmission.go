package genoscrub

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSqTrio is the transmission disequilibrium statistic for b transmissions
// of one allele against c of the other.
func ChiSqTrio(b, c float64) float64 {
	if b+c == 0 {
		return 0
	}
	return ((b - c) * (b - c)) / (b + c)
}

// Transmission counts the reference alleles heterozygous parents passed to
// genotyped offspring at one marker. Strong distortion usually means a
// miscalled marker rather than biology.
type Transmission struct {
	Marker string
	A1     Allele
	A2     Allele
	T1     int
	T2     int
	ChiSq  float64
	P      float64
}

// transmitted returns the allele x got from parent, or Missing when it is
// ambiguous.
func transmitted(x, parent, other Genotype) Allele {
	if x.Missing() || !parent.Heterozygous() {
		return Missing
	}
	if x.Homozygous() {
		if parent.Has(x[0]) {
			return x[0]
		}
		return Missing
	}
	if other.Missing() || !other.Homozygous() || !x.Has(other[0]) {
		return Missing
	}
	for _, a := range x {
		if a != other[0] && parent.Has(a) {
			return a
		}
	}
	return Missing
}

func Transmissions(ds *Dataset) []Transmission {
	dist := distuv.ChiSquared{K: 1}
	out := make([]Transmission, 0, ds.Markers.Len())
	for _, m := range ds.Markers.IDs() {
		m1, m2, ok := ds.Markers.Alleles(m)
		t := Transmission{Marker: ds.Markers.Name(m), A1: m1, A2: m2, P: 1}
		if !ok || m1 == m2 {
			out = append(out, t)
			continue
		}
		for _, id := range ds.Pedigree.IDs() {
			x := ds.Store.Get(id, m)
			sire, dam := ds.Pedigree.Sire(id), ds.Pedigree.Dam(id)
			for _, pair := range [][2]AnimalID{{sire, dam}, {dam, sire}} {
				switch transmitted(x, ds.Store.Get(pair[0], m), ds.Store.Get(pair[1], m)) {
				case m1:
					t.T1++
				case m2:
					t.T2++
				}
			}
		}
		t.ChiSq = ChiSqTrio(float64(t.T1), float64(t.T2))
		t.P = 1 - dist.CDF(t.ChiSq)
		out = append(out, t)
	}
	return out
}

func WriteTransmissions(w io.Writer, runID string, ts []Transmission) error {
	if e := writeRunHeader(w, runID); e != nil {
		return e
	}
	if _, e := fmt.Fprintln(w, "#marker\ta1\ta2\tt1\tt2\tchisq\tp"); e != nil {
		return e
	}
	for _, t := range ts {
		_, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%.4f\t%.4g\n", t.Marker, t.A1, t.A2, t.T1, t.T2, t.ChiSq, t.P)
		if e != nil {
			return e
		}
	}
	return nil
}
