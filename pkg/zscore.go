package genoscrub

import (
	"github.com/montanaflynn/stats"
)

const OutlierZ = 3.0

func Zscores(fs stats.Float64Data) ([]float64, error) {
	mean, e := stats.Mean(fs)
	if e != nil {
		return nil, e
	}
	sd, e := stats.StandardDeviation(fs)
	if e != nil {
		return nil, e
	}
	out := make([]float64, 0, len(fs))
	for _, f := range fs {
		if sd == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (f-mean)/sd)
	}
	return out, nil
}

type AnimalDiscord struct {
	Animal  string
	Count   int
	Z       float64
	Outlier bool
}

// Discords scores each genotyped animal's blanking count against the rest and
// returns the animals with at least one.
func Discords(ds *Dataset, counts []int) ([]AnimalDiscord, error) {
	var ids []AnimalID
	var fs stats.Float64Data
	for _, id := range ds.Pedigree.IDs() {
		if !ds.Store.Genotyped(id) || int(id) >= len(counts) {
			continue
		}
		ids = append(ids, id)
		fs = append(fs, float64(counts[id]))
	}
	if len(fs) == 0 {
		return nil, nil
	}
	zs, e := Zscores(fs)
	if e != nil {
		return nil, e
	}
	var out []AnimalDiscord
	for i, id := range ids {
		if counts[id] == 0 {
			continue
		}
		out = append(out, AnimalDiscord{
			Animal:  ds.Pedigree.Name(id),
			Count:   counts[id],
			Z:       zs[i],
			Outlier: zs[i] >= OutlierZ || zs[i] <= -OutlierZ,
		})
	}
	return out, nil
}

type CorrectionStats struct {
	Markers        int
	Corrected      int
	MeanFraction   float64
	MedianFraction float64
}

func SummarizeCorrections(sums []MarkerSummary) (CorrectionStats, error) {
	cs := CorrectionStats{Markers: len(sums)}
	if len(sums) == 0 {
		return cs, nil
	}
	fs := make(stats.Float64Data, 0, len(sums))
	for _, s := range sums {
		cs.Corrected += s.Corrected
		fs = append(fs, s.Fraction)
	}
	var e error
	if cs.MeanFraction, e = stats.Mean(fs); e != nil {
		return cs, e
	}
	if cs.MedianFraction, e = stats.Median(fs); e != nil {
		return cs, e
	}
	return cs, nil
}
