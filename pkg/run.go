package genoscrub

import (
	"log/slog"
)

type CheckResult struct {
	Report   CorrectionReport
	Discords []AnimalDiscord
	Stats    CorrectionStats
	Log      *ChangeLog
}

// Check runs one ConflictCorrector sweep over ds.Store.
func Check(ds *Dataset, cfg Config, l *slog.Logger) (CheckResult, error) {
	l = orDiscard(l)
	res := CheckResult{Log: &ChangeLog{}}
	in := NewInferrer(ds.Pedigree, ds.Markers, cfg.OffspringLimit, l)
	c := NewCorrector(ds.Pedigree, ds.Markers, in, cfg, res.Log, l)
	res.Report = c.Run(ds.Store)

	var e error
	if res.Discords, e = Discords(ds, res.Report.Discords); e != nil {
		return res, e
	}
	if res.Stats, e = SummarizeCorrections(res.Report.Markers); e != nil {
		return res, e
	}
	l.Info("check done",
		"markers", res.Stats.Markers,
		"corrected", res.Stats.Corrected,
		"meanFraction", res.Stats.MeanFraction,
		"medianFraction", res.Stats.MedianFraction,
		"inferred", res.Log.Count(Inferred),
	)
	for _, d := range res.Discords {
		if d.Outlier {
			l.Warn("outlier animal", "animal", d.Animal, "discords", d.Count, "z", d.Z)
		}
	}
	return res, nil
}

// Scrub runs the Scrubber to a fixed point or the iteration cap.
func Scrub(ds *Dataset, cfg Config, l *slog.Logger) (ScrubResult, *ChangeLog) {
	l = orDiscard(l)
	log := &ChangeLog{}
	in := NewInferrer(ds.Pedigree, ds.Markers, cfg.OffspringLimit, l)
	sc := NewScrubber(ds.Pedigree, ds.Markers, in, cfg, log, l)
	res := sc.Run(ds.Store)
	l.Info("scrub done", "iterations", res.Iterations, "changes", res.Changes, "converged", res.Converged)
	return res, log
}
