package genoscrub

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"golang.org/x/exp/rand"
)

// parseConfig registers the shared flags next to any the caller already
// registered, parses the command line and resolves the layered config.
func parseConfig() (Config, *slog.Logger) {
	var f ConfigFlags
	f.Bind(flag.CommandLine)
	flag.Parse()
	cfg, e := f.Resolve(flag.CommandLine)
	if e != nil {
		log.Fatal(e)
	}
	return cfg, NewLogger(os.Stderr, cfg.Debug)
}

func loadOrDie(cfg Config, l *slog.Logger) *Dataset {
	ds, e := LoadDataset(context.Background(), cfg, l)
	if e != nil {
		log.Fatal(e)
	}
	return ds
}

func writeOrDie(path string, write func(io.Writer) error) {
	if e := WritePath(path, write); e != nil {
		log.Fatal(e)
	}
}

func writeGenotypesOrDie(path string, ds *Dataset) {
	writeOrDie(path, func(w io.Writer) error {
		return WriteGenotypes(w, ds)
	})
}

func FullCheck() {
	cfg, l := parseConfig()
	ds := loadOrDie(cfg, l)
	runID := NewRunID()

	res, e := Check(ds, cfg, l)
	if e != nil {
		log.Fatal(e)
	}
	writeGenotypesOrDie(cfg.OutPath, ds)
	if cfg.ChangeLogPath != "" {
		writeOrDie(cfg.ChangeLogPath, func(w io.Writer) error {
			if e := WriteChangeLog(w, runID, res.Log.Changes); e != nil {
				return e
			}
			return WriteDiscords(w, res.Discords)
		})
	}
	if cfg.SummaryPath != "" {
		writeOrDie(cfg.SummaryPath, func(w io.Writer) error {
			return WriteMarkerSummary(w, runID, res.Report.Markers)
		})
	}
}

func FullScrub() {
	cfg, l := parseConfig()
	ds := loadOrDie(cfg, l)

	res, changes := Scrub(ds, cfg, l)
	writeGenotypesOrDie(cfg.OutPath, ds)
	if cfg.ChangeLogPath != "" {
		writeOrDie(cfg.ChangeLogPath, func(w io.Writer) error {
			return WriteChangeLog(w, NewRunID(), changes.Changes)
		})
	}
	if e := res.Err(); e != nil {
		log.Fatal(fmt.Errorf("FullScrub: %w after %v iterations", e, res.Iterations))
	}
}

type PhaseFlags struct {
	Focal string
	Safe  bool
}

func FullPhase() {
	var f PhaseFlags
	flag.StringVar(&f.Focal, "f", "", "only phase offspring of this animal")
	flag.BoolVar(&f.Safe, "safe", false, "grandsire-anchored phase of the sire track only")
	cfg, l := parseConfig()
	ds := loadOrDie(cfg, l)

	ph := NewPhaser(ds.Pedigree, ds.Markers)
	lines := ph.Report(ds.Store, PhaseReportOpts{Focal: f.Focal, Safe: f.Safe, DoubleSize: cfg.DoubleSize})
	path := cfg.PhasePath
	if path == "" {
		path = cfg.OutPath
	}
	writeOrDie(path, func(w io.Writer) error {
		return WritePhaseReport(w, NewRunID(), lines, cfg.ChunkWidth)
	})
}

type StatFlags struct {
	TablePath   string
	AnimalsPath string
	TDTPath     string
}

func FullStat() {
	var f StatFlags
	flag.StringVar(&f.TablePath, "table", "", "marker allele table output")
	flag.StringVar(&f.AnimalsPath, "animals", "", "per-animal genotype class output")
	flag.StringVar(&f.TDTPath, "tdt", "", "per-marker transmission test output")
	cfg, l := parseConfig()
	ds := loadOrDie(cfg, l)

	sts := MarkerStats(ds)
	writeOrDie(cfg.OutPath, func(w io.Writer) error {
		return WriteMarkerStats(w, NewRunID(), sts)
	})
	if f.TablePath != "" {
		writeOrDie(f.TablePath, func(w io.Writer) error {
			return WriteAlleleTable(w, sts)
		})
	}
	if f.AnimalsPath != "" {
		writeOrDie(f.AnimalsPath, func(w io.Writer) error {
			return WriteAnimalStats(w, AnimalStats(ds))
		})
	}
	if f.TDTPath != "" {
		writeOrDie(f.TDTPath, func(w io.Writer) error {
			return WriteTransmissions(w, NewRunID(), Transmissions(ds))
		})
	}
}

type MaskFlags struct {
	Fraction  float64
	Seed      int
	TruthPath string
}

func FullMask() {
	var f MaskFlags
	flag.Float64Var(&f.Fraction, "frac", 0.01, "fraction of known genotypes to hide")
	flag.IntVar(&f.Seed, "s", 0, "random seed")
	flag.StringVar(&f.TruthPath, "truth", "", "where to write the hidden genotypes (required)")
	cfg, l := parseConfig()
	if f.TruthPath == "" {
		log.Fatal(fmt.Errorf("missing -truth"))
	}
	ds := loadOrDie(cfg, l)

	masked := Mask(ds, f.Fraction, rand.NewSource(uint64(f.Seed)))
	l.Info("masked", "genotypes", len(masked))
	writeGenotypesOrDie(cfg.OutPath, ds)
	writeOrDie(f.TruthPath, func(w io.Writer) error {
		return WriteTruth(w, masked)
	})
}

func FullMaskEval() {
	var truthPath string
	flag.StringVar(&truthPath, "truth", "", "hidden genotypes written by genomask (required)")
	cfg, l := parseConfig()
	if truthPath == "" {
		log.Fatal(fmt.Errorf("missing -truth"))
	}
	truth, e := ParseTruthPath(truthPath)
	if e != nil {
		log.Fatal(e)
	}
	ds := loadOrDie(cfg, l)

	ev := EvaluateMask(ds, truth)
	writeOrDie(cfg.OutPath, func(w io.Writer) error {
		_, e := fmt.Fprintf(w, "masked\t%v\ncalled\t%v\ncorrect\t%v\nunknown\t%v\ncallrate\t%.4f\nconcordance\t%.4f\n",
			ev.Masked, ev.Called, ev.Correct, ev.Unknown, ev.CallRate(), ev.Concordance())
		return e
	})
}

type PedExtractFlags struct {
	Focal      string
	MarkerPath string
}

func FullPedExtract() {
	var f PedExtractFlags
	flag.StringVar(&f.Focal, "f", "", "only this animal and its descendants")
	flag.StringVar(&f.MarkerPath, "mo", "", "marker list output")
	cfg, l := parseConfig()
	ds := loadOrDie(cfg, l)

	ps, e := ExtractFamily(ds.Pedigree, f.Focal)
	if e != nil {
		log.Fatal(e)
	}
	writeOrDie(cfg.OutPath, func(w io.Writer) error {
		return WritePed(w, ps)
	})
	if f.MarkerPath != "" {
		writeOrDie(f.MarkerPath, func(w io.Writer) error {
			return WriteMarkers(w, ds.Markers)
		})
	}
}

func FullPedviz() {
	var opts GraphVizOpts
	flag.StringVar(&opts.Focal, "f", "", "focal animal")
	cfg, l := parseConfig()

	var ps []PedEntry
	if cfg.PedigreePath != "" {
		r, e := openMaybe(cfg.PedigreePath)
		if e != nil {
			log.Fatal(e)
		}
		ps, e = ParsePedSafe(r, l)
		r.Close()
		if e != nil {
			log.Fatal(e)
		}
	} else {
		ps = loadOrDie(cfg, l).Pedigree.Entries()
	}
	p, e := BuildPedigree(ps...)
	if e != nil {
		log.Fatal(e)
	}
	if cfg.ChangeLogPath != "" {
		if opts.Corrections, e = CorrectionCountsPath(cfg.ChangeLogPath); e != nil {
			log.Fatal(e)
		}
	}
	writeOrDie(cfg.OutPath, func(w io.Writer) error {
		_, e := ToGraphViz(w, p, opts)
		return e
	})
}
