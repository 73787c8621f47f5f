package genoscrub

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jgbaldwinbrown/csvh"
)

// NewRunID tags every report written by one invocation.
func NewRunID() string {
	return uuid.NewString()
}

func writeRunHeader(w io.Writer, runID string) error {
	if runID == "" {
		return nil
	}
	_, e := fmt.Fprintf(w, "#run\t%v\n", runID)
	return e
}

// WritePath writes to path (gzipped when it ends in .gz), or to stdout for an
// empty path.
func WritePath(path string, write func(io.Writer) error) (e error) {
	if path == "" || path == "-" {
		bw := bufio.NewWriter(os.Stdout)
		defer func() { csvh.DeferE(&e, bw.Flush()) }()
		return write(bw)
	}
	w, e := csvh.CreateMaybeGz(path)
	if e != nil {
		return e
	}
	defer func() { csvh.DeferE(&e, w.Close()) }()

	bw := bufio.NewWriter(w)
	defer func() { csvh.DeferE(&e, bw.Flush()) }()
	return write(bw)
}

func WriteChange(w io.Writer, c Change) error {
	_, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", c.Action, c.Animal, c.Marker, c.After[0], c.After[1])
	return e
}

func WriteChangeLog(w io.Writer, runID string, cs []Change) error {
	if e := writeRunHeader(w, runID); e != nil {
		return e
	}
	for _, c := range cs {
		if e := WriteChange(w, c); e != nil {
			return e
		}
	}
	return nil
}

func WriteMarkerSummary(w io.Writer, runID string, sums []MarkerSummary) error {
	if e := writeRunHeader(w, runID); e != nil {
		return e
	}
	for _, s := range sums {
		if _, e := fmt.Fprintf(w, "%v\t%v\t%.4f\n", s.Marker, s.Corrected, s.Fraction); e != nil {
			return e
		}
	}
	return nil
}

const DiscordsHeader = "#Animal_discords"

// WriteDiscords lists animals with at least one blanking, flagging outliers.
func WriteDiscords(w io.Writer, ds []AnimalDiscord) error {
	if _, e := fmt.Fprintln(w, DiscordsHeader); e != nil {
		return e
	}
	for _, d := range ds {
		flag := ""
		if d.Outlier {
			flag = "\toutlier"
		}
		if _, e := fmt.Fprintf(w, "%v\t%v\t%.3f%v\n", d.Animal, d.Count, d.Z, flag); e != nil {
			return e
		}
	}
	return nil
}

type PhaseLine struct {
	Animal         string
	Parent         string
	Role           string
	Recombinations int
	Track          Track
	// Flagged holds the markers bracketed by double switches.
	Flagged []int
}

func WritePhaseLine(w io.Writer, l PhaseLine, width int) error {
	flagged := make([]string, 0, len(l.Flagged))
	for _, p := range l.Flagged {
		flagged = append(flagged, fmt.Sprint(p))
	}
	_, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
		l.Animal,
		l.Role,
		l.Parent,
		l.Recombinations,
		strings.Join(l.Track.Chunks(width), " "),
		strings.Join(flagged, ","),
	)
	return e
}

func WritePhaseReport(w io.Writer, runID string, ls []PhaseLine, width int) error {
	if e := writeRunHeader(w, runID); e != nil {
		return e
	}
	for _, l := range ls {
		if e := WritePhaseLine(w, l, width); e != nil {
			return e
		}
	}
	return nil
}

// WriteGenotypes writes the header line and one row per genotyped animal.
func WriteGenotypes(w io.Writer, ds *Dataset) error {
	names := make([]string, 0, ds.Markers.Len())
	for _, m := range ds.Markers.IDs() {
		names = append(names, ds.Markers.Name(m))
	}
	if _, e := fmt.Fprintf(w, "#\t%v\n", strings.Join(names, "\t\t")); e != nil {
		return e
	}
	for _, id := range ds.Pedigree.IDs() {
		row := ds.Store.Row(id)
		if row == nil {
			continue
		}
		a, _ := ds.Pedigree.Animal(id)
		if _, e := fmt.Fprintf(w, "%v\t%v\t%v", a.IndividualID, ds.Pedigree.Name(a.Sire), ds.Pedigree.Name(a.Dam)); e != nil {
			return e
		}
		for _, g := range row {
			if _, e := fmt.Fprintf(w, "\t%v\t%v", g[0], g[1]); e != nil {
				return e
			}
		}
		if _, e := fmt.Fprintln(w); e != nil {
			return e
		}
	}
	return nil
}

func WritePedEntry(w io.Writer, p PedEntry) error {
	fam := p.FamilyID
	if fam == "" {
		fam = "0"
	}
	pheno := p.Phenotype
	if pheno == "" {
		pheno = "0"
	}
	_, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
		p.IndividualID,
		p.PaternalID,
		p.MaternalID,
		fam,
		p.Sex,
		pheno,
	)
	return e
}

func WritePed(w io.Writer, ps []PedEntry) error {
	for _, p := range ps {
		if e := WritePedEntry(w, p); e != nil {
			return e
		}
	}
	return nil
}

// WriteMarkers writes the table in the "chrom rank name pos" dialect.
func WriteMarkers(w io.Writer, mt *MarkerTable) error {
	for _, id := range mt.IDs() {
		m, _ := mt.Marker(id)
		if _, e := fmt.Fprintf(w, "%v\t%v\t%v\t%v\n", m.Chrom, m.Rank, m.Name, m.Pos); e != nil {
			return e
		}
	}
	return nil
}
