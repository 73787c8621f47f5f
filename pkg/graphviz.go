package genoscrub

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/iterh"
)

func Red() string {
	return `"#cc6666"`
}

func Blue() string {
	return `"#6666cc"`
}

func FemAes() string {
	return fmt.Sprintf(`; fillcolor=%v; shape=circle`, Red())
}

func MaleAes() string {
	return fmt.Sprintf(`; fillcolor=%v; shape=square`, Blue())
}

func SexAes(sex int64) string {
	switch sex {
	case SexMale:
		return MaleAes()
	case SexFemale:
		return FemAes()
	}
	return ""
}

type GraphVizOpts struct {
	// Focal limits the graph to an animal, its parents and its offspring.
	Focal string
	// Corrections per animal name, shown in the node label.
	Corrections map[string]int
}

func (o GraphVizOpts) keep(p *Pedigree, id AnimalID) bool {
	if UnknownParent(o.Focal) {
		return true
	}
	fid, ok := p.Lookup(o.Focal)
	if !ok {
		return false
	}
	return id == fid || p.Sire(fid) == id || p.Dam(fid) == id || p.Sire(id) == fid || p.Dam(id) == fid
}

func ToGraphViz(w io.Writer, p *Pedigree, opts GraphVizOpts) (n int, e error) {
	nwritten, e := fmt.Fprintf(w, "digraph full {\n")
	n += nwritten
	if e != nil {
		return n, e
	}

	for _, id := range p.IDs() {
		if !opts.keep(p, id) {
			continue
		}
		a, _ := p.Animal(id)
		label := a.IndividualID
		if c := opts.Corrections[a.IndividualID]; c > 0 {
			label = fmt.Sprintf("%v\\n%v", label, c)
		}
		nwritten, e := fmt.Fprintf(w, "%q [style=filled; label=\"%v\"%v]\n", a.IndividualID, label, SexAes(a.Sex))
		n += nwritten
		if e != nil {
			return n, e
		}
		for _, parent := range []AnimalID{a.Sire, a.Dam} {
			if parent == NoAnimal || !opts.keep(p, parent) {
				continue
			}
			nwritten, e := fmt.Fprintf(w, "%q -> %q\n", p.Name(parent), a.IndividualID)
			n += nwritten
			if e != nil {
				return n, e
			}
		}
	}

	nwritten, e = fmt.Fprintf(w, "}\n")
	n += nwritten
	return n, e
}

// ParseChangeLog reads a change log written by WriteChangeLog.
func ParseChangeLog(r io.Reader) iter.Seq2[Change, error] {
	return func(y func(Change, error) bool) {
		s := newScanner(r)
		for i := 1; s.Scan(); i++ {
			// discord rows follow the changes in a genocheck log
			if strings.HasPrefix(s.Text(), DiscordsHeader) {
				break
			}
			if ShouldSkipLine(s.Text()) {
				continue
			}
			f := strings.Fields(s.Text())
			if len(f) != 5 {
				if !y(Change{}, fmt.Errorf("ParseChangeLog: line %v: %w", i, ErrMalformedLine)) {
					return
				}
				continue
			}
			c := Change{Action: Action(f[0]), Animal: f[1], Marker: f[2], After: ParseGenotype(f[3], f[4])}
			if !y(c, nil) {
				return
			}
		}
		if e := s.Err(); e != nil {
			y(Change{}, fmt.Errorf("ParseChangeLog: %w", e))
		}
	}
}

// CorrectionCounts counts changes per animal.
func CorrectionCounts(cs []Change) map[string]int {
	out := map[string]int{}
	for _, c := range cs {
		out[c.Animal]++
	}
	return out
}

func CorrectionCountsPath(path string) (map[string]int, error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, e
	}
	defer r.Close()
	cs, e := iterh.CollectWithError(ParseChangeLog(r))
	if e != nil {
		return nil, e
	}
	return CorrectionCounts(cs), nil
}
