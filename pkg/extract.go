package genoscrub

import (
	"fmt"
)

// ExtractFamily returns focal and all its descendants, or every animal when
// focal is unknown or empty.
func ExtractFamily(p *Pedigree, focal string) ([]PedEntry, error) {
	if UnknownParent(focal) {
		return p.Entries(), nil
	}
	fid, ok := p.Lookup(focal)
	if !ok {
		return nil, fmt.Errorf("ExtractFamily: %w %v", ErrUnknownAnimal, focal)
	}
	keep := make([]bool, p.Len())
	keep[fid] = true
	todo := []AnimalID{fid}
	for len(todo) > 0 {
		id := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for _, off := range p.Offspring(id) {
			if !keep[off] {
				keep[off] = true
				todo = append(todo, off)
			}
		}
	}
	var out []PedEntry
	for _, id := range p.IDs() {
		if keep[id] {
			a, _ := p.Animal(id)
			out = append(out, a.PedEntry)
		}
	}
	return out, nil
}
