package genoscrub

import (
	"fmt"
)

const (
	SexUnknown int64 = 0
	SexMale    int64 = 1
	SexFemale  int64 = 2
)

type PedEntry struct {
	IndividualID string
	PaternalID   string
	MaternalID   string
	FamilyID     string
	Sex          int64
	Phenotype    string
}

type AnimalID int

const NoAnimal AnimalID = -1

func UnknownParent(id string) bool {
	return id == "" || id == "0"
}

type Animal struct {
	PedEntry
	ID   AnimalID
	Sire AnimalID
	Dam  AnimalID
	// Implicit animals are referenced as a parent but never listed.
	Implicit bool
}

// Pedigree is read-only once built. Sire/dam links are assumed acyclic; only
// single-hop parent and offspring queries are offered.
type Pedigree struct {
	animals   []Animal
	byName    map[string]AnimalID
	offspring [][]AnimalID
}

func (p *Pedigree) add(e PedEntry, implicit bool) AnimalID {
	id := AnimalID(len(p.animals))
	p.animals = append(p.animals, Animal{PedEntry: e, ID: id, Sire: NoAnimal, Dam: NoAnimal, Implicit: implicit})
	p.byName[e.IndividualID] = id
	return id
}

// merge folds a repeated record into an existing one. A missing parent is
// filled from the new record; two different known parents is an error.
func mergeEntry(old *PedEntry, e PedEntry) error {
	if UnknownParent(old.PaternalID) {
		old.PaternalID = e.PaternalID
	} else if !UnknownParent(e.PaternalID) && old.PaternalID != e.PaternalID {
		return fmt.Errorf("%v: %w: sires %v and %v", e.IndividualID, ErrParentConflict, old.PaternalID, e.PaternalID)
	}
	if UnknownParent(old.MaternalID) {
		old.MaternalID = e.MaternalID
	} else if !UnknownParent(e.MaternalID) && old.MaternalID != e.MaternalID {
		return fmt.Errorf("%v: %w: dams %v and %v", e.IndividualID, ErrParentConflict, old.MaternalID, e.MaternalID)
	}
	if old.FamilyID == "" {
		old.FamilyID = e.FamilyID
	}
	if old.Sex == SexUnknown {
		old.Sex = e.Sex
	}
	if old.Phenotype == "" {
		old.Phenotype = e.Phenotype
	}
	return nil
}

func BuildPedigree(ps ...PedEntry) (*Pedigree, error) {
	p := &Pedigree{byName: make(map[string]AnimalID, len(ps))}
	for _, e := range ps {
		if UnknownParent(e.IndividualID) {
			continue
		}
		if id, ok := p.byName[e.IndividualID]; ok {
			if me := mergeEntry(&p.animals[id].PedEntry, e); me != nil {
				return nil, me
			}
			continue
		}
		p.add(e, false)
	}

	// parents that are referenced but never listed become founders
	nlisted := len(p.animals)
	for i := 0; i < nlisted; i++ {
		e := p.animals[i].PedEntry
		for _, parent := range []string{e.PaternalID, e.MaternalID} {
			if UnknownParent(parent) {
				continue
			}
			if _, ok := p.byName[parent]; !ok {
				p.add(PedEntry{IndividualID: parent, PaternalID: "0", MaternalID: "0"}, true)
			}
		}
	}

	p.offspring = make([][]AnimalID, len(p.animals))
	for i := range p.animals {
		a := &p.animals[i]
		if !UnknownParent(a.PaternalID) {
			a.Sire = p.byName[a.PaternalID]
			p.offspring[a.Sire] = append(p.offspring[a.Sire], a.ID)
		}
		if !UnknownParent(a.MaternalID) {
			a.Dam = p.byName[a.MaternalID]
			if a.Dam != a.Sire {
				p.offspring[a.Dam] = append(p.offspring[a.Dam], a.ID)
			}
		}
	}
	p.UpdateSex()
	return p, nil
}

// UpdateSex forces recorded sires male and recorded dams female.
func (p *Pedigree) UpdateSex() {
	for i := range p.animals {
		a := p.animals[i]
		if a.Sire != NoAnimal {
			p.animals[a.Sire].Sex = SexMale
		}
		if a.Dam != NoAnimal {
			p.animals[a.Dam].Sex = SexFemale
		}
	}
}

func (p *Pedigree) Len() int {
	return len(p.animals)
}

func (p *Pedigree) valid(id AnimalID) bool {
	return id >= 0 && int(id) < len(p.animals)
}

func (p *Pedigree) Lookup(name string) (AnimalID, bool) {
	id, ok := p.byName[name]
	return id, ok
}

func (p *Pedigree) Animal(id AnimalID) (Animal, bool) {
	if !p.valid(id) {
		return Animal{}, false
	}
	return p.animals[id], true
}

func (p *Pedigree) Name(id AnimalID) string {
	if !p.valid(id) {
		return "0"
	}
	return p.animals[id].IndividualID
}

func (p *Pedigree) Sire(id AnimalID) AnimalID {
	if !p.valid(id) {
		return NoAnimal
	}
	return p.animals[id].Sire
}

func (p *Pedigree) Dam(id AnimalID) AnimalID {
	if !p.valid(id) {
		return NoAnimal
	}
	return p.animals[id].Dam
}

func (p *Pedigree) Offspring(id AnimalID) []AnimalID {
	if !p.valid(id) {
		return nil
	}
	return p.offspring[id]
}

func (p *Pedigree) HasParent(id AnimalID) bool {
	return p.Sire(id) != NoAnimal || p.Dam(id) != NoAnimal
}

// IDs returns every animal in rank order.
func (p *Pedigree) IDs() []AnimalID {
	out := make([]AnimalID, 0, len(p.animals))
	for i := range p.animals {
		out = append(out, AnimalID(i))
	}
	return out
}

func (p *Pedigree) Entries() []PedEntry {
	out := make([]PedEntry, 0, len(p.animals))
	for _, a := range p.animals {
		out = append(out, a.PedEntry)
	}
	return out
}

// ProgenyOf keeps animals with focal as sire or dam; an empty focal keeps all.
func (p *Pedigree) ProgenyOf(focal string, ids []AnimalID) []AnimalID {
	if UnknownParent(focal) {
		return ids
	}
	fid, ok := p.byName[focal]
	if !ok {
		return nil
	}
	var out []AnimalID
	for _, id := range ids {
		if p.Sire(id) == fid || p.Dam(id) == fid {
			out = append(out, id)
		}
	}
	return out
}
