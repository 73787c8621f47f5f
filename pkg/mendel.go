package genoscrub

type Conflict int

const (
	Consistent Conflict = iota
	// NoParents: neither parent is genotyped.
	NoParents
	// NoAnimalData: the animal itself is not genotyped.
	NoAnimalData
	ConflictSire
	ConflictDam
	ConflictBoth
)

func (c Conflict) NoInformation() bool {
	return c == NoParents || c == NoAnimalData
}

func (c Conflict) IsConflict() bool {
	return c == ConflictSire || c == ConflictDam || c == ConflictBoth
}

func (c Conflict) BlamesSire() bool {
	return c == ConflictSire || c == ConflictBoth
}

func (c Conflict) BlamesDam() bool {
	return c == ConflictDam || c == ConflictBoth
}

func (c Conflict) String() string {
	switch c {
	case Consistent:
		return "consistent"
	case NoParents:
		return "no-parents"
	case NoAnimalData:
		return "no-animal-data"
	case ConflictSire:
		return "conflict-sire"
	case ConflictDam:
		return "conflict-dam"
	case ConflictBoth:
		return "conflict-both"
	}
	return "unknown"
}

func singleParentConflict(animal, parent Genotype) bool {
	return animal.Homozygous() && parent.Homozygous() && animal[0] != parent[0]
}

// Classify checks an animal's genotype against its parents. Ungenotyped
// parents are passed as NoCall.
func Classify(animal, sire, dam Genotype) Conflict {
	if sire.Missing() && dam.Missing() {
		return NoParents
	}
	if animal.Missing() {
		return NoAnimalData
	}
	if dam.Missing() {
		if singleParentConflict(animal, sire) {
			return ConflictSire
		}
		return Consistent
	}
	if sire.Missing() {
		if singleParentConflict(animal, dam) {
			return ConflictDam
		}
		return Consistent
	}

	if animal.Heterozygous() {
		if sire.Homozygous() && dam.Homozygous() && sire[0] == dam[0] {
			return ConflictBoth
		}
		return Consistent
	}

	x := animal[0]
	inSire, inDam := sire.Has(x), dam.Has(x)
	switch {
	case inSire && inDam:
		return Consistent
	case inDam:
		return ConflictSire
	case inSire:
		return ConflictDam
	}
	return ConflictBoth
}

// ClassifyAgainstParent checks an animal against a single parent. A conflict
// is reported as ConflictSire whatever the parent's sex.
func ClassifyAgainstParent(animal, parent Genotype) Conflict {
	return Classify(animal, parent, NoCall)
}
