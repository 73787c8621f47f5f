package genoscrub

import (
	"strings"
)

type Allele uint8

const (
	Missing Allele = iota
	A
	C
	G
	T
	Indel
	ErrAllele
)

// Accepts letters, the 1-4 numeric coding, D/DEL/5 for deletions and 9 for
// the error sentinel. Anything else reads as missing.
func ParseAllele(s string) Allele {
	switch strings.ToUpper(s) {
	case "A", "1":
		return A
	case "C", "2":
		return C
	case "G", "3":
		return G
	case "T", "4":
		return T
	case "D", "DEL", "5", "I", "6":
		return Indel
	case "9":
		return ErrAllele
	}
	return Missing
}

func (a Allele) Known() bool {
	return a != Missing && a != ErrAllele
}

func (a Allele) String() string {
	switch a {
	case A:
		return "A"
	case C:
		return "C"
	case G:
		return "G"
	case T:
		return "T"
	case Indel:
		return "D"
	case ErrAllele:
		return "9"
	}
	return "0"
}

// Complement returns the allele on the opposite strand.
func (a Allele) Complement() Allele {
	switch a {
	case A:
		return T
	case T:
		return A
	case C:
		return G
	case G:
		return C
	}
	return a
}
