package genoscrub

import (
	"errors"
)

var (
	ErrMultiAllelic   = errors.New("more than two alleles at marker")
	ErrUnknownAnimal  = errors.New("unknown animal")
	ErrUnknownMarker  = errors.New("unknown marker")
	ErrParentConflict = errors.New("animal recorded with two different parents")
	ErrNotConverged   = errors.New("scrub did not converge")
	ErrMalformedLine  = errors.New("malformed line")
)
