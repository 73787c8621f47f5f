package genoscrub

type Action string

const (
	ParentBlanked    Action = "ParentBlanked"
	OffspringBlanked Action = "OffspringBlanked"
	Inferred         Action = "Inferred"
	Scrubbed         Action = "Scrubbed"
)

type Change struct {
	Action Action
	Animal string
	Marker string
	Before Genotype
	After  Genotype
}

// ChangeLog collects changes in processing order.
type ChangeLog struct {
	Changes []Change
	// Called for every change after it is appended.
	Hook func(Change)
}

func (l *ChangeLog) Record(c Change) {
	if l == nil {
		return
	}
	l.Changes = append(l.Changes, c)
	if l.Hook != nil {
		l.Hook(c)
	}
}

func (l *ChangeLog) Count(a Action) int {
	if l == nil {
		return 0
	}
	n := 0
	for _, c := range l.Changes {
		if c.Action == a {
			n++
		}
	}
	return n
}
