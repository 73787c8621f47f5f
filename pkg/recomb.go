package genoscrub

import (
	"github.com/gammazero/deque"
)

// Interval is one flagged switch. From and To are the informative markers
// flanking it; Inner lists the informative markers bracketed between them.
type Interval struct {
	From  int
	To    int
	Inner []int
}

// Detector looks for origin switches. Size 0 reports every switch; Size N
// reports only runs of exactly N informative markers of the other origin.
type Detector struct {
	Size int
}

type windowEntry struct {
	sym Phase
	pos int
}

// MatchesFlankPattern reports whether the first and last symbols are equal and
// every interior symbol is equal to the others and differs from them. A two
// symbol window matches any switch.
func MatchesFlankPattern(w []Phase) bool {
	if len(w) < 2 {
		return false
	}
	if len(w) == 2 {
		return w[0].Informative() && w[1].Informative() && w[0].Origin() != w[1].Origin()
	}
	first, last := w[0].Origin(), w[len(w)-1].Origin()
	inner := w[1].Origin()
	if first != last || inner == first {
		return false
	}
	for _, s := range w[2 : len(w)-1] {
		if s.Origin() != inner {
			return false
		}
	}
	return true
}

// Scan slides a window of Size+2 informative symbols along t.
func (d Detector) Scan(t Track) []Interval {
	width := d.Size + 2
	win := deque.New[windowEntry](width)
	syms := make([]Phase, width)
	var out []Interval

	for i, s := range t {
		if !s.Informative() {
			continue
		}
		win.PushBack(windowEntry{sym: s.Origin(), pos: i})
		if win.Len() > width {
			win.PopFront()
		}
		if win.Len() < width {
			continue
		}
		for j := 0; j < width; j++ {
			syms[j] = win.At(j).sym
		}
		if !MatchesFlankPattern(syms) {
			continue
		}
		iv := Interval{From: win.Front().pos, To: win.Back().pos}
		for j := 1; j < width-1; j++ {
			iv.Inner = append(iv.Inner, win.At(j).pos)
		}
		out = append(out, iv)
	}
	return out
}

// Flagged returns the inner markers of every interval as a set.
func Flagged(ivs []Interval) map[int]bool {
	out := map[int]bool{}
	for _, iv := range ivs {
		for _, p := range iv.Inner {
			out[p] = true
		}
	}
	return out
}

// FlankPositions lists the flanking markers of every interval in order.
func FlankPositions(ivs []Interval) []int {
	var out []int
	for _, iv := range ivs {
		out = append(out, iv.From, iv.To)
	}
	return out
}
