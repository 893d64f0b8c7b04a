package models

import "time"

// EarliestReleaseDate is the date of the first film screening; nothing can be
// released before it.
var EarliestReleaseDate = NewDate(1895, time.December, 28)

type Film struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate Date       `json:"releaseDate"`
	Duration    int        `json:"duration"`
	Genres      []Genre    `json:"genres"`
	Mpa         *MpaRating `json:"mpa,omitempty"`
}

// DedupGenres collapses duplicate genre ids while keeping insertion order.
func (f *Film) DedupGenres() {
	if len(f.Genres) < 2 {
		return
	}
	seen := make(map[int64]struct{}, len(f.Genres))
	out := f.Genres[:0]
	for _, g := range f.Genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	f.Genres = out
}
