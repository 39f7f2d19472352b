package gamedb

import "sort"

// Stats counts games and black wins for one grouping key.
type Stats struct {
	Freq      int
	BlackWins int
}

// BlackWinRate returns the fraction of counted games won by black.
func (s Stats) BlackWinRate() float64 {
	if s.Freq == 0 {
		return 0
	}
	return float64(s.BlackWins) / float64(s.Freq)
}

// NamedStats pairs a grouping key with its counters.
type NamedStats struct {
	Name string
	Stats
}

// DBStats aggregates a database by opening and by event, each ordered by
// descending frequency.
type DBStats struct {
	Openings []NamedStats
	Events   []NamedStats
}

// ComputeStats tallies decisive games, optionally restricted to a single
// event ("" means all events). Draws are skipped: the win-rate columns are
// only meaningful over decided games.
func ComputeStats(games []*Game, event string) DBStats {
	openings := make(map[string]*Stats)
	events := make(map[string]*Stats)
	for _, g := range games {
		if g.Result == Draw {
			continue
		}
		if event != "" && g.Event != event {
			continue
		}
		o := openings[g.Opening]
		if o == nil {
			o = &Stats{}
			openings[g.Opening] = o
		}
		o.Freq++
		if g.Result == BlackWin {
			o.BlackWins++
		}
		e := events[g.Event]
		if e == nil {
			e = &Stats{}
			events[g.Event] = e
		}
		e.Freq++
	}
	return DBStats{Openings: sortByFreq(openings), Events: sortByFreq(events)}
}

// sortByFreq flattens the aggregate map, most frequent first, ties broken by
// name so the output is deterministic.
func sortByFreq(m map[string]*Stats) []NamedStats {
	out := make([]NamedStats, 0, len(m))
	for name, st := range m {
		out = append(out, NamedStats{Name: name, Stats: *st})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Freq != out[j].Freq {
			return out[i].Freq > out[j].Freq
		}
		return out[i].Name < out[j].Name
	})
	return out
}
