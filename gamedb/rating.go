package gamedb

import "sort"

// PlayerRating is one row of the rating table.
type PlayerRating struct {
	Name   string
	Rating int64
}

// ComputeRatings derives Elo-style ratings from the decisive games in the
// database. Games are replayed in date order; every player starts at 1500
// and each result moves winner and loser by
//
//	delta = clamp(16 + (loser-winner)/25, 1, 31)
//
// the update rule of the Shogi Club 24 rating system. A player's reported
// rating is the average of their post-game ratings, which smooths out the
// noise of the final few results. The table is sorted by descending rating.
func ComputeRatings(games []*Game) []PlayerRating {
	decided := make([]*Game, 0, len(games))
	for _, g := range games {
		if g.Result != Draw {
			decided = append(decided, g)
		}
	}
	sort.SliceStable(decided, func(i, j int) bool { return decided[i].Date < decided[j].Date })

	ratings := make(map[string]int64)
	sums := make(map[string]int64)
	played := make(map[string]int64)
	for _, g := range decided {
		ratings[g.Black] = 1500
		ratings[g.White] = 1500
		played[g.Black]++
		played[g.White]++
	}

	for _, g := range decided {
		winner, loser := g.Winner(), g.Loser()
		delta := 16 + (ratings[loser]-ratings[winner])/25
		if delta < 1 {
			delta = 1
		} else if delta > 31 {
			delta = 31
		}
		ratings[winner] += delta
		ratings[loser] -= delta
		sums[winner] += ratings[winner]
		sums[loser] += ratings[loser]
	}

	out := make([]PlayerRating, 0, len(ratings))
	for name := range ratings {
		out = append(out, PlayerRating{Name: name, Rating: sums[name] / played[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	return out
}
