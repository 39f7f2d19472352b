package shogimg

import "golang.org/x/exp/slices"

// quietUniverse is the position-independent set of every quiet move (no
// capture) that can occur in some legal position, in canonical Move order.
var quietUniverse []Move

// standableBB returns the squares where a piece of the given type may stand
// without being stranded.
func standableBB(c Color, pt PieceType) Bitboard {
	switch pt {
	case Pawn, Lance:
		return relRankBB(c, 2, 9)
	case Knight:
		return relRankBB(c, 3, 9)
	}
	return BoardBB
}

// initQuietUniverse enumerates the quiet-move universe for both colors:
//
//   - non-promoting board moves over the maximal attack patterns, excluding
//     moves a sensible player never keeps unpromoted (pawns entering the
//     zone, lances and knights reaching the top two ranks, bishops and rooks
//     touching the zone at all);
//   - silver promotions, the one optional promotion kept alongside the
//     non-promoting form;
//   - drops of every hand piece onto its legal drop ranks.
//
// The result is sorted by the raw move encoding and deduplicated, so the
// enumeration order is stable across runs.
func initQuietUniverse() {
	moves := make([]Move, 0, 16384)

	for c := Black; c <= White; c++ {
		zone := relRankBB(c, 1, 3)
		outside := relRankBB(c, 4, 9)
		frontier := relRankBB(c, 3, 9)

		for pt := Pawn; pt <= Dragon; pt++ {
			pc := MakePiece(c, pt)
			fromMask := standableBB(c, pt)
			toMask := BoardBB
			switch pt {
			case Pawn:
				toMask = outside
			case Lance, Knight:
				toMask = frontier
			case Bishop, Rook:
				fromMask = fromMask.And(outside)
				toMask = outside
			}

			for fb := fromMask; !fb.IsZero(); {
				from := fb.Pop()
				for tb := MaxAttacks(pc, from).And(toMask); !tb.IsZero(); {
					moves = append(moves, NewMove(pc, from, tb.Pop(), false, NoPiece))
				}
			}

			if pt == Silver {
				for fb := BoardBB; !fb.IsZero(); {
					from := fb.Pop()
					tb := MaxAttacks(pc, from)
					if !zone.Test(from) {
						tb = tb.And(zone)
					}
					for !tb.IsZero() {
						moves = append(moves, NewMove(pc, from, tb.Pop(), true, NoPiece))
					}
				}
			}
		}

		for pt := Pawn; pt <= Gold; pt++ {
			pc := MakePiece(c, pt)
			for tb := dropTargetBB[c][pt]; !tb.IsZero(); {
				moves = append(moves, NewDrop(pc, tb.Pop()))
			}
		}
	}

	slices.Sort(moves)
	quietUniverse = slices.Clip(slices.Compact(moves))
}

// AllQuietMoves returns the precomputed quiet-move universe. The returned
// slice is shared; callers must not modify it.
func AllQuietMoves() []Move { return quietUniverse }
