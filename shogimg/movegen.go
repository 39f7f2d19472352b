package shogimg

// GenMode selects what GenerateMovesInto produces.
type GenMode int

const (
	// GenNonEvasions: all pseudo-legal board moves plus legal drops.
	// Assumes the side to move is not in check.
	GenNonEvasions GenMode = iota
	// GenEvasions: candidate check evasions (king moves, captures of a lone
	// checker, interpositions). Pin-illegal candidates remain; MakeMove is
	// the filter.
	GenEvasions
	// GenCaptures: capturing board moves only.
	GenCaptures
	// GenQuiets: non-capturing board moves only (no drops).
	GenQuiets
	// GenDrops: drops only.
	GenDrops
	// GenAll: evasions when in check, non-evasions otherwise.
	GenAll
)

// MaxLegalMoves is the documented maximum number of legal moves over all
// reachable positions, realized by a constructed hand-heavy position. Normal
// play stays far below it; the benchmark "festival" position reaches 207.
const MaxLegalMoves = 593

// MoveBufferCap is the buffer capacity callers should allocate: the legal
// maximum plus headroom for the pseudo-legal surplus of pinned-piece moves.
const MoveBufferCap = MaxLegalMoves + 15

// board-move filters inside the generator
const (
	filterAll = iota
	filterCaptures
	filterQuiets
)

// GenerateMovesInto writes the moves for the requested mode into dst
// (truncated to length zero first) and returns the filled slice. Exceeding
// MoveBufferCap indicates a defect in the documented bound and panics.
func (p *Position) GenerateMovesInto(mode GenMode, dst []Move) []Move {
	moves := dst[:0]
	switch mode {
	case GenEvasions:
		moves = p.generateEvasions(moves)
	case GenCaptures:
		moves = p.generateBoardMoves(moves, filterCaptures)
	case GenQuiets:
		moves = p.generateBoardMoves(moves, filterQuiets)
	case GenDrops:
		moves = p.generateDrops(moves, BoardBB)
	case GenAll:
		if p.OurKingInCheck() {
			moves = p.generateEvasions(moves)
			break
		}
		fallthrough
	case GenNonEvasions:
		moves = p.generateBoardMoves(moves, filterAll)
		moves = p.generateDrops(moves, BoardBB)
	}
	if len(moves) > MoveBufferCap {
		panic("shogimg: move buffer overflow")
	}
	return moves
}

// GenerateMoves returns the moves for the mode in a freshly allocated slice.
// Hot paths should prefer GenerateMovesInto with a reused buffer.
func (p *Position) GenerateMoves(mode GenMode) []Move {
	return p.GenerateMovesInto(mode, make([]Move, 0, MoveBufferCap))
}

// GenerateLegalMovesInto appends the fully legal moves for the side to move:
// the GenAll output passed through the MakeMove self-check filter.
func (p *Position) GenerateLegalMovesInto(dst []Move) []Move {
	moves := p.GenerateMovesInto(GenAll, dst)
	out := moves[:0]
	for _, m := range moves {
		if ok, st := p.MakeMove(m); ok {
			p.UnmakeMove(st)
			out = append(out, m)
		}
	}
	return out
}

// GenerateLegalMoves returns the fully legal moves in a new slice.
func (p *Position) GenerateLegalMoves() []Move {
	return p.GenerateLegalMovesInto(make([]Move, 0, MoveBufferCap))
}

// appendBoardMove emits the promotion variants of a board move: the
// promoting form when the move touches the mover's zone, and the
// non-promoting form unless the piece would be left without a legal
// continuation (pawn or lance on the last rank, knight on the last two).
func appendBoardMove(moves []Move, pc Piece, from, to Square, captured Piece) []Move {
	c := pc.Color()
	if pc.Type().CanPromote() && (from.IsPromotionZone(c) || to.IsPromotionZone(c)) {
		moves = append(moves, NewMove(pc, from, to, true, captured))
	}
	if hasOnwardMoves(pc, to) {
		moves = append(moves, NewMove(pc, from, to, false, captured))
	}
	return moves
}

// hasOnwardMoves reports whether pc standing on 'to' unpromoted would still
// have at least one legal move.
func hasOnwardMoves(pc Piece, to Square) bool {
	switch pc.Type() {
	case Pawn, Lance:
		return to.RelativeRank(pc.Color()) >= 2
	case Knight:
		return to.RelativeRank(pc.Color()) >= 3
	}
	return true
}

// generateBoardMoves appends pseudo-legal board moves matching the filter.
func (p *Position) generateBoardMoves(moves []Move, filter int) []Move {
	us := p.sideToMove
	occ := p.AllOccupancy()
	own := p.occupied[us]
	opp := p.occupied[us.Flip()]

	for bb := own; !bb.IsZero(); {
		from := bb.Pop()
		pc := p.board[from]
		targets := AttacksFrom(pc, from, occ).AndNot(own)
		switch filter {
		case filterCaptures:
			targets = targets.And(opp)
		case filterQuiets:
			targets = targets.AndNot(opp)
		}
		for t := targets; !t.IsZero(); {
			to := t.Pop()
			moves = appendBoardMove(moves, pc, from, to, p.board[to])
		}
	}
	return moves
}

// generateDrops appends legal drops onto empty squares within the target
// set, honoring drop rank masks, the one-pawn-per-file rule and the
// drop-pawn-mate prohibition.
func (p *Position) generateDrops(moves []Move, targets Bitboard) []Move {
	us := p.sideToMove
	empties := targets.AndNot(p.AllOccupancy())

	for pt := Pawn; pt <= Gold; pt++ {
		if p.hand[us][pt] == 0 {
			continue
		}
		mask := empties.And(dropTargetBB[us][pt])
		if pt == Pawn {
			pawns := p.byType[us][Pawn]
			for f := 0; f < 9; f++ {
				if pawns.And(fileBB[f]).Any() {
					mask = mask.AndNot(fileBB[f])
				}
			}
		}
		pc := MakePiece(us, pt)
		for t := mask; !t.IsZero(); {
			to := t.Pop()
			if pt == Pawn && p.isPawnDropMate(to) {
				continue
			}
			moves = append(moves, NewDrop(pc, to))
		}
	}
	return moves
}

// generateEvasions appends candidate evasions for the checked side to move.
// Under double check only king moves are produced.
func (p *Position) generateEvasions(moves []Move) []Move {
	us := p.sideToMove
	them := us.Flip()
	ksq := p.kingSq[us]
	occ := p.AllOccupancy()
	checkers := p.checkers

	// King steps, with the king removed from the occupancy so that sliding
	// checkers keep attacking through the vacated square.
	occNoKing := occ.Clear(ksq)
	kingPc := MakePiece(us, King)
	for t := maxAttacks[kingPc][ksq].AndNot(p.occupied[us]); !t.IsZero(); {
		to := t.Pop()
		if p.attackersTo(to, them, occNoKing.Set(to)).Any() {
			continue
		}
		moves = append(moves, NewMove(kingPc, ksq, to, false, p.board[to]))
	}

	if checkers.PopCount() != 1 {
		return moves
	}
	csq := checkers.FirstOne()

	// Captures of the lone checker by non-king pieces.
	for c := p.attackersTo(csq, us, occ).Clear(ksq); !c.IsZero(); {
		from := c.Pop()
		moves = appendBoardMove(moves, p.board[from], from, csq, p.board[csq])
	}

	// Interpositions on a sliding checker's line: board moves and drops.
	btw := between[ksq][csq]
	if btw.Any() {
		for bb := p.occupied[us].Clear(ksq); !bb.IsZero(); {
			from := bb.Pop()
			pc := p.board[from]
			for t := AttacksFrom(pc, from, occ).And(btw); !t.IsZero(); {
				to := t.Pop()
				moves = appendBoardMove(moves, pc, from, to, NoPiece)
			}
		}
		moves = p.generateDrops(moves, btw)
	}
	return moves
}

// ==========================
// Attack queries
// ==========================

// attackersTo returns the pieces of color 'by' attacking sq under the given
// occupancy. Steppers are found through reverse lookups in the maximal
// tables; sliders through ray truncation.
func (p *Position) attackersTo(sq Square, by Color, occ Bitboard) Bitboard {
	opp := by.Flip()
	bb := maxAttacks[MakePiece(opp, Pawn)][sq].And(p.byType[by][Pawn])
	bb = bb.Or(maxAttacks[MakePiece(opp, Knight)][sq].And(p.byType[by][Knight]))
	bb = bb.Or(maxAttacks[MakePiece(opp, Silver)][sq].And(p.byType[by][Silver]))
	bb = bb.Or(maxAttacks[MakePiece(opp, Gold)][sq].And(p.goldLike(by)))

	stepKings := p.byType[by][King].Or(p.byType[by][Horse]).Or(p.byType[by][Dragon])
	bb = bb.Or(maxAttacks[MakePiece(opp, King)][sq].And(stepKings))

	bb = bb.Or(lanceSlide(opp, sq, occ).And(p.byType[by][Lance]))
	bb = bb.Or(bishopSlide(sq, occ).And(p.byType[by][Bishop].Or(p.byType[by][Horse])))
	bb = bb.Or(rookSlide(sq, occ).And(p.byType[by][Rook].Or(p.byType[by][Dragon])))
	return bb
}

// isSquareAttacked reports whether sq is attacked by the given color.
func (p *Position) isSquareAttacked(sq Square, by Color, occ Bitboard) bool {
	return p.attackersTo(sq, by, occ).Any()
}

// pinnedPieces returns the pieces of color c pinned to c's king, and for
// each pinned square the line it may stay on (between king and pinner,
// pinner square included).
func (p *Position) pinnedPieces(c Color, occ Bitboard) (pinned Bitboard, lines [SquareCount]Bitboard) {
	ksq := p.kingSq[c]
	for d := 0; d < dirCount; d++ {
		ray := rays[d][ksq]
		blockers := ray.And(occ)
		if blockers.IsZero() {
			continue
		}
		var first Square
		if dirIncreasing[d] {
			first = blockers.FirstOne()
		} else {
			first = blockers.LastOne()
		}
		if !p.occupied[c].Test(first) {
			continue
		}
		beyond := rays[d][first].And(occ)
		if beyond.IsZero() {
			continue
		}
		var next Square
		if dirIncreasing[d] {
			next = beyond.FirstOne()
		} else {
			next = beyond.LastOne()
		}
		pc := p.board[next]
		if pc.Color() == c || !sliderPinsAlong(pc, d) {
			continue
		}
		pinned = pinned.Set(first)
		lines[first] = rays[d][ksq].AndNot(rays[d][next])
	}
	return pinned, lines
}

// sliderPinsAlong reports whether pc slides along direction d when d points
// from the pinned side's king outward.
func sliderPinsAlong(pc Piece, d int) bool {
	switch pc.Type() {
	case Rook, Dragon:
		return d <= dirW
	case Bishop, Horse:
		return d >= dirNE
	case Lance:
		// A black lance attacks northward, so it pins along the southward
		// ray from the king, and vice versa.
		if pc.Color() == Black {
			return d == dirS
		}
		return d == dirN
	}
	return false
}

// isPawnDropMate reports whether dropping a pawn of the side to move on
// 'to' would deliver an immediate, unescapable checkmate (the prohibited
// drop-pawn-mate). Analyzed locally against simulated occupancy.
func (p *Position) isPawnDropMate(to Square) bool {
	us := p.sideToMove
	them := us.Flip()
	ksq := p.kingSq[them]
	if !maxAttacks[MakePiece(us, Pawn)][to].Test(ksq) {
		return false // the drop does not even give check
	}
	occ := p.AllOccupancy().Set(to)

	// A non-king defender capturing the pawn refutes the mate, unless it is
	// pinned off the drop square.
	defenders := p.attackersTo(to, them, occ).Clear(ksq)
	if defenders.Any() {
		pinnedBB, lines := p.pinnedPieces(them, occ)
		for d := defenders; !d.IsZero(); {
			sq := d.Pop()
			if !pinnedBB.Test(sq) || lines[sq].Test(to) {
				return false
			}
		}
	}

	// A safe king step (including capturing the pawn) refutes the mate.
	for e := maxAttacks[MakePiece(them, King)][ksq].AndNot(p.occupied[them]); !e.IsZero(); {
		esq := e.Pop()
		occSim := occ.Clear(ksq).Set(esq)
		if !p.attackersTo(esq, us, occSim).Any() {
			return false
		}
	}
	return true
}

// ==========================
// Checking moves
// ==========================

// GenerateChecksInto appends the moves that give check (direct or
// discovered) into dst and returns it. Candidates are the GenAll output
// filtered in place, so pin-illegal moves may remain for MakeMove to reject.
func (p *Position) GenerateChecksInto(dst []Move) []Move {
	moves := p.GenerateMovesInto(GenAll, dst)
	out := moves[:0]
	for _, m := range moves {
		if p.givesCheck(m) {
			out = append(out, m)
		}
	}
	return out
}

// givesCheck reports whether the move attacks the opponent's king once
// played, without mutating the position.
func (p *Position) givesCheck(m Move) bool {
	us := p.sideToMove
	them := us.Flip()
	ksq := p.kingSq[them]
	occ := p.AllOccupancy()
	to := m.To()

	if m.IsDrop() {
		return AttacksFrom(m.Piece(), to, occ.Set(to)).Test(ksq)
	}

	from := m.From()
	occp := occ.Clear(from).Set(to)

	// Direct check from the destination (with promotion applied).
	if AttacksFrom(m.PieceAfter(), to, occp).Test(ksq) {
		return true
	}

	// Discovered check: another slider of ours now sees the king through
	// the vacated square.
	if !raysUnion[ksq].Test(from) {
		return false
	}
	moved := SquareBB(from).Or(SquareBB(to))
	if rookSlide(ksq, occp).And(p.byType[us][Rook].Or(p.byType[us][Dragon])).AndNot(moved).Any() {
		return true
	}
	if bishopSlide(ksq, occp).And(p.byType[us][Bishop].Or(p.byType[us][Horse])).AndNot(moved).Any() {
		return true
	}
	if lanceSlide(them, ksq, occp).And(p.byType[us][Lance]).AndNot(moved).Any() {
		return true
	}
	return false
}

// ==========================
// Perft
// ==========================

// Perft counts legal leaf nodes from the position at the given depth.
// Buffers are reused per depth to keep the walk allocation-light.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	bufs := make([][]Move, depth+1)
	for i := range bufs {
		bufs[i] = make([]Move, 0, MoveBufferCap)
	}
	return perftRec(p, depth, bufs)
}

func perftRec(p *Position, depth int, bufs [][]Move) uint64 {
	moves := p.GenerateMovesInto(GenAll, bufs[depth])
	if depth == 1 {
		var nodes uint64
		for _, m := range moves {
			if ok, st := p.MakeMove(m); ok {
				nodes++
				p.UnmakeMove(st)
			}
		}
		return nodes
	}
	var nodes uint64
	for _, m := range moves {
		if ok, st := p.MakeMove(m); ok {
			nodes += perftRec(p, depth-1, bufs)
			p.UnmakeMove(st)
		}
	}
	return nodes
}

// PerftDivide returns per-root-move leaf counts at the given depth.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.GenerateLegalMoves() {
		ok, st := p.MakeMove(m)
		if !ok {
			continue
		}
		result[m] = Perft(p, depth-1)
		p.UnmakeMove(st)
	}
	return result
}
