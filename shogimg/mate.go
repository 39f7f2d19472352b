package shogimg

// hasLegalMove reports whether the side to move has at least one legal move.
func (p *Position) hasLegalMove() bool {
	var buf [MoveBufferCap]Move
	for _, m := range p.GenerateMovesInto(GenAll, buf[:0]) {
		if ok, st := p.MakeMove(m); ok {
			p.UnmakeMove(st)
			return true
		}
	}
	return false
}

// IsMated reports whether the side to move is checkmated.
func (p *Position) IsMated() bool {
	return p.OurKingInCheck() && !p.hasLegalMove()
}

// MateInOne searches for a single move of the side to move that delivers
// immediate checkmate. Drop-pawn mates never appear: the generator already
// filters the prohibited drop. Returns the mating move, or MoveNone and
// false when none exists.
func MateInOne(p *Position) (Move, bool) {
	var buf [MoveBufferCap]Move
	for _, m := range p.GenerateChecksInto(buf[:0]) {
		ok, st := p.MakeMove(m)
		if !ok {
			continue
		}
		mated := !p.hasLegalMove()
		p.UnmakeMove(st)
		if mated {
			return m, true
		}
	}
	return MoveNone, false
}

// Mate3Result reports a forced mate in at most three plies. Defense and
// FinalMove record one sample line; both are MoveNone when the first move
// already mates.
type Mate3Result struct {
	MateMove  Move
	Defense   Move
	FinalMove Move
}

// MateInThree proves a forced mate in at most three plies for the side to
// move: either an immediate mate, or a check such that every legal defense
// is answered by an immediate mate.
func MateInThree(p *Position) (Mate3Result, bool) {
	if m, ok := MateInOne(p); ok {
		return Mate3Result{MateMove: m}, true
	}
	var buf [MoveBufferCap]Move
	for _, m := range p.GenerateChecksInto(buf[:0]) {
		ok, st := p.MakeMove(m)
		if !ok {
			continue
		}
		defense, final, proved := allDefensesMated(p)
		p.UnmakeMove(st)
		if proved {
			return Mate3Result{MateMove: m, Defense: defense, FinalMove: final}, true
		}
	}
	return Mate3Result{}, false
}

// allDefensesMated verifies that every legal reply of the side to move runs
// into an immediate mate, returning one sample defense and its refutation.
// A position with no legal reply is proved vacuously.
func allDefensesMated(p *Position) (defense, final Move, ok bool) {
	var buf [MoveBufferCap]Move
	for _, d := range p.GenerateMovesInto(GenAll, buf[:0]) {
		okd, st := p.MakeMove(d)
		if !okd {
			continue
		}
		fm, mated := MateInOne(p)
		p.UnmakeMove(st)
		if !mated {
			return MoveNone, MoveNone, false
		}
		if defense == MoveNone {
			defense, final = d, fm
		}
	}
	return defense, final, true
}
