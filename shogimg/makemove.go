package shogimg

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	move         Move
	captured     Piece
	prevKey      uint64
	prevCheckers Bitboard
}

// Move returns the move this state undoes.
func (st MoveState) Move() Move { return st.move }

// NullState stores the information needed to undo a null move.
type NullState struct {
	prevKey      uint64
	prevCheckers Bitboard
}

// MakeMove applies a move to the position. It returns ok=false if the move
// leaves the mover's king in check, restoring the original position. This is
// the legality filter for the pseudo-legal generator output.
//
// The self-check test is gated: when the mover was not already in check, only
// king moves and moves originating on a ray through the mover's king can
// expose the king, so everything else skips the attack query.
func (p *Position) MakeMove(m Move) (ok bool, st MoveState) {
	st.move = m
	st.captured = NoPiece
	st.prevKey = p.key
	st.prevCheckers = p.checkers

	us := p.sideToMove
	them := us.Flip()
	to := m.To()
	wasChecked := p.checkers.Any()

	if m.IsDrop() {
		p.removeFromHand(us, m.Piece().Type())
		p.putPiece(to, m.Piece())
	} else {
		from := m.From()
		moved := p.takePiece(from)
		if cap := p.board[to]; cap != NoPiece {
			p.takePiece(to)
			st.captured = cap
			p.addToHand(us, cap.Type().Demote())
		}
		if m.IsPromotion() {
			moved = moved.Promote()
		}
		p.putPiece(to, moved)
	}

	p.sideToMove = them
	p.key ^= zobristSide
	p.ply++

	needCheck := wasChecked ||
		(!m.IsDrop() && (m.Piece().Type() == King || raysUnion[p.kingSq[us]].Test(m.From())))
	if needCheck && p.isSquareAttacked(p.kingSq[us], them, p.AllOccupancy()) {
		p.UnmakeMove(st)
		return false, st
	}

	p.computeCheckers()
	return true, st
}

// UnmakeMove undoes a previously made move, restoring the position exactly.
func (p *Position) UnmakeMove(st MoveState) {
	m := st.move
	p.ply--
	p.sideToMove = p.sideToMove.Flip()
	us := p.sideToMove
	to := m.To()

	if m.IsDrop() {
		p.takePiece(to)
		p.addToHand(us, m.Piece().Type())
	} else {
		p.takePiece(to)
		p.putPiece(m.From(), m.Piece())
		if st.captured != NoPiece {
			p.removeFromHand(us, st.captured.Type().Demote())
			p.putPiece(to, st.captured)
		}
	}

	// Exact restoration; putPiece/takePiece XORs cancel out anyway.
	p.key = st.prevKey
	p.checkers = st.prevCheckers
}

// MakeNullMove switches the side to move without moving a piece, for use by
// external search drivers. Always reversible via UnmakeNullMove.
func (p *Position) MakeNullMove() (st NullState) {
	st.prevKey = p.key
	st.prevCheckers = p.checkers
	p.sideToMove = p.sideToMove.Flip()
	p.key ^= zobristSide
	p.ply++
	p.computeCheckers()
	return st
}

// UnmakeNullMove restores the position prior to MakeNullMove.
func (p *Position) UnmakeNullMove(st NullState) {
	p.sideToMove = p.sideToMove.Flip()
	p.ply--
	p.key = st.prevKey
	p.checkers = st.prevCheckers
}
