package shogimg

// Color identifies a side. Black (sente) moves first and advances toward
// rank 'a'; White (gote) advances toward rank 'i'.
type Color uint8

const (
	Black Color = 0
	White Color = 1
)

// Flip returns the opposite color.
func (c Color) Flip() Color { return c ^ 1 }

// PieceType is a colorless piece kind used for table lookups and hand
// indexing. Promoted forms are base type + 8 for the six promotable types.
type PieceType uint8

const (
	PieceTypeNone PieceType = 0
	Pawn          PieceType = 1
	Lance         PieceType = 2
	Knight        PieceType = 3
	Silver        PieceType = 4
	Bishop        PieceType = 5
	Rook          PieceType = 6
	Gold          PieceType = 7
	King          PieceType = 8
	ProPawn       PieceType = 9  // tokin
	ProLance      PieceType = 10
	ProKnight     PieceType = 11
	ProSilver     PieceType = 12
	Horse         PieceType = 13 // promoted bishop
	Dragon        PieceType = 14 // promoted rook
)

const pieceTypeCount = 15

// CanPromote reports whether the piece type has a promoted form.
func (pt PieceType) CanPromote() bool { return pt >= Pawn && pt <= Rook }

// IsDroppable reports whether the piece type may be held in hand and dropped.
func (pt PieceType) IsDroppable() bool { return pt >= Pawn && pt <= Gold }

// Promote returns the promoted form of a promotable type.
func (pt PieceType) Promote() PieceType { return pt + 8 }

// Demote strips promotion, returning the base type (identity for base types).
func (pt PieceType) Demote() PieceType {
	if pt > King {
		return pt - 8
	}
	return pt
}

// IsPromoted reports whether the type is a promoted form.
func (pt PieceType) IsPromoted() bool { return pt > King }

// movesLikeGold reports whether the type has the gold movement pattern.
func (pt PieceType) movesLikeGold() bool {
	return pt == Gold || (pt >= ProPawn && pt <= ProSilver)
}

// Piece is a (type, color) pair packed into 5 bits: type in the low 4 bits,
// color in bit 4. The zero value is NoPiece (an empty square).
type Piece uint8

const NoPiece Piece = 0

// MakePiece combines a color and a type.
func MakePiece(c Color, pt PieceType) Piece { return Piece(uint8(c)<<4 | uint8(pt)) }

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 0xF) }

// Color returns the side that owns the piece. NoPiece defaults to Black.
func (p Piece) Color() Color { return Color(p >> 4) }

// Promote returns the same piece with its promoted type.
func (p Piece) Promote() Piece { return p + 8 }

const pieceCodeCount = 32 // 5-bit piece codes

// Square is a board cell index in [0, 81): index = file*9 + rank, where
// file 0 is SFEN file 1 and rank 0 is SFEN rank 'a'.
type Square int8

const (
	SquareNone  Square = -1
	SquareCount        = 81
)

// MakeSquare builds a square from zero-based file and rank indices.
func MakeSquare(file, rank int) Square { return Square(file*9 + rank) }

// File returns the zero-based file index (0 = SFEN file 1).
func (sq Square) File() int { return int(sq) / 9 }

// Rank returns the zero-based rank index (0 = SFEN rank 'a').
func (sq Square) Rank() int { return int(sq) % 9 }

// RelativeRank returns the 1-based rank counted from the far side of the
// given color: 1 is the farthest rank (where pawns can no longer advance).
func (sq Square) RelativeRank(c Color) int {
	if c == Black {
		return sq.Rank() + 1
	}
	return 9 - sq.Rank()
}

// IsPromotionZone reports whether the square lies in the promotion zone of
// the given color (the three ranks nearest the opponent).
func (sq Square) IsPromotionZone(c Color) bool { return sq.RelativeRank(c) <= 3 }

// String returns the SFEN coordinate of the square, e.g. "7g".
func (sq Square) String() string {
	if sq == SquareNone {
		return "-"
	}
	return string([]byte{'1' + byte(sq.File()), 'a' + byte(sq.Rank())})
}

// Position holds full mutable board state: piece placement, hands, side to
// move, king locations and the Zobrist key. A Position is owned by a single
// goroutine; see MakeMove/UnmakeMove for the mutation contract.
type Position struct {
	board    [SquareCount]Piece
	byType   [2][pieceTypeCount]Bitboard
	occupied [2]Bitboard

	// hand[c][pt] is the count of piece type pt (Pawn..Gold) in c's hand.
	hand [2][8]int8

	sideToMove Color
	kingSq     [2]Square
	key        uint64
	ply        int

	// checkers caches the pieces giving check to the side to move. It is
	// recomputed after every make/unmake so check dispatch and evasion
	// generation need no extra attack query.
	checkers Bitboard
}

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// KingSquare returns the king location for the given color.
func (p *Position) KingSquare(c Color) Square { return p.kingSq[c] }

// PieceAt returns the piece on a square, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

// HandCount returns how many pieces of the given droppable type c holds.
func (p *Position) HandCount(c Color, pt PieceType) int { return int(p.hand[c][pt]) }

// Ply returns the number of half-moves played since construction.
func (p *Position) Ply() int { return p.ply }

// Hash returns the current Zobrist key.
func (p *Position) Hash() uint64 { return p.key }

// Occupancy returns the occupancy bitboard of one color.
func (p *Position) Occupancy(c Color) Bitboard { return p.occupied[c] }

// AllOccupancy returns the bitboard of all occupied squares.
func (p *Position) AllOccupancy() Bitboard { return p.occupied[Black].Or(p.occupied[White]) }

// Pieces returns the bitboard of the given color and type.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard { return p.byType[c][pt] }

// goldLike returns all pieces of c that move with the gold pattern.
func (p *Position) goldLike(c Color) Bitboard {
	bb := p.byType[c][Gold]
	bb = bb.Or(p.byType[c][ProPawn])
	bb = bb.Or(p.byType[c][ProLance])
	bb = bb.Or(p.byType[c][ProKnight])
	bb = bb.Or(p.byType[c][ProSilver])
	return bb
}

// putPiece places a piece on an empty square and updates bitboards, king
// square and Zobrist. The square must be empty.
func (p *Position) putPiece(sq Square, pc Piece) {
	c := pc.Color()
	pt := pc.Type()
	p.board[sq] = pc
	p.byType[c][pt] = p.byType[c][pt].Set(sq)
	p.occupied[c] = p.occupied[c].Set(sq)
	if pt == King {
		p.kingSq[c] = sq
	}
	p.key ^= zobristPiece[pc][sq]
}

// takePiece removes the piece from a square and returns it.
func (p *Position) takePiece(sq Square) Piece {
	pc := p.board[sq]
	if pc == NoPiece {
		return NoPiece
	}
	c := pc.Color()
	pt := pc.Type()
	p.board[sq] = NoPiece
	p.byType[c][pt] = p.byType[c][pt].Clear(sq)
	p.occupied[c] = p.occupied[c].Clear(sq)
	p.key ^= zobristPiece[pc][sq]
	return pc
}

// addToHand adds one piece of the given base type to c's hand.
func (p *Position) addToHand(c Color, pt PieceType) {
	n := p.hand[c][pt]
	p.key ^= zobristHand[c][pt][n]
	p.hand[c][pt] = n + 1
	p.key ^= zobristHand[c][pt][n+1]
}

// removeFromHand removes one piece of the given base type from c's hand.
// A count going negative is a caller defect, not a recoverable state.
func (p *Position) removeFromHand(c Color, pt PieceType) {
	n := p.hand[c][pt]
	if n <= 0 {
		panic("shogimg: hand count underflow")
	}
	p.key ^= zobristHand[c][pt][n]
	p.hand[c][pt] = n - 1
	p.key ^= zobristHand[c][pt][n-1]
}

// InCheck reports whether the given color's king is currently attacked.
func (p *Position) InCheck(c Color) bool {
	if c == p.sideToMove {
		return p.checkers.Any()
	}
	return p.isSquareAttacked(p.kingSq[c], c.Flip(), p.AllOccupancy())
}

// OurKingInCheck reports whether the side to move is in check.
func (p *Position) OurKingInCheck() bool { return p.checkers.Any() }

// Checkers returns the pieces currently giving check to the side to move.
func (p *Position) Checkers() Bitboard { return p.checkers }

// computeCheckers refreshes the cached checkers of the side to move.
func (p *Position) computeCheckers() {
	us := p.sideToMove
	p.checkers = p.attackersTo(p.kingSq[us], us.Flip(), p.AllOccupancy())
}

// Validate checks internal consistency between the board array, the per-type
// bitboards, occupancy, king squares and the Zobrist key.
func (p *Position) Validate() bool {
	var byType [2][pieceTypeCount]Bitboard
	var occ [2]Bitboard
	kings := [2]int{}
	for sq := Square(0); sq < SquareCount; sq++ {
		pc := p.board[sq]
		if pc == NoPiece {
			continue
		}
		c := pc.Color()
		byType[c][pc.Type()] = byType[c][pc.Type()].Set(sq)
		occ[c] = occ[c].Set(sq)
		if pc.Type() == King {
			kings[c]++
			if p.kingSq[c] != sq {
				return false
			}
		}
	}
	if kings[Black] != 1 || kings[White] != 1 {
		return false
	}
	for c := Black; c <= White; c++ {
		if occ[c] != p.occupied[c] {
			return false
		}
		for pt := Pawn; pt < pieceTypeCount; pt++ {
			if byType[c][pt] != p.byType[c][pt] {
				return false
			}
		}
	}
	us := p.sideToMove
	if p.checkers != p.attackersTo(p.kingSq[us], us.Flip(), p.AllOccupancy()) {
		return false
	}
	return p.key == p.computeKey()
}

// Clone returns an independent copy of the position.
func (p *Position) Clone() *Position {
	q := *p
	return &q
}
