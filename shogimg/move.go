package shogimg

// Move encodes a shogi move in a 32-bit value. The raw integer defines the
// canonical total order used for deterministic sorting.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveToShift      = 0  // 7 bits
	moveFromShift    = 7  // 7 bits
	movePromoteShift = 14 // 1 bit
	moveDropShift    = 15 // 1 bit
	movePieceShift   = 16 // 5 bits
	moveCaptureShift = 21 // 5 bits
)

// MoveNone is the absent move.
const MoveNone Move = 0

// NewMove constructs a board move.
func NewMove(pc Piece, from, to Square, promote bool, captured Piece) Move {
	m := uint32(to)&0x7F |
		(uint32(from)&0x7F)<<moveFromShift |
		uint32(pc)<<movePieceShift |
		uint32(captured)<<moveCaptureShift
	if promote {
		m |= 1 << movePromoteShift
	}
	return Move(m)
}

// NewDrop constructs a drop of pc onto an empty square.
func NewDrop(pc Piece, to Square) Move {
	return Move(uint32(to)&0x7F | 1<<moveDropShift | uint32(pc)<<movePieceShift)
}

// To returns the destination square.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x7F) }

// From returns the source square of a board move (0 for drops).
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x7F) }

// Piece returns the moved (or dropped) piece.
func (m Move) Piece() Piece { return Piece((uint32(m) >> movePieceShift) & 0x1F) }

// Captured returns the piece captured by the move, or NoPiece.
func (m Move) Captured() Piece { return Piece((uint32(m) >> moveCaptureShift) & 0x1F) }

// IsPromotion reports whether the move promotes the moved piece.
func (m Move) IsPromotion() bool { return uint32(m)&(1<<movePromoteShift) != 0 }

// IsDrop reports whether the move is a drop from hand.
func (m Move) IsDrop() bool { return uint32(m)&(1<<moveDropShift) != 0 }

// IsCapture reports whether the move captures a piece.
func (m Move) IsCapture() bool { return m.Captured() != NoPiece }

// PieceAfter returns the piece standing on the destination after the move.
func (m Move) PieceAfter() Piece {
	if m.IsPromotion() {
		return m.Piece().Promote()
	}
	return m.Piece()
}

// String returns the SFEN form of the move: "7g7f", "2b8h+" or "P*5e".
func (m Move) String() string {
	if m == MoveNone {
		return "none"
	}
	if m.IsDrop() {
		return string([]byte{sfenPieceLetter(m.Piece().Type()), '*'}) + m.To().String()
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += "+"
	}
	return s
}
