package shogimg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SFENStartPos is the SFEN string for the standard initial shogi position.
const SFENStartPos = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// sfenPieceLetter returns the uppercase SFEN letter for a base piece type.
func sfenPieceLetter(pt PieceType) byte {
	switch pt.Demote() {
	case Pawn:
		return 'P'
	case Lance:
		return 'L'
	case Knight:
		return 'N'
	case Silver:
		return 'S'
	case Gold:
		return 'G'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case King:
		return 'K'
	}
	return '?'
}

// baseTypeFromLetter converts an uppercase SFEN letter to a base piece type.
func baseTypeFromLetter(ch byte) PieceType {
	switch ch {
	case 'P':
		return Pawn
	case 'L':
		return Lance
	case 'N':
		return Knight
	case 'S':
		return Silver
	case 'G':
		return Gold
	case 'B':
		return Bishop
	case 'R':
		return Rook
	case 'K':
		return King
	}
	return PieceTypeNone
}

// maxHandCount caps per-type hand counts for parse validation.
var maxHandCount = [8]int{Pawn: 18, Lance: 4, Knight: 4, Silver: 4, Gold: 4, Bishop: 2, Rook: 2}

// ParseSFEN parses a single-line SFEN position string and returns a new
// Position. On error the returned position is nil and must not be used.
func ParseSFEN(sfen string) (*Position, error) {
	fields := strings.Fields(sfen)
	if len(fields) < 3 {
		return nil, errors.New("invalid SFEN: not enough fields")
	}

	p := &Position{kingSq: [2]Square{SquareNone, SquareNone}}

	// 1. Piece placement, rank 'a' first, each rank from file 9 to file 1.
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 9 {
		return nil, errors.New("invalid SFEN: board must have 9 ranks")
	}
	for r, rankStr := range ranks {
		file := 8
		promoted := false
		for i := 0; i < len(rankStr); i++ {
			ch := rankStr[i]
			switch {
			case ch == '+':
				if promoted {
					return nil, errors.New("invalid SFEN: doubled promotion marker")
				}
				promoted = true
			case ch >= '1' && ch <= '9':
				if promoted {
					return nil, errors.New("invalid SFEN: promotion marker before digit")
				}
				file -= int(ch - '0')
			default:
				c := White
				upper := ch
				if ch >= 'A' && ch <= 'Z' {
					c = Black
				} else if ch >= 'a' && ch <= 'z' {
					upper = ch - 'a' + 'A'
				} else {
					return nil, fmt.Errorf("invalid SFEN: unrecognized character %q", ch)
				}
				pt := baseTypeFromLetter(upper)
				if pt == PieceTypeNone {
					return nil, fmt.Errorf("invalid SFEN: unrecognized piece %q", ch)
				}
				if promoted {
					if !pt.CanPromote() {
						return nil, fmt.Errorf("invalid SFEN: piece %q cannot promote", ch)
					}
					pt = pt.Promote()
					promoted = false
				}
				if file < 0 {
					return nil, errors.New("invalid SFEN: too many squares in rank")
				}
				sq := MakeSquare(file, r)
				if p.board[sq] != NoPiece {
					return nil, fmt.Errorf("invalid SFEN: square %s assigned twice", sq)
				}
				if pt == King && p.kingSq[c] != SquareNone {
					return nil, errors.New("invalid SFEN: more than one king per side")
				}
				p.putPiece(sq, MakePiece(c, pt))
				file--
			}
		}
		if promoted {
			return nil, errors.New("invalid SFEN: rank ends with a promotion marker")
		}
		if file != -1 {
			return nil, errors.New("invalid SFEN: rank does not cover 9 files")
		}
	}
	if p.kingSq[Black] == SquareNone || p.kingSq[White] == SquareNone {
		return nil, errors.New("invalid SFEN: both kings must be on the board")
	}

	// 2. Side to move
	switch fields[1] {
	case "b":
		p.sideToMove = Black
	case "w":
		p.sideToMove = White
	default:
		return nil, errors.New("invalid SFEN: side to move must be 'b' or 'w'")
	}

	// 3. Hands
	if fields[2] != "-" {
		count := 0
		for i := 0; i < len(fields[2]); i++ {
			ch := fields[2][i]
			if ch >= '0' && ch <= '9' {
				count = count*10 + int(ch-'0')
				if count > 18 {
					return nil, errors.New("invalid SFEN: hand count overflow")
				}
				continue
			}
			c := White
			upper := ch
			if ch >= 'A' && ch <= 'Z' {
				c = Black
			} else if ch >= 'a' && ch <= 'z' {
				upper = ch - 'a' + 'A'
			} else {
				return nil, fmt.Errorf("invalid SFEN: unrecognized hand character %q", ch)
			}
			pt := baseTypeFromLetter(upper)
			if !pt.IsDroppable() {
				return nil, fmt.Errorf("invalid SFEN: piece %q cannot be held in hand", ch)
			}
			if count == 0 {
				count = 1
			}
			if int(p.hand[c][pt])+count > maxHandCount[pt] {
				return nil, errors.New("invalid SFEN: hand count overflow")
			}
			for j := 0; j < count; j++ {
				p.addToHand(c, pt)
			}
			count = 0
		}
		if count != 0 {
			return nil, errors.New("invalid SFEN: dangling hand count")
		}
	}

	// 4. Move number (optional, defaults to 1)
	if len(fields) > 3 {
		n, err := strconv.Atoi(fields[3])
		if err != nil || n < 1 {
			return nil, errors.New("invalid SFEN: move number is not a positive integer")
		}
		p.ply = n - 1
	}

	p.key = p.computeKey()
	p.computeCheckers()
	return p, nil
}

// ToSFEN produces the SFEN string for the current position.
func (p *Position) ToSFEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for r := 0; r < 9; r++ {
		empty := 0
		for f := 8; f >= 0; f-- {
			pc := p.board[MakeSquare(f, r)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			if pc.Type().IsPromoted() {
				sb.WriteByte('+')
			}
			ch := sfenPieceLetter(pc.Type())
			if pc.Color() == White {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if r < 8 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if p.sideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	sb.WriteByte(' ')

	// 3. Hands, black first, descending piece order as is conventional
	handOrder := []PieceType{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}
	wrote := false
	for _, c := range []Color{Black, White} {
		for _, pt := range handOrder {
			n := int(p.hand[c][pt])
			if n == 0 {
				continue
			}
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			ch := sfenPieceLetter(pt)
			if c == White {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
			wrote = true
		}
	}
	if !wrote {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')

	// 4. Move number
	sb.WriteString(strconv.Itoa(p.ply + 1))
	return sb.String()
}

// parseSquare converts an SFEN coordinate like "7g" into a Square.
func parseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < '1' || s[0] > '9' || s[1] < 'a' || s[1] > 'i' {
		return SquareNone, fmt.Errorf("invalid square %q", s)
	}
	return MakeSquare(int(s[0]-'1'), int(s[1]-'a')), nil
}

// ParseMove parses an SFEN move ("7g7f", "2b8h+", "P*5e") in the context of
// the position, filling in the moved and captured pieces from the board.
// It validates ownership and basic structure, not full legality.
func (p *Position) ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 3 && s[1] == '*' {
		pt := baseTypeFromLetter(s[0])
		if !pt.IsDroppable() {
			return MoveNone, fmt.Errorf("invalid move %q: piece cannot be dropped", s)
		}
		return MoveNone, fmt.Errorf("invalid move %q: truncated drop square", s)
	}
	if len(s) >= 4 && s[1] == '*' {
		pt := baseTypeFromLetter(s[0])
		if !pt.IsDroppable() {
			return MoveNone, fmt.Errorf("invalid move %q: piece cannot be dropped", s)
		}
		to, err := parseSquare(s[2:4])
		if err != nil {
			return MoveNone, fmt.Errorf("invalid move %q: %v", s, err)
		}
		if len(s) != 4 {
			return MoveNone, fmt.Errorf("invalid move %q: trailing characters", s)
		}
		if p.board[to] != NoPiece {
			return MoveNone, fmt.Errorf("invalid move %q: destination occupied", s)
		}
		if p.hand[p.sideToMove][pt] == 0 {
			return MoveNone, fmt.Errorf("invalid move %q: piece not in hand", s)
		}
		return NewDrop(MakePiece(p.sideToMove, pt), to), nil
	}
	if len(s) != 4 && !(len(s) == 5 && s[4] == '+') {
		return MoveNone, fmt.Errorf("invalid move %q: bad length", s)
	}
	from, err := parseSquare(s[0:2])
	if err != nil {
		return MoveNone, fmt.Errorf("invalid move %q: %v", s, err)
	}
	to, err := parseSquare(s[2:4])
	if err != nil {
		return MoveNone, fmt.Errorf("invalid move %q: %v", s, err)
	}
	pc := p.board[from]
	if pc == NoPiece || pc.Color() != p.sideToMove {
		return MoveNone, fmt.Errorf("invalid move %q: no movable piece on %s", s, from)
	}
	promote := len(s) == 5
	if promote {
		if !pc.Type().CanPromote() {
			return MoveNone, fmt.Errorf("invalid move %q: piece cannot promote", s)
		}
		if !from.IsPromotionZone(pc.Color()) && !to.IsPromotionZone(pc.Color()) {
			return MoveNone, fmt.Errorf("invalid move %q: promotion outside the zone", s)
		}
	}
	captured := p.board[to]
	if captured != NoPiece && captured.Color() == p.sideToMove {
		return MoveNone, fmt.Errorf("invalid move %q: destination holds own piece", s)
	}
	return NewMove(pc, from, to, promote, captured), nil
}
