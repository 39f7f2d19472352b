package shogimg

import "math/bits"

// Bitboard is an 81-bit set of squares. Squares 0..63 live in the low word
// and 64..80 in the high word; bits above square 80 are never set.
type Bitboard struct {
	lo, hi uint64
}

const hiMask = (uint64(1) << (SquareCount - 64)) - 1

// BoardBB is the set of all 81 squares.
var BoardBB = Bitboard{^uint64(0), hiMask}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	if sq < 64 {
		return Bitboard{lo: 1 << uint(sq)}
	}
	return Bitboard{hi: 1 << uint(sq-64)}
}

func (b Bitboard) Or(o Bitboard) Bitboard     { return Bitboard{b.lo | o.lo, b.hi | o.hi} }
func (b Bitboard) And(o Bitboard) Bitboard    { return Bitboard{b.lo & o.lo, b.hi & o.hi} }
func (b Bitboard) AndNot(o Bitboard) Bitboard { return Bitboard{b.lo &^ o.lo, b.hi &^ o.hi} }
func (b Bitboard) Xor(o Bitboard) Bitboard    { return Bitboard{b.lo ^ o.lo, b.hi ^ o.hi} }

// IsZero reports whether no squares are set.
func (b Bitboard) IsZero() bool { return b.lo == 0 && b.hi == 0 }

// Any reports whether at least one square is set.
func (b Bitboard) Any() bool { return !b.IsZero() }

// Test reports whether the given square is set.
func (b Bitboard) Test(sq Square) bool {
	if sq < 64 {
		return b.lo&(1<<uint(sq)) != 0
	}
	return b.hi&(1<<uint(sq-64)) != 0
}

// Set returns the bitboard with the given square set.
func (b Bitboard) Set(sq Square) Bitboard {
	if sq < 64 {
		b.lo |= 1 << uint(sq)
	} else {
		b.hi |= 1 << uint(sq-64)
	}
	return b
}

// Clear returns the bitboard with the given square cleared.
func (b Bitboard) Clear(sq Square) Bitboard {
	if sq < 64 {
		b.lo &^= 1 << uint(sq)
	} else {
		b.hi &^= 1 << uint(sq-64)
	}
	return b
}

// PopCount returns the number of set squares.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.lo) + bits.OnesCount64(b.hi)
}

// FirstOne returns the lowest set square. The bitboard must be non-empty.
func (b Bitboard) FirstOne() Square {
	if b.lo != 0 {
		return Square(bits.TrailingZeros64(b.lo))
	}
	return Square(64 + bits.TrailingZeros64(b.hi))
}

// LastOne returns the highest set square. The bitboard must be non-empty.
func (b Bitboard) LastOne() Square {
	if b.hi != 0 {
		return Square(64 + 63 - bits.LeadingZeros64(b.hi))
	}
	return Square(63 - bits.LeadingZeros64(b.lo))
}

// Pop removes and returns the lowest set square.
func (b *Bitboard) Pop() Square {
	if b.lo != 0 {
		sq := Square(bits.TrailingZeros64(b.lo))
		b.lo &= b.lo - 1
		return sq
	}
	sq := Square(64 + bits.TrailingZeros64(b.hi))
	b.hi &= b.hi - 1
	return sq
}

// ForEach calls fn for every set square in ascending order.
func (b Bitboard) ForEach(fn func(Square)) {
	for bb := b; !bb.IsZero(); {
		fn(bb.Pop())
	}
}

// ==========================
// Precomputed tables
// ==========================

// Direction indices for ray tables. The paired deltas are in square-index
// units (file*9 + rank); "north" is toward rank 'a'.
const (
	dirN = iota // rank-1
	dirS        // rank+1
	dirE        // file-1
	dirW        // file+1
	dirNE
	dirNW
	dirSE
	dirSW
	dirCount
)

var dirDelta = [dirCount][2]int{
	dirN:  {0, -1},
	dirS:  {0, 1},
	dirE:  {-1, 0},
	dirW:  {1, 0},
	dirNE: {-1, -1},
	dirNW: {1, -1},
	dirSE: {-1, 1},
	dirSW: {1, 1},
}

// dirIncreasing marks directions whose square index grows along the ray, so
// the nearest blocker is the lowest set bit.
var dirIncreasing = [dirCount]bool{
	dirS: true, dirW: true, dirNW: true, dirSW: true,
}

var (
	fileBB [9]Bitboard
	rankBB [9]Bitboard

	// rays[d][sq]: squares along direction d from sq, excluding sq.
	rays [dirCount][SquareCount]Bitboard

	// raysUnion[sq]: union of all eight rays from sq.
	raysUnion [SquareCount]Bitboard

	// between[a][b]: squares strictly between a and b when aligned, else empty.
	between [SquareCount][SquareCount]Bitboard

	// maxAttacks[piece][sq]: reachable squares ignoring occupancy.
	maxAttacks [pieceCodeCount][SquareCount]Bitboard

	// promoZoneBB[c]: the three ranks of c's promotion zone.
	promoZoneBB [2]Bitboard

	// dropTargetBB[c][pt]: ranks where pt may legally be dropped by c.
	dropTargetBB [2][8]Bitboard
)

// Stepper offsets for Black; White is derived by negating the rank delta.
var blackSteps = map[PieceType][][2]int{
	Pawn:   {{0, -1}},
	Knight: {{-1, -2}, {1, -2}},
	Silver: {{0, -1}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}},
	Gold:   {{0, -1}, {-1, -1}, {1, -1}, {-1, 0}, {1, 0}, {0, 1}},
	King:   {{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}},
}

func init() {
	initMasks()
	initRays()
	initMaxAttacks()
	initDropTargets()
	initQuietUniverse()
}

func initMasks() {
	for f := 0; f < 9; f++ {
		for r := 0; r < 9; r++ {
			sq := MakeSquare(f, r)
			fileBB[f] = fileBB[f].Set(sq)
			rankBB[r] = rankBB[r].Set(sq)
		}
	}
	promoZoneBB[Black] = rankBB[0].Or(rankBB[1]).Or(rankBB[2])
	promoZoneBB[White] = rankBB[6].Or(rankBB[7]).Or(rankBB[8])
}

func initRays() {
	for sq := Square(0); sq < SquareCount; sq++ {
		f, r := sq.File(), sq.Rank()
		for d := 0; d < dirCount; d++ {
			df, dr := dirDelta[d][0], dirDelta[d][1]
			var ray Bitboard
			for tf, tr := f+df, r+dr; tf >= 0 && tf < 9 && tr >= 0 && tr < 9; tf, tr = tf+df, tr+dr {
				ray = ray.Set(MakeSquare(tf, tr))
			}
			rays[d][sq] = ray
			raysUnion[sq] = raysUnion[sq].Or(ray)
		}
	}
	for a := Square(0); a < SquareCount; a++ {
		for d := 0; d < dirCount; d++ {
			ray := rays[d][a]
			ray.ForEach(func(b Square) {
				between[a][b] = rays[d][a].AndNot(rays[d][b]).Clear(b)
			})
		}
	}
}

func stepAttacks(c Color, steps [][2]int, sq Square) Bitboard {
	f, r := sq.File(), sq.Rank()
	var bb Bitboard
	for _, s := range steps {
		df, dr := s[0], s[1]
		if c == White {
			dr = -dr
		}
		tf, tr := f+df, r+dr
		if tf >= 0 && tf < 9 && tr >= 0 && tr < 9 {
			bb = bb.Set(MakeSquare(tf, tr))
		}
	}
	return bb
}

func initMaxAttacks() {
	for c := Black; c <= White; c++ {
		lanceDir := dirN
		if c == White {
			lanceDir = dirS
		}
		for sq := Square(0); sq < SquareCount; sq++ {
			diag := rays[dirNE][sq].Or(rays[dirNW][sq]).Or(rays[dirSE][sq]).Or(rays[dirSW][sq])
			ortho := rays[dirN][sq].Or(rays[dirS][sq]).Or(rays[dirE][sq]).Or(rays[dirW][sq])
			king := stepAttacks(c, blackSteps[King], sq)
			gold := stepAttacks(c, blackSteps[Gold], sq)

			set := func(pt PieceType, bb Bitboard) {
				maxAttacks[MakePiece(c, pt)][sq] = bb
			}
			set(Pawn, stepAttacks(c, blackSteps[Pawn], sq))
			set(Lance, rays[lanceDir][sq])
			set(Knight, stepAttacks(c, blackSteps[Knight], sq))
			set(Silver, stepAttacks(c, blackSteps[Silver], sq))
			set(Gold, gold)
			set(Bishop, diag)
			set(Rook, ortho)
			set(King, king)
			set(ProPawn, gold)
			set(ProLance, gold)
			set(ProKnight, gold)
			set(ProSilver, gold)
			set(Horse, diag.Or(king))
			set(Dragon, ortho.Or(king))
		}
	}
}

func initDropTargets() {
	for c := Black; c <= White; c++ {
		var rel [10]Bitboard // rel[k]: squares with relative rank k for c
		for sq := Square(0); sq < SquareCount; sq++ {
			rel[sq.RelativeRank(c)] = rel[sq.RelativeRank(c)].Set(sq)
		}
		all := BoardBB
		noLast := all.AndNot(rel[1])
		noLastTwo := noLast.AndNot(rel[2])
		dropTargetBB[c][Pawn] = noLast
		dropTargetBB[c][Lance] = noLast
		dropTargetBB[c][Knight] = noLastTwo
		dropTargetBB[c][Silver] = all
		dropTargetBB[c][Bishop] = all
		dropTargetBB[c][Rook] = all
		dropTargetBB[c][Gold] = all
	}
}

// relRankBB returns the squares whose relative rank for c lies in [lo, hi].
func relRankBB(c Color, lo, hi int) Bitboard {
	var bb Bitboard
	for sq := Square(0); sq < SquareCount; sq++ {
		if rr := sq.RelativeRank(c); rr >= lo && rr <= hi {
			bb = bb.Set(sq)
		}
	}
	return bb
}

// ==========================
// Occlusion-aware attacks
// ==========================

// rayAttack truncates the ray from sq in direction d at the first blocker.
func rayAttack(d int, sq Square, occ Bitboard) Bitboard {
	ray := rays[d][sq]
	blockers := ray.And(occ)
	if blockers.IsZero() {
		return ray
	}
	var first Square
	if dirIncreasing[d] {
		first = blockers.FirstOne()
	} else {
		first = blockers.LastOne()
	}
	return ray.AndNot(rays[d][first])
}

// rookSlide returns rook-pattern attacks from sq against the occupancy.
func rookSlide(sq Square, occ Bitboard) Bitboard {
	bb := rayAttack(dirN, sq, occ)
	bb = bb.Or(rayAttack(dirS, sq, occ))
	bb = bb.Or(rayAttack(dirE, sq, occ))
	bb = bb.Or(rayAttack(dirW, sq, occ))
	return bb
}

// bishopSlide returns bishop-pattern attacks from sq against the occupancy.
func bishopSlide(sq Square, occ Bitboard) Bitboard {
	bb := rayAttack(dirNE, sq, occ)
	bb = bb.Or(rayAttack(dirNW, sq, occ))
	bb = bb.Or(rayAttack(dirSE, sq, occ))
	bb = bb.Or(rayAttack(dirSW, sq, occ))
	return bb
}

// lanceSlide returns lance attacks for the given color.
func lanceSlide(c Color, sq Square, occ Bitboard) Bitboard {
	if c == Black {
		return rayAttack(dirN, sq, occ)
	}
	return rayAttack(dirS, sq, occ)
}

// MaxAttacks returns the reachability of a piece from sq ignoring occupancy.
// Used by the quiet-move universe enumerator and by attack queries on
// non-sliding pieces.
func MaxAttacks(pc Piece, sq Square) Bitboard { return maxAttacks[pc][sq] }

// AttacksFrom returns the squares attacked by pc standing on sq given the
// occupancy. Non-sliders read the maximal table directly; sliders truncate
// each ray at the first blocker.
func AttacksFrom(pc Piece, sq Square, occ Bitboard) Bitboard {
	switch pc.Type() {
	case Lance:
		return lanceSlide(pc.Color(), sq, occ)
	case Bishop:
		return bishopSlide(sq, occ)
	case Rook:
		return rookSlide(sq, occ)
	case Horse:
		return bishopSlide(sq, occ).Or(maxAttacks[MakePiece(pc.Color(), King)][sq])
	case Dragon:
		return rookSlide(sq, occ).Or(maxAttacks[MakePiece(pc.Color(), King)][sq])
	default:
		return maxAttacks[pc][sq]
	}
}
