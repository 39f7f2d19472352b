package shogimg

import "math/rand"

// Zobrist tables for pieces on squares, hand counts, and side to move.
// Hand counts are keyed by exact count so that increments/decrements stay a
// two-XOR update.
var zobristPiece [pieceCodeCount][SquareCount]uint64
var zobristHand [2][8][19]uint64
var zobristSide uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed for reproducibility in tests
	rnd := rand.New(rand.NewSource(0x5F3759DF))

	for pc := 0; pc < pieceCodeCount; pc++ {
		for sq := 0; sq < SquareCount; sq++ {
			zobristPiece[pc][sq] = rnd.Uint64()
		}
	}
	for c := 0; c < 2; c++ {
		for pt := 0; pt < 8; pt++ {
			// Count 0 hashes to zero so an empty hand contributes nothing.
			for n := 1; n <= 18; n++ {
				zobristHand[c][pt][n] = rnd.Uint64()
			}
		}
	}
	zobristSide = rnd.Uint64()
}

// computeKey recalculates the Zobrist key for the current state from scratch.
func (p *Position) computeKey() uint64 {
	var key uint64
	for sq := Square(0); sq < SquareCount; sq++ {
		if pc := p.board[sq]; pc != NoPiece {
			key ^= zobristPiece[pc][sq]
		}
	}
	for c := Black; c <= White; c++ {
		for pt := Pawn; pt <= Gold; pt++ {
			key ^= zobristHand[c][pt][p.hand[c][pt]]
		}
	}
	if p.sideToMove == White {
		key ^= zobristSide
	}
	return key
}
