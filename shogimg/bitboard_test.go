package shogimg_test

import (
	"testing"

	sm "github.com/kubongo3/Gikou/shogimg"
)

func TestBitboardBasics(t *testing.T) {
	var bb sm.Bitboard
	if bb.Any() {
		t.Fatalf("zero bitboard reports Any")
	}
	for sq := sm.Square(0); sq < 81; sq++ {
		bb = bb.Set(sq)
	}
	if got := bb.PopCount(); got != 81 {
		t.Fatalf("full board popcount: got %d want 81", got)
	}
	bb = bb.Clear(sm.MakeSquare(4, 4))
	if bb.Test(sm.MakeSquare(4, 4)) {
		t.Fatalf("cleared square still set")
	}
	if got := bb.PopCount(); got != 80 {
		t.Fatalf("popcount after clear: got %d want 80", got)
	}
}

func TestBitboardPopOrder(t *testing.T) {
	squares := []sm.Square{sm.MakeSquare(0, 0), sm.MakeSquare(4, 4), sm.MakeSquare(8, 8)}
	var bb sm.Bitboard
	for _, sq := range squares {
		bb = bb.Set(sq)
	}
	for _, want := range squares {
		if got := bb.Pop(); got != want {
			t.Fatalf("Pop: got %v want %v", got, want)
		}
	}
	if bb.Any() {
		t.Fatalf("bitboard not empty after popping all squares")
	}
}

func TestSliderAttacksBlocked(t *testing.T) {
	rook := sm.MakePiece(sm.Black, sm.Rook)
	from := sm.MakeSquare(4, 4) // 5e
	empty := sm.Bitboard{}

	open := sm.AttacksFrom(rook, from, empty)
	if got := open.PopCount(); got != 16 {
		t.Fatalf("open rook attacks: got %d want 16", got)
	}

	// A blocker on 5c stops the ray beyond it but is itself attacked.
	blocker := sm.MakeSquare(4, 2)
	occ := sm.SquareBB(blocker)
	att := sm.AttacksFrom(rook, from, occ)
	if !att.Test(blocker) {
		t.Fatalf("blocker square not attacked")
	}
	if att.Test(sm.MakeSquare(4, 1)) || att.Test(sm.MakeSquare(4, 0)) {
		t.Fatalf("attack ray passes through the blocker")
	}
	if got := att.PopCount(); got != 14 {
		t.Fatalf("blocked rook attacks: got %d want 14", got)
	}
}

func TestLanceAttacksDirectional(t *testing.T) {
	from := sm.MakeSquare(4, 4)
	empty := sm.Bitboard{}

	black := sm.AttacksFrom(sm.MakePiece(sm.Black, sm.Lance), from, empty)
	white := sm.AttacksFrom(sm.MakePiece(sm.White, sm.Lance), from, empty)
	if black.PopCount() != 4 || white.PopCount() != 4 {
		t.Fatalf("open lance attacks: got %d and %d want 4 each", black.PopCount(), white.PopCount())
	}
	if !black.Test(sm.MakeSquare(4, 0)) || black.Test(sm.MakeSquare(4, 5)) {
		t.Fatalf("black lance attacks the wrong direction")
	}
	if !white.Test(sm.MakeSquare(4, 8)) || white.Test(sm.MakeSquare(4, 3)) {
		t.Fatalf("white lance attacks the wrong direction")
	}
}

func TestStepperAttacks(t *testing.T) {
	from := sm.MakeSquare(4, 4)
	empty := sm.Bitboard{}

	cases := []struct {
		pc   sm.Piece
		want []sm.Square
	}{
		{sm.MakePiece(sm.Black, sm.Pawn), []sm.Square{sm.MakeSquare(4, 3)}},
		{sm.MakePiece(sm.White, sm.Pawn), []sm.Square{sm.MakeSquare(4, 5)}},
		{sm.MakePiece(sm.Black, sm.Knight), []sm.Square{sm.MakeSquare(3, 2), sm.MakeSquare(5, 2)}},
		{sm.MakePiece(sm.Black, sm.Gold), []sm.Square{
			sm.MakeSquare(3, 3), sm.MakeSquare(4, 3), sm.MakeSquare(5, 3),
			sm.MakeSquare(3, 4), sm.MakeSquare(5, 4), sm.MakeSquare(4, 5),
		}},
		{sm.MakePiece(sm.Black, sm.Silver), []sm.Square{
			sm.MakeSquare(3, 3), sm.MakeSquare(4, 3), sm.MakeSquare(5, 3),
			sm.MakeSquare(3, 5), sm.MakeSquare(5, 5),
		}},
	}
	for _, tc := range cases {
		att := sm.AttacksFrom(tc.pc, from, empty)
		if got := att.PopCount(); got != len(tc.want) {
			t.Errorf("%v: got %d attacks want %d", tc.pc, got, len(tc.want))
			continue
		}
		for _, sq := range tc.want {
			if !att.Test(sq) {
				t.Errorf("%v: square %v not attacked", tc.pc, sq)
			}
		}
	}
}

func TestHorseDragonCombineSteps(t *testing.T) {
	from := sm.MakeSquare(4, 4)
	empty := sm.Bitboard{}

	horse := sm.AttacksFrom(sm.MakePiece(sm.Black, sm.Horse), from, empty)
	if got := horse.PopCount(); got != 16+4 {
		t.Fatalf("horse attacks: got %d want 20", got)
	}
	dragon := sm.AttacksFrom(sm.MakePiece(sm.Black, sm.Dragon), from, empty)
	if got := dragon.PopCount(); got != 16+4 {
		t.Fatalf("dragon attacks: got %d want 20", got)
	}
}

func TestRelativeRank(t *testing.T) {
	sq := sm.MakeSquare(2, 2) // 3c
	if got := sq.RelativeRank(sm.Black); got != 3 {
		t.Fatalf("black relative rank of 3c: got %d want 3", got)
	}
	if got := sq.RelativeRank(sm.White); got != 7 {
		t.Fatalf("white relative rank of 3c: got %d want 7", got)
	}
	if !sq.IsPromotionZone(sm.Black) || sq.IsPromotionZone(sm.White) {
		t.Fatalf("promotion zone membership wrong for 3c")
	}
}
