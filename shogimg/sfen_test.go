package shogimg_test

import (
	"testing"

	sm "github.com/kubongo3/Gikou/shogimg"
)

const festivalPos = "l6nl/5+P1gk/2np1S3/p1p4Pp/3P2Sp1/1PPb2P1P/P5GS1/R8/LN4bKL w RGgsn5p 1"

func mustParse(t *testing.T, sfen string) *sm.Position {
	t.Helper()
	p, err := sm.ParseSFEN(sfen)
	if err != nil {
		t.Fatalf("ParseSFEN(%q) failed: %v", sfen, err)
	}
	return p
}

func TestParseStartPos(t *testing.T) {
	p := mustParse(t, sm.SFENStartPos)
	if got := p.SideToMove(); got != sm.Black {
		t.Fatalf("side to move: got %v want black", got)
	}
	if got := p.PieceAt(sm.MakeSquare(4, 8)); got != sm.MakePiece(sm.Black, sm.King) {
		t.Fatalf("5i: got %v want black king", got)
	}
	if got := p.PieceAt(sm.MakeSquare(4, 0)); got != sm.MakePiece(sm.White, sm.King) {
		t.Fatalf("5a: got %v want white king", got)
	}
	if got := p.PieceAt(sm.MakeSquare(1, 7)); got != sm.MakePiece(sm.Black, sm.Rook) {
		t.Fatalf("2h: got %v want black rook", got)
	}
	for pt := sm.Pawn; pt <= sm.Gold; pt++ {
		if p.HandCount(sm.Black, pt) != 0 || p.HandCount(sm.White, pt) != 0 {
			t.Fatalf("start position hands must be empty")
		}
	}
	if !p.Validate() {
		t.Fatalf("start position fails validation")
	}
}

func TestSFENRoundTrip(t *testing.T) {
	cases := []string{
		sm.SFENStartPos,
		festivalPos,
		"8k/9/6NS1/9/9/9/9/9/K8 b P 1",
		"4k4/9/9/3N5/9/9/9/9/8K b G 42",
	}
	for _, sfen := range cases {
		p := mustParse(t, sfen)
		out := p.ToSFEN()
		if out != sfen {
			t.Errorf("round trip: got %q want %q", out, sfen)
		}
		q := mustParse(t, out)
		if q.Hash() != p.Hash() {
			t.Errorf("re-parsed %q: hash mismatch", out)
		}
	}
}

func TestParseSFENErrors(t *testing.T) {
	cases := []string{
		"",
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL",   // missing fields
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1 b - 1",       // 8 ranks
		"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL x - 1", // bad side
		"9/9/9/9/9/9/9/9/9 b - 1",                // no kings
		"k3K4/4K4/9/9/9/9/9/9/9 b - 1",           // two black kings
		"4k4/9/9/9/9/9/9/9/4K4 b 19P 1",          // hand overflow
		"4k4/9/9/9/9/9/9/9/4K4 b 3R 1",           // too many rooks in hand
		"4k4/9/9/9/9/9/9/9/4K4 b - 0",            // bad move number
		"4k4/9/9/9/9/9/9/9/4K4 b - x",            // non-numeric move number
		"4z4/9/9/9/9/9/9/9/4K4 b - 1",            // unknown piece letter
		"4+g4/9/9/9/9/9/9/9/4K4 b - 1",           // gold cannot promote
		"4k4+/9/9/9/9/9/9/9/4K4 b - 1",           // dangling promotion marker
		"9+/4k4/9/9/9/9/9/9/4K4 b - 1",           // promotion marker after full rank
		"ln1sgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1", // short rank
	}
	for _, sfen := range cases {
		if _, err := sm.ParseSFEN(sfen); err == nil {
			t.Errorf("ParseSFEN(%q): expected error, got none", sfen)
		}
	}
}

func TestParseMove(t *testing.T) {
	p := mustParse(t, sm.SFENStartPos)

	m, err := p.ParseMove("7g7f")
	if err != nil {
		t.Fatalf("ParseMove(7g7f): %v", err)
	}
	if m.From() != sm.MakeSquare(6, 6) || m.To() != sm.MakeSquare(6, 5) {
		t.Fatalf("7g7f: wrong squares: %s", m)
	}
	if m.Piece() != sm.MakePiece(sm.Black, sm.Pawn) || m.IsDrop() || m.IsCapture() || m.IsPromotion() {
		t.Fatalf("7g7f: wrong move attributes: %s", m)
	}
	if got := m.String(); got != "7g7f" {
		t.Fatalf("move string: got %q want %q", got, "7g7f")
	}

	bad := []string{
		"",
		"7g",
		"7g7f++",
		"7g7x",
		"5e5d",   // no piece on 5e
		"3a3b",   // white piece, black to move
		"7g7f+",  // promotion outside the zone
		"P*5e",   // pawn not in hand
		"K*5e",   // king is not droppable
		"P*7g",   // destination occupied
	}
	for _, s := range bad {
		if _, err := p.ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q): expected error, got none", s)
		}
	}
}

func TestParseDropMove(t *testing.T) {
	p := mustParse(t, "4k4/9/9/3N5/9/9/9/9/8K b G 1")
	m, err := p.ParseMove("G*5b")
	if err != nil {
		t.Fatalf("ParseMove(G*5b): %v", err)
	}
	want := sm.NewDrop(sm.MakePiece(sm.Black, sm.Gold), sm.MakeSquare(4, 1))
	if m != want {
		t.Fatalf("G*5b: got %s want %s", m, want)
	}
	if got := m.String(); got != "G*5b" {
		t.Fatalf("drop string: got %q want %q", got, "G*5b")
	}
}
