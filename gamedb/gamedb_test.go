package gamedb_test

import (
	"io"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/kubongo3/Gikou/gamedb"
	"github.com/kubongo3/Gikou/shogimg"
)

const sampleRecord = "2024-04-01\tSato\tWatanabe\tb\tMeijin\tYagura\t7g7f\t3c3d\t8h2b+\t3a3b"

func TestParseGame(t *testing.T) {
	g, err := gamedb.ParseGame(sampleRecord)
	if err != nil {
		t.Fatalf("ParseGame: %v", err)
	}
	if g.Date != "2024-04-01" || g.Black != "Sato" || g.White != "Watanabe" {
		t.Fatalf("header fields wrong: %+v", g)
	}
	if g.Result != gamedb.BlackWin || g.Event != "Meijin" || g.Opening != "Yagura" {
		t.Fatalf("result fields wrong: %+v", g)
	}
	if len(g.Moves) != 4 || g.Moves[0] != "7g7f" || g.Moves[3] != "3a3b" {
		t.Fatalf("moves wrong: %v", g.Moves)
	}
	if g.Winner() != "Sato" || g.Loser() != "Watanabe" {
		t.Fatalf("winner/loser wrong")
	}
	if g.Player(shogimg.Black) != "Sato" || g.Player(shogimg.White) != "Watanabe" {
		t.Fatalf("Player lookup wrong")
	}
}

func TestParseGameErrors(t *testing.T) {
	cases := []string{
		"",
		"2024-04-01\tSato\tWatanabe\tb\tMeijin",          // too few fields
		"2024-04-01\tSato\tWatanabe\tx\tMeijin\tYagura",  // bad result
		"2024-04-01\t\tWatanabe\tb\tMeijin\tYagura",      // empty black
		"2024-04-01\tSato\t\tw\tMeijin\tYagura",          // empty white
	}
	for _, line := range cases {
		if _, err := gamedb.ParseGame(line); err == nil {
			t.Errorf("ParseGame(%q): expected error, got none", line)
		}
	}
}

func TestReadGameSkipsCommentsAndBlanks(t *testing.T) {
	input := "# header comment\n\n" + sampleRecord + "\r\n\n"
	r, err := gamedb.NewReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	g, err := r.ReadGame()
	if err != nil {
		t.Fatalf("ReadGame: %v", err)
	}
	if g.Black != "Sato" {
		t.Fatalf("black: got %q want %q", g.Black, "Sato")
	}
	if _, err := r.ReadGame(); err != io.EOF {
		t.Fatalf("expected io.EOF after last record, got %v", err)
	}
}

func TestReadGameReportsLine(t *testing.T) {
	input := sampleRecord + "\nbroken record\n"
	r, err := gamedb.NewReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.ReadGame(); err != nil {
		t.Fatalf("first record: %v", err)
	}
	_, err = r.ReadGame()
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected a line 2 error, got %v", err)
	}
}

func TestReaderDecodesShiftJIS(t *testing.T) {
	record := "2024-04-01\t羽生\t藤井\tw\t名人戦\t矢倉\t7g7f"
	encoded, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	r, err := gamedb.NewReader(strings.NewReader(encoded))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	g, err := r.ReadGame()
	if err != nil {
		t.Fatalf("ReadGame: %v", err)
	}
	if g.Black != "羽生" || g.White != "藤井" || g.Opening != "矢倉" {
		t.Fatalf("shift-jis record decoded wrong: %+v", g)
	}
}

func TestReplay(t *testing.T) {
	g, err := gamedb.ParseGame(sampleRecord)
	if err != nil {
		t.Fatalf("ParseGame: %v", err)
	}
	p, err := g.Replay()
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if got := p.HandCount(shogimg.Black, shogimg.Bishop); got != 1 {
		t.Fatalf("black hand bishops: got %d want 1", got)
	}
	if got := p.SideToMove(); got != shogimg.Black {
		t.Fatalf("side to move after 4 plies: got %v want black", got)
	}
	if !p.Validate() {
		t.Fatalf("replayed position fails validation")
	}
}

func TestReplayRejectsIllegalMove(t *testing.T) {
	g := &gamedb.Game{
		Date: "2024-04-01", Black: "A", White: "B",
		Result: gamedb.BlackWin, Event: "e", Opening: "o",
		Moves: []string{"7g7e"},
	}
	if _, err := g.Replay(); err == nil {
		t.Fatalf("two-square pawn move accepted")
	}
}
