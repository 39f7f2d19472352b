// Package gamedb reads line-oriented shogi game records and derives
// statistics and player ratings from them. Records are validated against the
// movegen core by full replay.
package gamedb

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/kubongo3/Gikou/shogimg"
)

// Result is the outcome of a recorded game.
type Result int

const (
	Draw Result = iota
	BlackWin
	WhiteWin
)

func parseResult(s string) (Result, error) {
	switch s {
	case "b":
		return BlackWin, nil
	case "w":
		return WhiteWin, nil
	case "d":
		return Draw, nil
	}
	return Draw, fmt.Errorf("invalid result %q", s)
}

// Game is one database record. Moves holds the SFEN move tokens as read;
// Replay converts and validates them.
type Game struct {
	Date    string
	Black   string
	White   string
	Result  Result
	Event   string
	Opening string
	Moves   []string
}

// Player returns the name of the player holding the given color.
func (g *Game) Player(c shogimg.Color) string {
	if c == shogimg.Black {
		return g.Black
	}
	return g.White
}

// Winner returns the winning player's name. The game must not be a draw.
func (g *Game) Winner() string {
	if g.Result == BlackWin {
		return g.Black
	}
	return g.White
}

// Loser returns the losing player's name. The game must not be a draw.
func (g *Game) Loser() string {
	if g.Result == BlackWin {
		return g.White
	}
	return g.Black
}

// Reader yields game records from a database stream, one per non-empty line.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader buffers the input and wraps it in a record scanner. Files that
// are not valid UTF-8 are decoded as Shift-JIS, the encoding of the upstream
// record collections.
func NewReader(r io.Reader) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("gamedb: decode shift-jis: %w", err)
		}
		data = decoded
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	// A full game in one line easily exceeds the default token size.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{sc: sc}, nil
}

// ReadGame returns the next record, or io.EOF after the last one. Blank
// lines and '#' comments are skipped.
func (r *Reader) ReadGame() (*Game, error) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimRight(r.sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g, err := ParseGame(line)
		if err != nil {
			return nil, fmt.Errorf("gamedb: line %d: %w", r.line, err)
		}
		return g, nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// ReadAll drains the reader into a slice of games.
func (r *Reader) ReadAll() ([]*Game, error) {
	var games []*Game
	for {
		g, err := r.ReadGame()
		if err == io.EOF {
			return games, nil
		}
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
}

// ParseGame parses a single tab-separated record:
//
//	date  black  white  result  event  opening  move1  move2 ...
//
// result is "b" (black win), "w" (white win) or "d" (draw). Moves are SFEN
// move tokens, one per field, and may be absent.
func ParseGame(line string) (*Game, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 6 {
		return nil, errors.New("record needs at least 6 fields")
	}
	res, err := parseResult(fields[3])
	if err != nil {
		return nil, err
	}
	g := &Game{
		Date:    fields[0],
		Black:   fields[1],
		White:   fields[2],
		Result:  res,
		Event:   fields[4],
		Opening: fields[5],
	}
	if g.Black == "" || g.White == "" {
		return nil, errors.New("player names must not be empty")
	}
	for _, tok := range fields[6:] {
		if tok == "" {
			continue
		}
		g.Moves = append(g.Moves, tok)
	}
	return g, nil
}

// Replay plays the recorded moves from the standard start position,
// verifying each against the full legal move set, and returns the final
// position.
func (g *Game) Replay() (*shogimg.Position, error) {
	p, err := shogimg.ParseSFEN(shogimg.SFENStartPos)
	if err != nil {
		return nil, err
	}
	buf := make([]shogimg.Move, 0, shogimg.MoveBufferCap)
	for i, tok := range g.Moves {
		m, err := p.ParseMove(tok)
		if err != nil {
			return nil, fmt.Errorf("gamedb: move %d: %w", i+1, err)
		}
		legal := false
		for _, lm := range p.GenerateLegalMovesInto(buf) {
			if lm == m {
				legal = true
				break
			}
		}
		if !legal {
			return nil, fmt.Errorf("gamedb: move %d (%s): illegal in this position", i+1, tok)
		}
		if ok, _ := p.MakeMove(m); !ok {
			return nil, fmt.Errorf("gamedb: move %d (%s): rejected by make", i+1, tok)
		}
	}
	return p, nil
}
