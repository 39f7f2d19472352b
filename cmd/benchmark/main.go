package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/kubongo3/Gikou/shogimg"
)

// festivalPos is the "move generation festival" position, a drop-heavy
// middlegame with 207 legal moves used as the movegen stress workload.
const festivalPos = "l6nl/5+P1gk/2np1S3/p1p4Pp/3P2Sp1/1PPb2P1P/P5GS1/R8/LN4bKL w RGgsn5p 1"

// checkmateProblems is the Blunder mate test set, plus the start position
// and the festival position as known no-mates.
var checkmateProblems = []string{
	"4+R4/4n4/4S4/4k4/4p4/4NL3/9/9/8K b RBGSNLPb3g2sn2l16p 1",
	"4kp3/4g4/9/2N1N4/9/5L3/9/9/4+R3K b RBGSNLPb2g3sn2l16p 1",
	"4B3S/9/6+Rpk/8p/9/9/9/9/8K b RBGSNLP3g2s3n3l15p 1",
	"2S6/9/2kp+R3+R/9/9/2N6/9/9/8K b BGSNLPb3g2s2n3l16p 1",
	"4g2B+R/2Spk4/9/9/2N6/9/9/9/5L2K b RBGSNLP2g2s2n2l16p 1",
	"8S/9/6+Rpk/8p/9/9/9/9/8K b RBGSNLPb3g2s3n3l15p 1",
	"4g4/2Spk4/9/4B4/2N6/9/9/9/5L2K b RBGSNLPr2g2s2n2l16p 1",
	"4g4/1bSpk1S2/9/9/2N6/5L3/9/9/8K b 2rb3g2s3n3l17p 1",
	"4g4/3pk4/9/4B4/2N6/5L3/9/9/8K b RBGSNLPr2g3s2n2l16p 1",
	"lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1",
	"l6nl/5+P1gk/2np1S3/p1p4Pp/3P2Sp1/1PPb2P1P/P5GS1/R8/LN4bKL w RGgsn5p 1",
}

func main() {
	mode := flag.String("mode", "movegen", "benchmark to run: movegen | mate1 | mate3")
	calls := flag.Int("n", 1000000, "number of calls per position")
	prof := flag.Bool("profile", false, "write a CPU profile to the working directory")
	flag.Parse()

	if *prof {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	switch *mode {
	case "movegen":
		benchMovegen(*calls)
	case "mate1":
		benchMate(*calls, 1)
	case "mate3":
		benchMate(*calls, 3)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
}

func mustParse(sfen string) *shogimg.Position {
	p, err := shogimg.ParseSFEN(sfen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseSFEN error: %v\n", err)
		os.Exit(2)
	}
	return p
}

func benchMovegen(calls int) {
	fmt.Printf("Start Move Generation Benchmark!\n\n")
	for _, sfen := range []string{shogimg.SFENStartPos, festivalPos} {
		p := mustParse(sfen)
		fmt.Printf("Position=%s\n", p.ToSFEN())

		var buf [shogimg.MoveBufferCap]shogimg.Move
		var moves []shogimg.Move
		start := time.Now()
		for i := 0; i < calls; i++ {
			moves = p.GenerateMovesInto(shogimg.GenNonEvasions, buf[:0])
		}
		elapsed := seconds(start)

		fmt.Printf("Iterations Finished.\n")
		fmt.Printf("Iteration=%d, Time=%.3fsec, Speed=%.0ftimes/sec.\n",
			calls, elapsed, float64(calls)/elapsed)
		for _, m := range moves {
			fmt.Printf("%s ", m)
		}
		fmt.Printf("\n\n")
	}
}

func benchMate(calls, ply int) {
	for i, sfen := range checkmateProblems {
		p := mustParse(sfen)
		fmt.Printf("[%d] %s => ", i+1, sfen)

		mateMove := shogimg.MoveNone
		start := time.Now()
		if ply == 1 {
			for j := 0; j < calls; j++ {
				mateMove, _ = shogimg.MateInOne(p)
			}
		} else {
			for j := 0; j < calls; j++ {
				if res, ok := shogimg.MateInThree(p); ok {
					mateMove = res.MateMove
				} else {
					mateMove = shogimg.MoveNone
				}
			}
		}
		elapsed := seconds(start)

		if mateMove != shogimg.MoveNone {
			fmt.Printf("checkmate %s\n", mateMove)
		} else {
			fmt.Printf("nomate\n")
		}
		fmt.Printf("Iteration=%d, Time=%.3fsec, Speed=%.0fKcalls/sec.\n\n",
			calls, elapsed, float64(calls)/elapsed/1000)
	}
}

func seconds(start time.Time) float64 {
	s := time.Since(start).Seconds()
	if s < 0.001 {
		return 0.001
	}
	return s
}
