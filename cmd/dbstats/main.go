package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kubongo3/Gikou/gamedb"
)

func main() {
	dbPath := flag.String("db", "kifu_db.txt", "game database file")
	event := flag.String("event", "", "restrict statistics to one event name")
	ratings := flag.Bool("ratings", false, "compute player ratings instead of db stats")
	validate := flag.Bool("validate", false, "replay every game through the move generator")
	flag.Parse()

	f, err := os.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening database: %v\n", err)
		os.Exit(2)
	}
	defer f.Close()

	r, err := gamedb.NewReader(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading database: %v\n", err)
		os.Exit(2)
	}
	games, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading database: %v\n", err)
		os.Exit(2)
	}

	if *validate {
		for i, g := range games {
			if _, err := g.Replay(); err != nil {
				fmt.Fprintf(os.Stderr, "game %d (%s vs %s): %v\n", i+1, g.Black, g.White, err)
				os.Exit(1)
			}
		}
		fmt.Printf("%d games replayed without errors\n", len(games))
	}

	if *ratings {
		for _, pr := range gamedb.ComputeRatings(games) {
			fmt.Printf("%s %d\n", pr.Name, pr.Rating)
		}
		return
	}

	stats := gamedb.ComputeStats(games, *event)
	for i, o := range stats.Openings {
		fmt.Printf("%d, %s, %d, %d, %.1f%%\n",
			i, o.Name, o.Freq, o.BlackWins, 100*o.BlackWinRate())
	}
	for _, e := range stats.Events {
		fmt.Printf("%s, %d\n", e.Name, e.Freq)
	}
}
