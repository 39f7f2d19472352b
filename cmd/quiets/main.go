package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kubongo3/Gikou/shogimg"
)

// Prints the position-independent quiet-move universe, one move per line as
// the zero-padded hex encoding, in canonical ascending order.
func main() {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, m := range shogimg.AllQuietMoves() {
		fmt.Fprintf(w, "%08x\n", uint32(m))
	}
}
