package bench

import (
	"testing"

	sm "github.com/kubongo3/Gikou/shogimg"
)

func benchPerft(b *testing.B, sfen string, depth int) {
	p, err := sm.ParseSFEN(sfen)
	if err != nil {
		b.Fatalf("ParseSFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sm.Perft(p, depth)
	}
}

func BenchmarkPerft_Initial_D3(b *testing.B) {
	benchPerft(b, sm.SFENStartPos, 3)
}

func BenchmarkPerft_Initial_D4(b *testing.B) {
	benchPerft(b, sm.SFENStartPos, 4)
}

func BenchmarkPerft_Festival_D2(b *testing.B) {
	benchPerft(b, festivalPos, 2)
}
