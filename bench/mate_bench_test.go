package bench

import (
	"testing"

	sm "github.com/kubongo3/Gikou/shogimg"
)

func benchMateInOne(b *testing.B, sfen string) {
	p, err := sm.ParseSFEN(sfen)
	if err != nil {
		b.Fatalf("ParseSFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sm.MateInOne(p)
	}
}

func BenchmarkMateInOne_Hit(b *testing.B) {
	benchMateInOne(b, "4k4/9/9/3N5/9/9/9/9/8K b G 1")
}

func BenchmarkMateInOne_Miss(b *testing.B) {
	benchMateInOne(b, festivalPos)
}

func BenchmarkMateInThree(b *testing.B) {
	p, err := sm.ParseSFEN("8k/7p1/6N2/7S1/9/9/9/9/K8 b 2G 1")
	if err != nil {
		b.Fatalf("ParseSFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sm.MateInThree(p)
	}
}
