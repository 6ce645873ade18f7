package fluid

import "testing"

func newBenchFluid(b *testing.B) *Fluid {
	f, err := New(200, 0.0001, 0.0001, 1.0/60.0)
	if err != nil {
		b.Fatal(err)
	}
	return f
}

func BenchmarkStep(b *testing.B) {
	f := newBenchFluid(b)
	f.AddDensity(100, 100, 100)
	f.AddVelocity(100, 100, 0, 5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step()
	}
}

// Continuous injection keeps the whole grid active instead of letting the
// fields settle back toward zero.
func BenchmarkStepWithJet(b *testing.B) {
	f := newBenchFluid(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for y := 90; y <= 110; y++ {
			f.AddVelocity(1, y, 4, 0)
			f.AddDensity(1, y, 1)
		}
		f.Step()
	}
}

func BenchmarkProjection(b *testing.B) {
	f := newBenchFluid(b)
	for y := 1; y <= f.interior; y++ {
		for x := 1; x <= f.interior; x++ {
			f.velX.set(x, y, float64((x*7+y*3)%5)-2)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.project(f.velX, f.velY)
	}
}
