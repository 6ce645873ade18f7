package server

import (
	"testing"
	"time"

	"github.com/Efocor/FLUISIMS/pkg/fluid"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	sim, err := fluid.New(16, 0, 0, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	return newHub(sim, 50*time.Millisecond)
}

func TestApplyInject(t *testing.T) {
	h := newTestHub(t)

	reply := h.apply(Msg{Type: "inject", X: 8, Y: 8, Amount: 42, DX: 1, DY: -1})
	if reply.Type != "injected" {
		t.Fatalf("reply = %q, want injected", reply.Type)
	}
	if v, _ := h.sim.DensityAt(8, 8); v != 42 {
		t.Errorf("density not injected: %v", v)
	}
	if u, v, _ := h.sim.VelocityAt(8, 8); u != 1 || v != -1 {
		t.Errorf("velocity not injected: (%v, %v)", u, v)
	}

	// Out-of-range coordinates must be swallowed by the core, not error.
	if reply := h.apply(Msg{Type: "inject", X: 500, Y: -2, Amount: 9}); reply.Type != "injected" {
		t.Errorf("out-of-range inject reply = %q", reply.Type)
	}
}

func TestApplyParam(t *testing.T) {
	h := newTestHub(t)
	diff, dt := 0.004, 0.25

	reply := h.apply(Msg{Type: "param", Diffusion: &diff, TimeStep: &dt})
	if reply.Type != "paramSet" {
		t.Fatalf("reply = %q, want paramSet", reply.Type)
	}
	if h.sim.Diffusion() != diff || h.sim.TimeStep() != dt {
		t.Error("parameters not applied")
	}
	// Viscosity was not provided and must keep its value.
	if h.sim.Viscosity() != 0 {
		t.Errorf("viscosity changed to %v without being set", h.sim.Viscosity())
	}
}

func TestApplyLifecycle(t *testing.T) {
	h := newTestHub(t)

	if reply := h.apply(Msg{Type: "start"}); reply.Type != "started" || !h.running {
		t.Error("start did not begin the run loop")
	}
	if reply := h.apply(Msg{Type: "stop"}); reply.Type != "stopped" || h.running {
		t.Error("stop did not halt the run loop")
	}

	h.apply(Msg{Type: "inject", X: 8, Y: 8, Amount: 10})
	if reply := h.apply(Msg{Type: "step"}); reply.Type != "stepped" {
		t.Errorf("step reply = %q", reply.Type)
	}
	if v, _ := h.sim.DensityAt(8, 8); v != 10 {
		t.Errorf("zero-coefficient step altered density: %v", v)
	}

	if reply := h.apply(Msg{Type: "reset"}); reply.Type != "resetDone" {
		t.Errorf("reset reply = %q", reply.Type)
	}
	if v, _ := h.sim.DensityAt(8, 8); v != 0 {
		t.Errorf("reset left density %v", v)
	}

	if reply := h.apply(Msg{Type: "bogus"}); reply.Type != "error" {
		t.Errorf("unknown type reply = %q, want error", reply.Type)
	}
}

func TestFrameShape(t *testing.T) {
	h := newTestHub(t)
	h.apply(Msg{Type: "inject", X: 3, Y: 5, Amount: 7})

	f := h.frame()
	if f.Type != "frame" || f.Interior != 16 {
		t.Fatalf("unexpected frame header: %+v", f)
	}
	if len(f.Density) != 18 || len(f.Density[0]) != 18 {
		t.Fatalf("frame is %dx%d, want 18x18", len(f.Density), len(f.Density[0]))
	}
	if f.Density[5][3] != 7 {
		t.Errorf("frame row-major order wrong: cell [5][3] = %v", f.Density[5][3])
	}
}
