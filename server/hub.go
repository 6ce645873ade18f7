package server

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/Efocor/FLUISIMS/pkg/fluid"
)

// Msg is one client request or server acknowledgement. Pointer fields
// distinguish "not provided" from zero for parameter updates.
type Msg struct {
	Type      string   `json:"type"`
	X         int      `json:"x,omitempty"`
	Y         int      `json:"y,omitempty"`
	Amount    float64  `json:"amount,omitempty"`
	DX        float64  `json:"dx,omitempty"`
	DY        float64  `json:"dy,omitempty"`
	Diffusion *float64 `json:"diffusion,omitempty"`
	Viscosity *float64 `json:"viscosity,omitempty"`
	TimeStep  *float64 `json:"timeStep,omitempty"`
	Content   string   `json:"content,omitempty"`
}

// Frame is one pushed density snapshot, border cells included.
type Frame struct {
	Type       string      `json:"type"`
	Interior   int         `json:"interior"`
	Density    [][]float64 `json:"density"`
	MeanAbsDiv float64     `json:"meanAbsDiv"`
}

// Hub owns one client's simulator. Requests arrive on msg; while running,
// the hub steps the simulator and pushes a frame every interval.
type Hub struct {
	sim      *fluid.Fluid
	msg      chan Msg
	interval time.Duration
	running  bool
}

func newHub(sim *fluid.Fluid, interval time.Duration) *Hub {
	return &Hub{
		sim:      sim,
		msg:      make(chan Msg, 16),
		interval: interval,
	}
}

func (h *Hub) run(conn *websocket.Conn) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	dead := false
	write := func(v interface{}) {
		if dead {
			return
		}
		if err := conn.WriteJSON(v); err != nil {
			log.WithError(err).Info("dropping client writes")
			dead = true
			conn.Close()
		}
	}

	for {
		select {
		case m, ok := <-h.msg:
			if !ok {
				return
			}
			write(h.apply(m))
		case <-ticker.C:
			if !h.running {
				continue
			}
			h.sim.Step()
			write(h.frame())
		}
	}
}

// apply executes one request against the simulator and returns the
// acknowledgement. Injection coordinates are forwarded untrusted; the core
// drops anything outside the interior.
func (h *Hub) apply(m Msg) Msg {
	switch m.Type {
	case "param":
		if m.Diffusion != nil {
			h.sim.SetDiffusion(*m.Diffusion)
		}
		if m.Viscosity != nil {
			h.sim.SetViscosity(*m.Viscosity)
		}
		if m.TimeStep != nil {
			h.sim.SetTimeStep(*m.TimeStep)
		}
		return Msg{Type: "paramSet"}
	case "inject":
		h.sim.AddDensity(m.X, m.Y, m.Amount)
		if m.DX != 0 || m.DY != 0 {
			h.sim.AddVelocity(m.X, m.Y, m.DX, m.DY)
		}
		return Msg{Type: "injected"}
	case "start":
		h.running = true
		return Msg{Type: "started"}
	case "stop":
		h.running = false
		return Msg{Type: "stopped"}
	case "step":
		h.sim.Step()
		return Msg{Type: "stepped"}
	case "reset":
		h.sim.Reset()
		return Msg{Type: "resetDone"}
	default:
		log.WithField("type", m.Type).Warn("no such message type")
		return Msg{Type: "error", Content: "unknown message type: " + m.Type}
	}
}

func (h *Hub) frame() Frame {
	d := h.sim.Density()
	rows, _ := d.Dims()
	density := make([][]float64, rows)
	for y := range density {
		density[y] = mat.Row(nil, y, d)
	}
	return Frame{
		Type:       "frame",
		Interior:   h.sim.Interior(),
		Density:    density,
		MeanAbsDiv: h.sim.MeanAbsDivergence(),
	}
}
