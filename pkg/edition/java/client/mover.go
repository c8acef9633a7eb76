package client

import (
	"math"
	"time"

	"go.minekube.com/bot/pkg/edition/java/config"
	"go.minekube.com/bot/pkg/edition/java/proto/packet"
)

// Blocks walked per movement tick, a bit below walking speed.
const stepDistance = 0.2

// mover walks the player on a circle of radius blocks
// that passes through the position it started at.
type mover struct {
	s        *Session
	center   Position
	radius   float64
	interval time.Duration
	angle    float64
}

func newMover(s *Session, start Position, cfg config.Movement) *mover {
	return &mover{
		s:        s,
		center:   start,
		radius:   cfg.Radius,
		interval: cfg.Interval,
	}
}

func (m *mover) run() error {
	ctx := m.s.Context()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if err := m.step(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (m *mover) step() error {
	pos := m.next()
	m.s.mu.Lock()
	m.s.pos = pos
	m.s.mu.Unlock()
	return m.s.conn.WritePacket(pos.packet())
}

// next advances the angle and returns the position on the circle.
// The player faces the direction it walks in.
func (m *mover) next() Position {
	m.angle = math.Mod(m.angle+stepDistance/m.radius, 2*math.Pi)
	sin, cos := math.Sincos(m.angle)
	// Tangent of the circle.
	dx, dz := -sin, cos
	return Position{
		X:        m.center.X + m.radius*cos - m.radius,
		Y:        m.center.Y,
		Z:        m.center.Z + m.radius*sin,
		Yaw:      float32(-math.Atan2(dx, dz) * 180 / math.Pi),
		Pitch:    0,
		OnGround: true,
	}
}

func (p Position) packet() *packet.ClientPosLook {
	return &packet.ClientPosLook{
		X:        p.X,
		FeetY:    p.Y,
		HeadY:    p.Y + eyeHeight,
		Z:        p.Z,
		Yaw:      p.Yaw,
		Pitch:    p.Pitch,
		OnGround: p.OnGround,
	}
}
