// Package components defines ECS components for the simulation.
package components

// Position represents an agent's world position.
type Position struct {
	X, Y float64
}

// Velocity represents an agent's velocity in world units per second.
type Velocity struct {
	X, Y float64
}

// Body holds display properties of an agent.
type Body struct {
	Radius float64
}
