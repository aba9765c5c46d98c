package messaging

import (
	"github.com/google/uuid"
	"github.com/pixil98/go-essentials/internal/game"
)

// Subjects shared with the host process.
const (
	CommandSubject  = "essentials.command"
	WorldSubject    = "essentials.world"
	RelocateSubject = "essentials.relocate"
)

// WireLocation is the JSON form of game.Location.
type WireLocation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Yaw       float32 `json:"yaw"`
	Pitch     float32 `json:"pitch"`
	Dimension string  `json:"dimension"`
}

func NewWireLocation(l game.Location) WireLocation {
	return WireLocation{X: l.X, Y: l.Y, Z: l.Z, Yaw: l.Yaw, Pitch: l.Pitch, Dimension: l.Dimension}
}

func (w WireLocation) Location() game.Location {
	return game.Location{X: w.X, Y: w.Y, Z: w.Z, Yaw: w.Yaw, Pitch: w.Pitch, Dimension: w.Dimension}
}

// CommandRequest is sent by the host once it has parsed a player command.
type CommandRequest struct {
	Player   uuid.UUID    `json:"player"`
	Location WireLocation `json:"location"`
	Command  string       `json:"command"`
	Arg      string       `json:"arg,omitempty"`
}

// CommandReply tells the host how a command ended. Problems the player can
// fix have already been sent to the player and are not reported here.
type CommandReply struct {
	Error string `json:"error,omitempty"`
}

type WorldRequest struct {
	Dimension string `json:"dimension"`
}

type WorldReply struct {
	Loaded bool `json:"loaded"`
}

type RelocateRequest struct {
	Player   uuid.UUID    `json:"player"`
	Location WireLocation `json:"location"`
}

type RelocateReply struct {
	Error string `json:"error,omitempty"`
}
