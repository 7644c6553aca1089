package main

import (
	"math"
	"strings"
)

// Movement commands the simulator understands. Voice variants carry a
// suffix on the wire but drive the robot identically.
const (
	cmdStop         = "STOP"
	cmdGoForward    = "GO_FORWARD"
	cmdMoveBackward = "MOVE_BACKWARD"
	cmdTurnLeft     = "TURN_LEFT"
	cmdTurnRight    = "TURN_RIGHT"

	voiceSuffix = "_VOICE"
)

const (
	moveSpeed = 3.0 // units per tick
	turnRate  = 5.0 // degrees per tick
)

// Robot is a kinematic point robot on a toroidal field. Heading 0 points
// up and grows clockwise.
type Robot struct {
	X, Y    float64
	Heading float64

	fieldW, fieldH float64
	command        string
}

// NewRobot places a stopped robot at the center of the field.
func NewRobot(fieldW, fieldH float64) *Robot {
	return &Robot{
		X:       fieldW / 2,
		Y:       fieldH / 2,
		fieldW:  fieldW,
		fieldH:  fieldH,
		command: cmdStop,
	}
}

// Apply sets the active command. Voice variants are normalized and
// anything unrecognized is ignored so a garbled datagram cannot wedge
// the robot into an undefined state.
func (r *Robot) Apply(cmd string) bool {
	cmd = strings.TrimSuffix(strings.TrimSpace(cmd), voiceSuffix)
	switch cmd {
	case cmdStop, cmdGoForward, cmdMoveBackward, cmdTurnLeft, cmdTurnRight:
		r.command = cmd
		return true
	}
	return false
}

// Command returns the active normalized command.
func (r *Robot) Command() string {
	return r.command
}

// Step advances the robot by one tick of the active command.
func (r *Robot) Step() {
	switch r.command {
	case cmdGoForward:
		r.translate(moveSpeed)
	case cmdMoveBackward:
		r.translate(-moveSpeed)
	case cmdTurnLeft:
		r.Heading = wrapDegrees(r.Heading - turnRate)
	case cmdTurnRight:
		r.Heading = wrapDegrees(r.Heading + turnRate)
	}
}

func (r *Robot) translate(dist float64) {
	rad := r.Heading * math.Pi / 180
	r.X = wrapCoord(r.X+dist*math.Sin(rad), r.fieldW)
	r.Y = wrapCoord(r.Y-dist*math.Cos(rad), r.fieldH)
}

func wrapCoord(v, max float64) float64 {
	v = math.Mod(v, max)
	if v < 0 {
		v += max
	}
	return v
}

func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// glyph picks an arrow for the robot's heading octant.
func (r *Robot) glyph() rune {
	octant := int(math.Round(r.Heading/45)) % 8
	return [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}[octant]
}
