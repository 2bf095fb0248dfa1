package game

import "fmt"

// Seat identifies one of the two fixed player slots in a heads-up game.
// Seat order is canonical: SeatA is always seat 0, regardless of who joins
// or reveals first.
type Seat int

const (
	SeatA Seat = iota
	SeatB
)

// String returns the wire name of the seat ("a" or "b")
func (s Seat) String() string {
	switch s {
	case SeatA:
		return "a"
	case SeatB:
		return "b"
	default:
		return "?"
	}
}

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == SeatA {
		return SeatB
	}
	return SeatA
}

// ParseSeat decodes a seat name.
func ParseSeat(name string) (Seat, error) {
	switch name {
	case "a":
		return SeatA, nil
	case "b":
		return SeatB, nil
	default:
		return 0, fmt.Errorf("game: invalid seat %q", name)
	}
}

// Winner records the outcome of a hand.
type Winner int

const (
	WinnerNone Winner = iota
	WinnerSeatA
	WinnerSeatB
	WinnerSplit
)

func (w Winner) String() string {
	switch w {
	case WinnerSeatA:
		return "a"
	case WinnerSeatB:
		return "b"
	case WinnerSplit:
		return "split"
	default:
		return ""
	}
}

func winnerFor(seat Seat) Winner {
	if seat == SeatA {
		return WinnerSeatA
	}
	return WinnerSeatB
}
