package catan

import "fmt"

// IllegalMoveError describes a placement that is not legal for a seat. No
// code in this module constructs it: the C2 oracle's queries return plain
// booleans and the brain logs no reason for a rejected candidate.
type IllegalMoveError struct {
	Kind   PieceKind
	Seat   SeatID
	Coord  int
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("seat %d cannot place %s at %d: %s", e.Seat, e.Kind, e.Coord, e.Reason)
}
