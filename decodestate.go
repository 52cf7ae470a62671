package goblz77

import "fmt"

type decodeState int

const (
	decodeStateHeader decodeState = iota
	decodeStateLiteral
	decodeStateEscape
	decodeStateDistance
	decodeStateLength
	decodeStateDone
	decodeStateInvalid
)

func (s decodeState) String() string {
	switch s {
	case decodeStateHeader:
		return "header"
	case decodeStateLiteral:
		return "literal"
	case decodeStateEscape:
		return "escape"
	case decodeStateDistance:
		return "distance"
	case decodeStateLength:
		return "length"
	case decodeStateDone:
		return "done"
	case decodeStateInvalid:
		return "invalid"
	}
	return fmt.Sprintf("decodeState(%d)", int(s))
}
