package goblz77

import "fmt"

type encodeState int

const (
	encodeStateHeader encodeState = iota
	encodeStateFilling
	encodeStateDone
	encodeStateInvalid
)

func (s encodeState) String() string {
	switch s {
	case encodeStateHeader:
		return "header"
	case encodeStateFilling:
		return "filling"
	case encodeStateDone:
		return "done"
	case encodeStateInvalid:
		return "invalid"
	}
	return fmt.Sprintf("encodeState(%d)", int(s))
}
