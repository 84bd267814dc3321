package carousel

import (
	"github.com/novaera/showcase/hooking"
	"github.com/novaera/showcase/timing"
)

// TransitionKind tells what caused a Transition.
type TransitionKind int

// Kinds of transitions.
const (
	TransitionStart TransitionKind = iota
	TransitionStop
	TransitionAdvance
	TransitionSelect
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionStart:
		return "start"
	case TransitionStop:
		return "stop"
	case TransitionAdvance:
		return "advance"
	case TransitionSelect:
		return "select"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name.
func (k TransitionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Transition describes one change of the controller. For Start and Stop, From
// and To are both the active index at that moment, except when a restart
// with fewer slides pulls the cursor back into range.
type Transition struct {
	Kind TransitionKind   `json:"kind"`
	From int              `json:"from"`
	To   int              `json:"to"`
	Time timing.VTimeInMs `json:"time_ms"`
}

// Hook positions raised by a Controller. The hook Item is a Transition.
var (
	HookPosStart   = &hooking.HookPos{Name: "CarouselStart"}
	HookPosStop    = &hooking.HookPos{Name: "CarouselStop"}
	HookPosAdvance = &hooking.HookPos{Name: "CarouselAdvance"}
	HookPosSelect  = &hooking.HookPos{Name: "CarouselSelect"}
)

func (k TransitionKind) hookPos() *hooking.HookPos {
	switch k {
	case TransitionStart:
		return HookPosStart
	case TransitionStop:
		return HookPosStop
	case TransitionAdvance:
		return HookPosAdvance
	default:
		return HookPosSelect
	}
}
