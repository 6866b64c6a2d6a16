package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Gesture identifies one paint gesture for logging.
type Gesture struct {
	ID  string
	Seq uint64
}

var (
	sessionID  = uuid.NewString()
	gestureSeq uint64
)

// SessionID identifies this process in log output.
func SessionID() string { return sessionID }

func nextGesture() Gesture {
	return Gesture{ID: uuid.NewString(), Seq: atomic.AddUint64(&gestureSeq, 1)}
}
