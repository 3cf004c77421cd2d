package panel

type (
	// Broker is the channel boundary between the model goroutine and
	// everything else. The model is the single owner of all mutable state
	// (the value maps, the preset stores, the surface); other goroutines
	// (the MIDI listener, host timers) post MsgToModel instead of calling
	// into the model directly, which is what keeps the sync engine's
	// re-entrancy guard correct without locks.
	//
	// CloseModel has capacity 1, so requesting closure never blocks: if
	// the channel is already full, someone else asked first and dropping
	// the message is fine. FinishedModel is closed (never sent to) once
	// the model goroutine has flushed the stores and stopped.
	Broker struct {
		ToModel       chan MsgToModel
		CloseModel    chan struct{}
		FinishedModel chan struct{}
	}

	// MsgToModel carries one message for the model goroutine. Data is
	// either a RemoteEvent or a func() to run on the model goroutine.
	MsgToModel struct {
		Data any
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:       make(chan MsgToModel, 1024),
		CloseModel:    make(chan struct{}, 1),
		FinishedModel: make(chan struct{}),
	}
}

// TrySend posts a message without blocking; a full channel drops the
// message, which is acceptable for the high-rate remote control stream.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
		return true
	default:
		return false
	}
}
