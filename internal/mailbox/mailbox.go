// Package mailbox carries requests from other goroutines to the display loop.
package mailbox

import (
	"sync"

	"oledctl/ui"
)

// Kind identifies a request.
type Kind uint8

const (
	// KindConfig asks the loop to apply Config.
	KindConfig Kind = iota + 1
	// KindPress asks the loop to press Button.
	KindPress
	// KindSave asks the loop to persist the current settings.
	KindSave
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindPress:
		return "press"
	case KindSave:
		return "save"
	}
	return "unknown"
}

// Message is one request.
type Message struct {
	Kind   Kind
	Button int
	Config ui.DisplayConfig
}

// Slots is the mailbox capacity.
const Slots = 8

// Mailbox is a bounded multi-producer, single-consumer queue. The zero value
// is ready to use.
type Mailbox struct {
	_     [0]func() // prevent accidental copying.
	mu    sync.Mutex
	head  uint32
	tail  uint32
	slots [Slots]Message
}

// TrySend attempts to enqueue a message, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(msg Message) bool {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.head-mb.tail >= Slots {
		return false
	}
	mb.slots[mb.head%Slots] = msg
	mb.head++
	return true
}

// TryRecv attempts to dequeue one message, returning false if empty.
func (mb *Mailbox) TryRecv() (Message, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.tail == mb.head {
		return Message{}, false
	}
	msg := mb.slots[mb.tail%Slots]
	mb.slots[mb.tail%Slots] = Message{}
	mb.tail++
	return msg, true
}

// Drain hands every queued message to fn and returns how many there were.
func (mb *Mailbox) Drain(fn func(Message)) int {
	n := 0
	for {
		msg, ok := mb.TryRecv()
		if !ok {
			return n
		}
		fn(msg)
		n++
	}
}
