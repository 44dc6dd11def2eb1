package actor

// Actor processes messages delivered to its mailbox one at a time. A
// Game and a Session are both actors: Receive is the only place either
// one mutates its own state, so neither needs a mutex.
type Actor interface {
	Receive(ctx Context)
}
