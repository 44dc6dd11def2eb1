package actor

// Producer constructs a fresh Actor instance for a spawn.
type Producer func() Actor

// Props configures how an actor is produced by Engine.Spawn.
type Props struct {
	producer Producer
}

// NewProps wraps a Producer as Props.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("actor: producer cannot be nil")
	}
	return &Props{producer: producer}
}

func (p *Props) Produce() Actor {
	return p.producer()
}
