package notifier

// Noop satisfies Notifier when no sink is configured.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Name() string        { return "noop" }
func (n *Noop) Send(_ string) error { return nil }
