package display

// Noop is a Display that does nothing.
type Noop struct{}

func (Noop) SetBrightness(int) error { return nil }

func (Noop) SetBlinkRate(BlinkRate) error { return nil }

func (Noop) Clear() error { return nil }

func (Noop) SetColon(bool) error { return nil }

func (Noop) WriteDigits(string) error { return nil }

func (Noop) Fill(bool) error { return nil }

var _ Display = Noop{}
