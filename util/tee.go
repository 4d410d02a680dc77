package util

// Tee distributes params to attached receivers
type Tee struct {
	recv []chan<- Param
}

// Attach creates a receiver channel and attaches it to the tee
func (t *Tee) Attach() <-chan Param {
	out := make(chan Param, 16)
	t.recv = append(t.recv, out)
	return out
}

// Run starts parameter distribution. Attach all receivers before calling Run.
func (t *Tee) Run(in <-chan Param) {
	for param := range in {
		for _, recv := range t.recv {
			recv <- param
		}
	}
}
