package pipe

import (
	"github.com/thoas/go-funk"
	"github.com/willrr/ha-toyota-willrr/util"
)

// Piper is the interface for manipulating the param channel
type Piper interface {
	Pipe(in <-chan util.Param) <-chan util.Param
}

type dropper struct {
	filter []string
}

// NewDropper removes params with matching key from the pipe
func NewDropper(filter ...string) Piper {
	return &dropper{filter: filter}
}

func (d *dropper) Pipe(in <-chan util.Param) <-chan util.Param {
	out := make(chan util.Param)

	go func() {
		for param := range in {
			if funk.ContainsString(d.filter, param.Key) {
				continue
			}
			out <- param
		}
	}()

	return out
}
