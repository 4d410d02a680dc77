package util

import "fmt"

// Param is the broadcast channel data type, a sensor key/value pair tagged
// with the originating vehicle. Params without vehicle are global.
type Param struct {
	Vehicle string
	Key     string
	Val     interface{}
}

// UniqueID returns the vehicle-qualified parameter name
func (p Param) UniqueID() string {
	if p.Vehicle == "" {
		return p.Key
	}

	return fmt.Sprintf("%s.%s", p.Vehicle, p.Key)
}
