package env

import (
	"github.com/denisbrodbeck/machineid"
)

// MachineID retrieves an ID unique to this machine, scoped to the
// application so the raw machine ID is not exposed on the broker.
func MachineID() string {
	id, err := machineid.ProtectedID("vfd")
	if err != nil {
		panic(err)
	}
	return id[:16]
}
