// Package spawner defines the port interface for starting detached processes.
package spawner

// Spawner starts an executable without waiting for it.
// Implementations wrap domain.ErrNotFound when name cannot be resolved.
type Spawner interface {
	Start(name string, args ...string) (pid int, err error)
}
