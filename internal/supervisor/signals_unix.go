//go:build unix

package supervisor

import (
	"os"
	"syscall"
)

// killSignal reports the signal that terminated the process, if it
// died from one rather than exiting normally.
func killSignal(state *os.ProcessState) (int, bool) {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return int(ws.Signal()), true
}
