//go:build !unix

package supervisor

import "os"

// killSignal is a no-op on platforms without POSIX signal numbers.
func killSignal(state *os.ProcessState) (int, bool) {
	return 0, false
}
