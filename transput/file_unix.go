//go:build unix

package transput

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockFile strips every permission bit from the open document, barring
// access until a chmod outside the program restores it.
func lockFile(osf *os.File) error {
	return unix.Fchmod(int(osf.Fd()), 0)
}
