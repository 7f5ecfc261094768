//go:build !unix

package transput

import "os"

func lockFile(osf *os.File) error {
	return osf.Chmod(0)
}
