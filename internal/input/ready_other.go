//go:build !unix

package input

// inputReady is not implemented on this platform; the cancel key is never
// seen, and capture ends through an interrupt instead.
func inputReady(fd int) (bool, error) {
	return false, nil
}
