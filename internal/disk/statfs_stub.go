//go:build !(linux || darwin)

package disk

import "errors"

// Capacity is unavailable off the unix targets; usage scanning still works,
// only the statfs-level free/total figures are missing.
func Capacity(path string) (freeBytes, totalBytes int64, usedPercent float64, err error) {
	return 0, 0, 0, errors.New("filesystem capacity statistics not supported on this platform")
}
