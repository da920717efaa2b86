//go:build linux || darwin

package disk

import "syscall"

// Capacity returns free and total bytes, plus the used percentage, for the
// filesystem containing path.
func Capacity(path string) (freeBytes, totalBytes int64, usedPercent float64, err error) {
	var stat syscall.Statfs_t
	if err = syscall.Statfs(path, &stat); err != nil {
		return 0, 0, 0, err
	}

	totalBytes = int64(stat.Blocks) * int64(stat.Bsize)
	freeBytes = int64(stat.Bavail) * int64(stat.Bsize)
	usedBytes := totalBytes - freeBytes

	if totalBytes > 0 {
		usedPercent = (float64(usedBytes) / float64(totalBytes)) * 100.0
	}
	return freeBytes, totalBytes, usedPercent, nil
}
