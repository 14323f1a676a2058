package sizing

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// BytesToGB converts bytes to decimal gigabytes (1 GB = 1e9 bytes).
func BytesToGB(bytes int64) float64 {
	return float64(bytes) / 1e9
}

// HumanBytes formats a byte count with the largest decimal unit keeping the
// mantissa below 1000. Petabytes is the final bucket and may exceed that.
func HumanBytes(bytes int64) string {
	size := float64(bytes)
	for _, unit := range byteUnits[:len(byteUnits)-1] {
		if size < 1000 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1000
	}
	return fmt.Sprintf("%.2f PB", size)
}
