/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strconv"
)

// formatSize renders a byte count in SI units, e.g. 1536 -> "1.5 kB".
func formatSize(bytes int64) string {
	const unit = 1000
	if bytes < unit {
		return strconv.FormatInt(bytes, 10) + " B"
	}

	value := float64(bytes)
	suffix := 0
	for value >= unit && suffix < len("kMGTPE") {
		value /= unit
		suffix++
	}

	return strconv.FormatFloat(value, 'f', 1, 64) + " " + string("kMGTPE"[suffix-1]) + "B"
}
