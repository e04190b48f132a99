// Package utils provides shared utility functions
package utils

import "strconv"

var sizeUnits = []string{"", "K", "M", "G", "T", "P", "E", "Z"}

// FormatSize renders a byte count in decimal units with one fractional digit,
// e.g. 1500 -> "1.5K". Values beyond zettabytes use the Y suffix.
func FormatSize(size int64) string {
	num := float64(size)
	for _, unit := range sizeUnits {
		if num > -1000 && num < 1000 {
			return strconv.FormatFloat(num, 'f', 1, 64) + unit
		}
		num /= 1000
	}
	return strconv.FormatFloat(num, 'f', 1, 64) + "Y"
}
