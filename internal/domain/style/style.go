// Package style picks the register an explanation should be written in.
package style

import "strings"

// Style is the answer register for explanations.
type Style string

// Supported registers.
const (
	English  Style = "english"
	Hinglish Style = "hinglish"
)

// markers are romanized Hindi words common in Hinglish queries. Matching is
// substring based on the lowercased query, same as the scoring side.
var markers = []string{
	"kya", "kaise", "hai", "nahi", "nhai", "kyun", "kyunki", "matlab",
	"samjha", "samjhao", "batao", "agar", "toh", "aisa", "waise", "yaar",
}

// Detect returns Hinglish when at least two markers occur in the query,
// otherwise English. A single marker is not enough: English legal queries
// routinely contain short letter runs that collide with one marker.
func Detect(text string) Style {
	t := strings.ToLower(text)
	hits := 0
	for _, m := range markers {
		if strings.Contains(t, m) {
			hits++
		}
	}
	if hits >= 2 {
		return Hinglish
	}
	return English
}
