// Package similartext suggests names similar to a given one, to enrich
// "not found" style error messages.
package similartext

import (
	"fmt"
	"math"
	"strings"
)

// maxDistanceIgnored is the edit distance from which no suggestion is
// worth making.
const maxDistanceIgnored = 3

// distance returns the Levenshtein distance between the two strings.
func distance(source, target []rune) int {
	height := len(source) + 1
	width := len(target) + 1

	matrix := make([][]int, height)
	for i := range matrix {
		matrix[i] = make([]int, width)
		matrix[i][0] = i
	}
	for j := 1; j < width; j++ {
		matrix[0][j] = j
	}

	for i := 1; i < height; i++ {
		for j := 1; j < width; j++ {
			cost := 1
			if source[i-1] == target[j-1] {
				cost = 0
			}

			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost

			matrix[i][j] = deletion
			if insertion < matrix[i][j] {
				matrix[i][j] = insertion
			}
			if substitution < matrix[i][j] {
				matrix[i][j] = substitution
			}
		}
	}

	return matrix[height-1][width-1]
}

// Find returns a suggestion string with the names most similar to src, or
// an empty string when nothing is close enough. The result is meant to be
// appended to an error message.
func Find(names []string, src string) string {
	if len(src) == 0 || len(names) == 0 {
		return ""
	}

	minDistance := math.MaxInt32
	matches := make(map[int][]string)
	for _, name := range names {
		dist := distance([]rune(name), []rune(src))
		if dist < minDistance {
			minDistance = dist
		}
		matches[dist] = append(matches[dist], name)
	}

	if minDistance > maxDistanceIgnored {
		return ""
	}

	return fmt.Sprintf(", maybe you mean %s?",
		strings.Join(matches[minDistance], " or "))
}
