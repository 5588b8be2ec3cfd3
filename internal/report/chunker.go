package report

import "strings"

// Chunk splits text into segments of at most limit characters using greedy
// line packing: whole lines are appended to the current segment until the
// next line would push it past the limit. Segment boundaries always fall on
// line boundaries, so joining the segments with a line break reconstructs
// the input exactly. A single line longer than the limit is emitted as one
// oversized segment rather than split.
func Chunk(text string, limit int) []string {
	lines := strings.Split(text, "\n")

	segments := make([]string, 0, 1)
	current := lines[0]
	for _, line := range lines[1:] {
		if len(current)+1+len(line) > limit {
			segments = append(segments, current)
			current = line
			continue
		}
		current += "\n" + line
	}
	return append(segments, current)
}
