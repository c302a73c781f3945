package content

import "strings"

const wordsPerMinute = 200

// EstimateReading returns the word count of plain body text and an
// estimated reading time in whole minutes, rounded up. Minutes is never 0,
// so an empty post still displays "1 min read".
func EstimateReading(text string) (words, minutes int) {
	words = len(strings.Fields(text))
	minutes = (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return words, minutes
}
