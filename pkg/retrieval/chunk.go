package retrieval

import "strings"

// chunkText splits text into overlapping word windows. Unlike a
// sentence-aware chunker, stage/safety manuals are technical prose with
// irregular punctuation (tables, numbered clauses), so windows are cut
// directly on word boundaries.
func chunkText(sourceDoc, text string, chunkWords, overlapWords int) []chunkSpan {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if chunkWords <= 0 {
		chunkWords = 300
	}
	if overlapWords < 0 || overlapWords >= chunkWords {
		overlapWords = 0
	}

	var spans []chunkSpan
	offset := 0
	start := 0
	for start < len(words) {
		end := start + chunkWords
		if end > len(words) {
			end = len(words)
		}
		spans = append(spans, chunkSpan{
			text:      strings.Join(words[start:end], " "),
			sourceDoc: sourceDoc,
			offsetID:  offset,
		})
		offset++
		if end == len(words) {
			break
		}
		start = end - overlapWords
	}
	return spans
}

// chunkSpan is an intermediate chunk before it has been embedded and
// assigned a point id.
type chunkSpan struct {
	text      string
	sourceDoc string
	offsetID  int
}
