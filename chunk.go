package fictionfetch

// DefaultChunkSize is the number of chapters compiled per chunk.
const DefaultChunkSize = 10

// ChunkChapters splits a chapter listing into consecutive chunks of at most
// size entries, preserving order. A size below 1 falls back to
// DefaultChunkSize.
func ChunkChapters(chapters []ChapterSummary, size int) [][]ChapterSummary {
	if size < 1 {
		size = DefaultChunkSize
	}
	var chunks [][]ChapterSummary
	for i := 0; i < len(chapters); i += size {
		end := i + size
		if end > len(chapters) {
			end = len(chapters)
		}
		chunks = append(chunks, chapters[i:end])
	}
	return chunks
}
