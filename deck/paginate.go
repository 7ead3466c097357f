package deck

// Chunk is the slice of a slide's text and bullets that fits on one physical slide.
type Chunk struct {
	Text    []string
	Bullets []string
}

const DefaultMaxLines = 6

// Paginate splits text and bullets in lockstep: each chunk advances text by maxText lines and
// bullets by maxBullets lines. It always returns at least one chunk. Caps below 1 use
// DefaultMaxLines.
func Paginate(text, bullets []string, maxText, maxBullets int) []Chunk {
	if maxText < 1 {
		maxText = DefaultMaxLines
	}
	if maxBullets < 1 {
		maxBullets = DefaultMaxLines
	}
	var chunks []Chunk
	ti, bi := 0, 0
	for {
		c := Chunk{Text: window(text, ti, maxText), Bullets: window(bullets, bi, maxBullets)}
		chunks = append(chunks, c)
		ti += maxText
		bi += maxBullets
		if ti >= len(text) && bi >= len(bullets) {
			return chunks
		}
	}
}

func window(lines []string, from, n int) []string {
	if from >= len(lines) {
		return nil
	}
	to := from + n
	if to > len(lines) {
		to = len(lines)
	}
	return lines[from:to]
}
