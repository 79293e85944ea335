package parser

// Stream is a cursor over source text. Positions count runes.
type Stream struct {
	code     []rune
	Position int
}

// NewStream returns a stream positioned at the start of text.
func NewStream(text string) *Stream {
	return &Stream{code: []rune(text)}
}

// Peek returns the rune at offset from the current position, and false if
// it's past the end of the text.
func (s *Stream) Peek(offset int) (rune, bool) {
	i := s.Position + offset
	if i < 0 || i >= len(s.code) {
		return 0, false
	}
	return s.code[i], true
}

// Forward advances the position by n runes.
func (s *Stream) Forward(n int) {
	s.Position += n
}

// AtEnd returns whether the whole text was consumed.
func (s *Stream) AtEnd() bool {
	return s.Position >= len(s.code)
}
