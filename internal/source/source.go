package source

// Source is an immutable input buffer. It is borrowed by the lexer and the
// reporter and never written to.
type Source struct {
	Name string
	Data []byte
}

func New(name string, data []byte) *Source {
	return &Source{Name: name, Data: data}
}

func FromString(name, data string) *Source {
	return New(name, []byte(data))
}

// DisplayName returns the name used in diagnostics.
func (s *Source) DisplayName() string {
	if s == nil || s.Name == "" {
		return "<anonymous>"
	}
	return s.Name
}

func (s *Source) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Data)
}

// Location is the row/column of a byte offset together with the bounds of
// the line that contains it. Row and Col are 1-based.
type Location struct {
	Row        int
	Col        int
	LineStart  int
	LineLength int
}

// Locate walks the buffer from the start up to offset. Offsets past the end
// are clamped to the buffer length.
func (s *Source) Locate(offset int) Location {
	loc := Location{Row: 1, Col: 1}
	if s == nil {
		return loc
	}

	data := s.Data
	for i := 0; i < len(data) && i < offset; i++ {
		if data[i] != '\n' {
			loc.Col++
			continue
		}
		loc.LineStart = i + 1
		loc.Row++
		loc.Col = 1
	}

	for end := loc.LineStart; end < len(data) && data[end] != '\n'; end++ {
		loc.LineLength++
	}

	return loc
}

// Line returns the bytes of the line described by loc.
func (s *Source) Line(loc Location) []byte {
	if s == nil {
		return nil
	}
	return s.Data[loc.LineStart : loc.LineStart+loc.LineLength]
}
