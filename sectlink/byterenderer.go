package sectlink

import (
	"fmt"
)

// ByteRenderer accumulates rendered output.
type ByteRenderer struct {
	buf []byte
}

// Render appends the textual form of its arguments, without separators.
func (br *ByteRenderer) Render(args ...any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			br.buf = append(br.buf, v...)
		case []byte:
			br.buf = append(br.buf, v...)
		case byte:
			br.buf = append(br.buf, v)
		case rune:
			br.buf = append(br.buf, string(v)...)
		default:
			br.buf = fmt.Append(br.buf, v)
		}
	}
}

// Renderln is like Render but adds a newline at the end.
func (br *ByteRenderer) Renderln(args ...any) {
	br.Render(args...)
	br.buf = append(br.buf, '\n')
}

func (br *ByteRenderer) String() string {
	return string(br.buf)
}
