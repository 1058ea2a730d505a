package bvdomain

// strBuf is the process-wide rotating print buffer backing ToStr. It is a
// legacy debugging convenience, not safe to call concurrently from multiple
// goroutines without external serialization — callers that need a fresh,
// independently-owned string should use ToChar instead.
var (
	strBuf    [1024]byte
	strBufPos int
)

// ToStr writes d's ternary rendering into the rotating 1024-byte buffer and
// returns the written slice. If the rendering does not fit in the space
// remaining before the buffer wraps, the cursor resets to the buffer start
// first. A rendering that cannot fit in the whole buffer is truncated to
// width-3 characters, suffixed with "...", and returned without being
// written into the buffer.
func (d Domain) ToStr() string {
	s := d.ToChar()
	if len(s) > len(strBuf) {
		width := d.GetWidth()
		truncated := width - 3
		if truncated < 0 {
			truncated = 0
		}
		return s[:truncated] + "..."
	}
	if strBufPos+len(s) > len(strBuf) {
		strBufPos = 0
	}
	n := copy(strBuf[strBufPos:], s)
	out := string(strBuf[strBufPos : strBufPos+n])
	strBufPos += n
	return out
}
