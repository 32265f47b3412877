package stream

import "bytes"

var frameDelim = []byte("\n\n")

// FrameDecoder splits an incrementally delivered byte stream into complete
// frames. Bytes after the last delimiter are retained until the next Feed,
// so chunk boundaries never split or drop a frame.
type FrameDecoder struct {
	pending []byte
}

// Feed appends a read chunk and returns every frame completed by it, in
// arrival order. Returned frames are copies and safe to retain.
func (d *FrameDecoder) Feed(chunk []byte) [][]byte {
	d.pending = append(d.pending, chunk...)

	var frames [][]byte
	for {
		i := bytes.Index(d.pending, frameDelim)
		if i < 0 {
			return frames
		}
		frame := d.pending[:i]
		if len(bytes.TrimSpace(frame)) > 0 {
			frames = append(frames, append([]byte(nil), frame...))
		}
		d.pending = append([]byte(nil), d.pending[i+len(frameDelim):]...)
	}
}

// Rest returns any buffered partial frame. A non-empty rest at end of stream
// means the transport closed mid-frame; the fragment is never processed.
func (d *FrameDecoder) Rest() []byte {
	return d.pending
}
