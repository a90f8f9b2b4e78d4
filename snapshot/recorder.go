package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/tumble/engine"
)

const (
	recordMagic   = "tumble-rec"
	recordVersion = 1
)

// ErrBadRecording is returned for streams that do not start with a valid header
var ErrBadRecording = errors.New("not a tumble recording")

// Header opens every recording
type Header struct {
	Magic   string  `msgpack:"magic"`
	Version int     `msgpack:"version"`
	Scene   string  `msgpack:"scene"`
	Width   float64 `msgpack:"width"`
	Height  float64 `msgpack:"height"`
}

// Recorder writes a header followed by one msgpack State per sampled frame
// It is an engine.Observer, the first write error stops recording and is kept for Close
type Recorder struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	every  int
	seen   int
	frames int
	err    error
}

// NewRecorder writes the header immediately, every n-th observed frame is kept
func NewRecorder(w io.Writer, scene string, width, height float64, every int) (*Recorder, error) {
	if every <= 0 {
		every = 1
	}
	buf := bufio.NewWriter(w)
	r := &Recorder{buf: buf, enc: msgpack.NewEncoder(buf), every: every}
	hdr := Header{Magic: recordMagic, Version: recordVersion, Scene: scene, Width: width, Height: height}
	if err := r.enc.Encode(&hdr); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return r, nil
}

func (r *Recorder) Observe(w *engine.World) {
	if r.err != nil {
		return
	}
	r.seen++
	if (r.seen-1)%r.every != 0 {
		return
	}
	s := Capture(w)
	if err := r.enc.Encode(&s); err != nil {
		r.err = err
		log.Printf("[SNAPSHOT] recording stopped at frame %d: %v", r.frames, err)
		return
	}
	r.frames++
}

// Frames returns the number of states written
func (r *Recorder) Frames() int { return r.frames }

// Close flushes buffered frames, the underlying writer stays open
func (r *Recorder) Close() error {
	if err := r.buf.Flush(); err != nil && r.err == nil {
		r.err = err
	}
	return r.err
}

// Reader iterates a recording
type Reader struct {
	dec    *msgpack.Decoder
	Header Header
}

// NewReader reads and checks the header
func NewReader(rd io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(rd))
	var hdr Header
	if err := dec.Decode(&hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecording, err)
	}
	if hdr.Magic != recordMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadRecording, hdr.Magic)
	}
	if hdr.Version != recordVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadRecording, hdr.Version)
	}
	return &Reader{dec: dec, Header: hdr}, nil
}

// Next returns the following frame, io.EOF after the last one
func (r *Reader) Next() (State, error) {
	var s State
	if err := r.dec.Decode(&s); err != nil {
		return State{}, err
	}
	return s, nil
}
