package libio

import (
	"encoding/binary"
	"io"
)

// BinaryReader is a little-endian reader with a sticky error.
// After the first failure every further read is a no-op, so a header
// and its payload can be read in sequence and checked once.
type BinaryReader struct {
	Src io.Reader
	// Offset of the next unread byte.
	Index int
	// Offset at which the most recent read started, for error messages.
	LastIndex int
	Err       error
	scratch   []byte
}

func NewBinaryReader(src io.Reader) *BinaryReader {
	return &BinaryReader{Src: src}
}

func (br *BinaryReader) begin() bool {
	br.LastIndex = br.Index
	return br.Err == nil
}

// ReadBytes returns the next n bytes. The slice is reused by the next call.
func (br *BinaryReader) ReadBytes(n int) []byte {
	if !br.begin() {
		return nil
	}
	if cap(br.scratch) < n {
		br.scratch = make([]byte, n)
	}
	br.scratch = br.scratch[:n]
	got, err := io.ReadFull(br.Src, br.scratch)
	br.Index += got
	if err != nil {
		br.Err = err
		return nil
	}
	return br.scratch
}

// ReadRef decodes a fixed-size value into ptr.
func (br *BinaryReader) ReadRef(ptr any) bool {
	if !br.begin() {
		return false
	}
	if br.Err = binary.Read(br.Src, binary.LittleEndian, ptr); br.Err != nil {
		return false
	}
	br.Index += binary.Size(ptr)
	return true
}

// BinaryWriter is the little-endian, sticky-error counterpart of BinaryReader.
type BinaryWriter struct {
	Dst   io.Writer
	Index int
	Err   error
}

func NewBinaryWriter(dst io.Writer) *BinaryWriter {
	return &BinaryWriter{Dst: dst}
}

func (bw *BinaryWriter) WriteBytes(p []byte) bool {
	if bw.Err != nil {
		return false
	}
	n, err := bw.Dst.Write(p)
	bw.Index += n
	bw.Err = err
	return err == nil
}

// WriteRef encodes a fixed-size value.
func (bw *BinaryWriter) WriteRef(v any) bool {
	if bw.Err != nil {
		return false
	}
	if bw.Err = binary.Write(bw.Dst, binary.LittleEndian, v); bw.Err != nil {
		return false
	}
	bw.Index += binary.Size(v)
	return true
}
