package matrix

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the encoding of an input stream.
type Compression uint8

const (
	// CompressionNone is plain text.
	CompressionNone Compression = iota
	// CompressionZSTD is a zstd frame.
	CompressionZSTD
	// CompressionLZ4 is an LZ4 frame.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect peeks at the head of r to identify its compression. The returned
// reader yields the full stream, including the peeked bytes.
func Detect(r io.Reader) (Compression, *bufio.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return CompressionNone, br, err
	}
	switch {
	case bytes.Equal(head, zstdMagic):
		return CompressionZSTD, br, nil
	case bytes.Equal(head, lz4Magic):
		return CompressionLZ4, br, nil
	default:
		return CompressionNone, br, nil
	}
}

// Decompress returns a reader over the decoded contents of r. Plain input is
// passed through.
func Decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	c, br, err := Detect(r)
	if err != nil {
		return nil, c, err
	}

	switch c {
	case CompressionZSTD:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, c, err
		}
		return dec.IOReadCloser(), c, nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(br)), c, nil
	default:
		return io.NopCloser(br), c, nil
	}
}

// Compress encodes data with c. It is used to produce compressed inputs.
func Compress(w io.Writer, data []byte, c Compression) error {
	switch c {
	case CompressionZSTD:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		if _, err := enc.Write(data); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if _, err := zw.Write(data); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	default:
		_, err := w.Write(data)
		return err
	}
}
