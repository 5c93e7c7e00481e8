package objects

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/KostasZigo/gogit-odb/internal/constants"
	"github.com/klauspost/compress/zlib"
)

// Encode builds the canonical byte sequence "<kind> <size>\0<payload>".
// It is both the hash input and the pre-compression content.
// The kind is not validated so that any framing can be produced.
func Encode(kind Kind, payload []byte) []byte {
	header := kind.String() + " " + strconv.Itoa(len(payload))

	data := make([]byte, 0, len(header)+1+len(payload))
	data = append(data, header...)
	data = append(data, constants.NullByte)
	return append(data, payload...)
}

// AddressOf returns the SHA-1 digest of the canonical bytes.
func AddressOf(canonical []byte) Address {
	return sha1.Sum(canonical)
}

// Compress deflates canonical bytes into a zlib stream at the default level.
func Compress(canonical []byte) ([]byte, error) {
	return CompressLevel(canonical, zlib.DefaultCompression)
}

// CompressLevel deflates canonical bytes at the given zlib level (-2..9).
func CompressLevel(canonical []byte, level int) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buffer, level)
	if err != nil {
		return nil, fmt.Errorf("invalid compression level %d: %w", level, err)
	}

	if _, err := writer.Write(canonical); err != nil {
		return nil, err
	}

	// Close flushes the final block and the adler-32 trailer
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Decompress wraps a zlib stream. Any failure of the stream itself, including
// a bad header, a truncated deflate body or a checksum mismatch, is reported
// as ErrCorruptObject; a clean end of stream stays io.EOF.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	reader, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptObject, err)
	}
	return &corruptionReader{rc: reader}, nil
}

type corruptionReader struct {
	rc io.ReadCloser
}

func (c *corruptionReader) Read(p []byte) (int, error) {
	n, err := c.rc.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = fmt.Errorf("%w: %w", ErrCorruptObject, err)
	}
	return n, err
}

func (c *corruptionReader) Close() error {
	return c.rc.Close()
}

// decodePhase is the state of a streamDecoder.
type decodePhase int

const (
	phaseReadHeader decodePhase = iota
	phaseReadPayload
	phaseVerifyEOF
	phaseDone
)

// streamDecoder parses an uncompressed object stream in three phases:
// header, exactly size payload bytes, then end of stream.
type streamDecoder struct {
	r       *bufio.Reader
	phase   decodePhase
	kind    Kind
	size    int64
	payload bytes.Buffer
}

// DecodeStream parses an uncompressed object stream and returns its kind and payload.
// The stream must hold exactly the declared number of payload bytes.
func DecodeStream(r io.Reader) (Kind, []byte, error) {
	decoder := &streamDecoder{r: bufio.NewReader(r)}

	for decoder.phase != phaseDone {
		if err := decoder.step(); err != nil {
			return "", nil, err
		}
	}

	return decoder.kind, decoder.payload.Bytes(), nil
}

func (d *streamDecoder) step() error {
	switch d.phase {
	case phaseReadHeader:
		kind, size, err := DecodeHeader(d.r)
		if err != nil {
			return err
		}
		d.kind, d.size = kind, size
		d.phase = phaseReadPayload

	case phaseReadPayload:
		// Buffer grows with the data actually read, never with the declared size
		n, err := io.CopyN(&d.payload, d.r, d.size)
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: declared %d bytes, read %d", ErrTruncatedObject, d.size, n)
		}
		if err != nil {
			return err
		}
		d.phase = phaseVerifyEOF

	case phaseVerifyEOF:
		_, err := d.r.ReadByte()
		if err == nil {
			return fmt.Errorf("%w: more than %d declared bytes", ErrTrailingData, d.size)
		}
		if !errors.Is(err, io.EOF) {
			return err
		}
		d.phase = phaseDone
	}

	return nil
}

// DecodeHeader consumes "<kind> <size>\0" from r and validates it.
// Only blob headers are accepted.
func DecodeHeader(r *bufio.Reader) (Kind, int64, error) {
	header, err := readHeader(r)
	if err != nil {
		return "", 0, err
	}

	if !utf8.Valid(header) {
		return "", 0, fmt.Errorf("%w: header is not valid text", ErrMalformedHeader)
	}

	kindField, sizeField, found := bytes.Cut(header, []byte{constants.HeaderSeparator})
	if !found {
		return "", 0, fmt.Errorf("%w: no space in header %q", ErrMalformedHeader, header)
	}

	kind := Kind(kindField)
	if !kind.IsSupported() {
		return "", 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}

	// bitSize 63 keeps the value within int64
	size, err := strconv.ParseUint(string(sizeField), 10, 63)
	if err != nil {
		return "", 0, fmt.Errorf("%w: invalid size %q", ErrMalformedHeader, sizeField)
	}

	return kind, int64(size), nil
}

// readHeader returns the bytes before the first NUL, consuming the NUL.
func readHeader(r *bufio.Reader) ([]byte, error) {
	header := make([]byte, 0, constants.MaxHeaderLength)

	for len(header) < constants.MaxHeaderLength {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing NUL delimiter", ErrMalformedHeader)
		}
		if err != nil {
			return nil, err
		}
		if b == constants.NullByte {
			return header, nil
		}
		header = append(header, b)
	}

	return nil, fmt.Errorf("%w: no NUL delimiter within %d bytes", ErrMalformedHeader, constants.MaxHeaderLength)
}
