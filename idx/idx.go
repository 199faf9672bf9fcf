package idx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/mnistknn/internal/conv"
)

const (
	// TypeUnsignedByte is the only element type MNIST uses.
	TypeUnsignedByte byte = 0x08

	// MagicLabels is the magic number of a label file.
	MagicLabels uint32 = 0x00000801
	// MagicImages is the magic number of an image file.
	MagicImages uint32 = 0x00000803
)

var (
	// ErrBadMagic is returned when the header does not describe the expected file.
	ErrBadMagic = errors.New("idx: bad magic number")
	// ErrTruncated is returned when the input ends before the declared payload.
	ErrTruncated = errors.New("idx: truncated input")
	// ErrCountMismatch is returned when an image file and a label file disagree on the item count.
	ErrCountMismatch = errors.New("idx: image and label counts differ")
)

// Header is a decoded IDX header.
type Header struct {
	Type byte
	Dims []int
}

// Magic returns the magic number describing h.
func (h Header) Magic() uint32 {
	return uint32(h.Type)<<8 | uint32(len(h.Dims))
}

// ReadHeader decodes the magic number and the dimension sizes.
func ReadHeader(r io.Reader) (Header, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return Header{}, fmt.Errorf("%w: reading magic: %w", ErrTruncated, err)
	}
	if magic[0] != 0 || magic[1] != 0 {
		return Header{}, fmt.Errorf("%w: %#08x", ErrBadMagic, binary.BigEndian.Uint32(magic[:]))
	}

	h := Header{Type: magic[2], Dims: make([]int, magic[3])}
	raw := make([]byte, 4*len(h.Dims))
	if _, err := io.ReadFull(r, raw); err != nil {
		return Header{}, fmt.Errorf("%w: reading dimensions: %w", ErrTruncated, err)
	}
	for i := range h.Dims {
		d, err := conv.Uint32ToInt(binary.BigEndian.Uint32(raw[4*i:]))
		if err != nil {
			return Header{}, fmt.Errorf("idx: dimension %d: %w", i, err)
		}
		h.Dims[i] = d
	}
	return h, nil
}

// WriteHeader encodes h.
func WriteHeader(w io.Writer, h Header) error {
	if len(h.Dims) > 0xff {
		return fmt.Errorf("idx: too many dimensions: %d", len(h.Dims))
	}
	buf := make([]byte, 4+4*len(h.Dims))
	binary.BigEndian.PutUint32(buf, h.Magic())
	for i, d := range h.Dims {
		v, err := conv.IntToUint32(d)
		if err != nil {
			return fmt.Errorf("idx: dimension %d: %w", i, err)
		}
		binary.BigEndian.PutUint32(buf[4+4*i:], v)
	}
	_, err := w.Write(buf)
	return err
}

func expect(h Header, magic uint32) error {
	if h.Magic() != magic {
		return fmt.Errorf("%w: expected %#08x, got %#08x", ErrBadMagic, magic, h.Magic())
	}
	return nil
}

// Budget approves a payload size before its buffer is allocated. A non-nil
// error aborts decoding.
type Budget func(size int) error

func readPayload(r io.Reader, budget Budget, dims ...int) ([]byte, error) {
	size, err := conv.MulInt(dims...)
	if err != nil {
		return nil, fmt.Errorf("idx: payload size: %w", err)
	}
	if budget != nil {
		if err := budget(size); err != nil {
			return nil, fmt.Errorf("idx: %d payload bytes: %w", size, err)
		}
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: expected %d payload bytes: %w", ErrTruncated, size, err)
	}
	return buf, nil
}

// ReadLabels decodes a label file.
func ReadLabels(r io.Reader) ([]byte, error) {
	return ReadLabelsWithin(r, nil)
}

// ReadLabelsWithin decodes a label file, asking budget before allocating
// the payload declared by the header.
func ReadLabelsWithin(r io.Reader, budget Budget) ([]byte, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if err := expect(h, MagicLabels); err != nil {
		return nil, err
	}
	return readPayload(r, budget, h.Dims...)
}

// WriteLabels encodes labels as a label file.
func WriteLabels(w io.Writer, labels []byte) error {
	if err := WriteHeader(w, Header{Type: TypeUnsignedByte, Dims: []int{len(labels)}}); err != nil {
		return err
	}
	_, err := w.Write(labels)
	return err
}

// Images is a decoded image file. Pixels holds Count images of Rows*Cols
// bytes each, row-major.
type Images struct {
	Count  int
	Rows   int
	Cols   int
	Pixels []byte
}

// Size returns the number of pixels in one image.
func (im *Images) Size() int {
	return im.Rows * im.Cols
}

// Image returns the pixels of image i. The slice aliases Pixels and is
// capacity-limited so appends never spill into the next image.
func (im *Images) Image(i int) []byte {
	sz := im.Size()
	return im.Pixels[i*sz : (i+1)*sz : (i+1)*sz]
}

// ReadImages decodes an image file.
func ReadImages(r io.Reader) (*Images, error) {
	return ReadImagesWithin(r, nil)
}

// ReadImagesWithin decodes an image file, asking budget before allocating
// the pixels declared by the header.
func ReadImagesWithin(r io.Reader, budget Budget) (*Images, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if err := expect(h, MagicImages); err != nil {
		return nil, err
	}
	pixels, err := readPayload(r, budget, h.Dims...)
	if err != nil {
		return nil, err
	}
	return &Images{Count: h.Dims[0], Rows: h.Dims[1], Cols: h.Dims[2], Pixels: pixels}, nil
}

// WriteImages encodes im as an image file.
func WriteImages(w io.Writer, im *Images) error {
	size, err := conv.MulInt(im.Count, im.Rows, im.Cols)
	if err != nil {
		return err
	}
	if size != len(im.Pixels) {
		return fmt.Errorf("idx: %d pixels do not fill %dx%dx%d", len(im.Pixels), im.Count, im.Rows, im.Cols)
	}
	if err := WriteHeader(w, Header{Type: TypeUnsignedByte, Dims: []int{im.Count, im.Rows, im.Cols}}); err != nil {
		return err
	}
	_, err = w.Write(im.Pixels)
	return err
}
