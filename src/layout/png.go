package layout

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/pkg/errors"
)

// The PNG signature and IHDR chunk always occupy the first 33 bytes.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// encodePNG writes img as PNG with a pHYs chunk recording dpi, so viewers
// and document tools pick up the intended physical size.
func encodePNG(w io.Writer, img image.Image, dpi int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	raw := buf.Bytes()
	if len(raw) < ihdrEnd || string(raw[12:16]) != "IHDR" {
		return errors.New("unexpected png layout")
	}
	if _, err := w.Write(raw[:ihdrEnd]); err != nil {
		return err
	}
	if _, err := w.Write(physChunk(dpi)); err != nil {
		return err
	}
	_, err := w.Write(raw[ihdrEnd:])
	return err
}

// physChunk builds a pHYs chunk: pixels per metre on both axes, unit = metre.
func physChunk(dpi int) []byte {
	ppm := uint32(math.Round(float64(dpi) / 0.0254))
	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = 1
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))
	return chunk
}
