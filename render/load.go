package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/echoflaresat/tiff"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	xtiff "golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// decoders picks the decoder by file extension. The tga package registers
// itself with image.Decode under an empty magic string, which matches every
// file, so image.Decode is never used here.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpeg": jpeg.Decode,
	"webp": webp.Decode,
	"bmp":  bmp.Decode,
	"tga":  tga.Decode,
	"tiff": xtiff.Decode,
}

// LoadImage decodes a previously written frame. TIFFs go through the
// streaming TIFF reader first, falling back to x/image/tiff.
func LoadImage(path string) (image.Image, error) {
	format := Format(path)
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if format == "tiff" {
		img, err := tiff.Decode(f)
		if err == nil {
			return img, nil
		}
		slog.Debug("TIFF reader failed, falling back to x/image/tiff", "path", path, "error", err)
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}

	return decode(f)
}
