package render

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	xtiff "golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format returns the encoder name for path's extension, or "" if none.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".webp":
		return "webp"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".tga":
		return "tga"
	}
	return ""
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(w, img)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return xtiff.Encode(w, img, &xtiff.Options{Compression: xtiff.Deflate, Predictor: true})
	case "tga":
		return tga.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// WriteImage encodes img into path, choosing the format from the extension.
func WriteImage(path string, img image.Image) error {
	format := Format(path)
	if format == "" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Upscale enlarges img by an integer factor without smoothing, so every
// rendered pixel stays a sharp block.
func Upscale(img image.Image, factor int) *image.NRGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ContactSheet lays frames out left to right, top to bottom, cols per row.
// All frames must share the first frame's size.
func ContactSheet(frames []image.Image, cols int) (*image.NRGBA, error) {
	if len(frames) == 0 {
		return nil, errors.New("contact sheet: no frames")
	}
	cols = max(1, min(cols, len(frames)))
	rows := (len(frames) + cols - 1) / cols

	tileW := frames[0].Bounds().Dx()
	tileH := frames[0].Bounds().Dy()
	canvas := image.NewNRGBA(image.Rect(0, 0, cols*tileW, rows*tileH))

	for idx, tile := range frames {
		b := tile.Bounds()
		if b.Dx() != tileW || b.Dy() != tileH {
			return nil, fmt.Errorf("contact sheet: frame %d is %dx%d, expected %dx%d",
				idx, b.Dx(), b.Dy(), tileW, tileH)
		}
		x := (idx % cols) * tileW
		y := (idx / cols) * tileH
		draw.Draw(canvas, image.Rect(x, y, x+tileW, y+tileH), tile, b.Min, draw.Src)
	}
	return canvas, nil
}
