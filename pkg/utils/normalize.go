package utils

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image format (need jpeg/png/webp)")

// NormalizeToJPG decodes a jpeg/png/webp image, applies its EXIF orientation,
// shrinks it to maxWidth when wider (0 keeps the size) and re-encodes it as JPEG.
func NormalizeToJPG(input []byte, maxWidth int, quality int) ([]byte, error) {
	if len(input) == 0 {
		return nil, errors.New("empty image")
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}

	img, err := decodeImage(input)
	if err != nil {
		return nil, err
	}
	img = applyOrientation(img, exifOrientation(input))
	if maxWidth > 0 {
		img = resizeMaxWidth(img, maxWidth)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func decodeImage(b []byte) (image.Image, error) {
	if img, err := jpeg.Decode(bytes.NewReader(b)); err == nil {
		return img, nil
	}
	if img, err := png.Decode(bytes.NewReader(b)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(b)); err == nil {
		return img, nil
	}
	return nil, ErrUnsupportedImage
}

func exifOrientation(b []byte) int {
	x, err := exif.Decode(bytes.NewReader(b))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	ori, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return ori
}

// applyOrientation maps EXIF orientations 2-8 onto the upright image.
func applyOrientation(src image.Image, ori int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var (
		dw, dh int
		to     func(x, y int) (int, int)
	)
	switch ori {
	case 2: // mirror
		dw, dh, to = w, h, func(x, y int) (int, int) { return w - 1 - x, y }
	case 3: // 180
		dw, dh, to = w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case 4: // flip
		dw, dh, to = w, h, func(x, y int) (int, int) { return x, h - 1 - y }
	case 5: // transpose
		dw, dh, to = h, w, func(x, y int) (int, int) { return y, x }
	case 6: // 90 cw
		dw, dh, to = h, w, func(x, y int) (int, int) { return h - 1 - y, x }
	case 7: // transverse
		dw, dh, to = h, w, func(x, y int) (int, int) { return h - 1 - y, w - 1 - x }
	case 8: // 90 ccw
		dw, dh, to = h, w, func(x, y int) (int, int) { return y, w - 1 - x }
	default:
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := to(x, y)
			dst.Set(dx, dy, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func resizeMaxWidth(src image.Image, maxW int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW {
		return src
	}

	newH := int(math.Round(float64(h) * float64(maxW) / float64(w)))
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
