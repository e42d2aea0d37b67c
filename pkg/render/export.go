package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	xdraw "golang.org/x/image/draw"
)

// ToImage converts the framebuffer to an opaque image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, p := range fb.Buffer {
		o := i * 4
		img.Pix[o] = uint8(p >> 16)
		img.Pix[o+1] = uint8(p >> 8)
		img.Pix[o+2] = uint8(p)
		img.Pix[o+3] = 255
	}
	return img
}

// Scaled returns the frame upscaled by an integer factor with
// nearest-neighbour sampling, so pixels stay crisp. Factors below 2 return
// the unscaled image.
func (fb *Framebuffer) Scaled(factor int) *image.RGBA {
	src := fb.ToImage()
	if factor < 2 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*factor, fb.Height*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// SavePNG writes the frame to path as PNG.
func (fb *Framebuffer) SavePNG(path string, scale int) error {
	return fb.save(path, scale, png.Encode)
}

// SaveWebP writes the frame to path as lossless WebP.
func (fb *Framebuffer) SaveWebP(path string, scale int) error {
	return fb.save(path, scale, func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	})
}

// Save picks the encoder from the file extension (.png or .webp).
func (fb *Framebuffer) Save(path string, scale int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return fb.SavePNG(path, scale)
	case ".webp":
		return fb.SaveWebP(path, scale)
	default:
		return fmt.Errorf("save frame: unsupported extension %q (want .png or .webp)", filepath.Ext(path))
	}
}

func (fb *Framebuffer) save(path string, scale int, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f, fb.Scaled(scale)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
