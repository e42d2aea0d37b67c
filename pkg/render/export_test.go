package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testFrame() *Framebuffer {
	fb := NewFramebuffer(4, 3)
	fb.SetBackgroundColor(ColorSpace)
	fb.Clear()
	fb.SetCurrentColor(ColorRed)
	fb.Point(1, 1, 0)
	return fb
}

func TestToImage(t *testing.T) {
	img := testFrame().ToImage()
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 1); got.R != 255 || got.G != 0 || got.B != 0 || got.A != 255 {
		t.Errorf("pixel (1,1) = %v, want opaque red", got)
	}
	if got := img.RGBAAt(0, 0); got.R != 0x33 || got.B != 0x55 {
		t.Errorf("pixel (0,0) = %v, want background", got)
	}
}

func TestScaledNearestNeighbour(t *testing.T) {
	img := testFrame().Scaled(3)
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 9 {
		t.Fatalf("bounds = %v, want 12x9", img.Bounds())
	}
	for y := 3; y < 6; y++ {
		for x := 3; x < 6; x++ {
			if got := img.RGBAAt(x, y); got.R != 255 || got.G != 0 {
				t.Errorf("scaled pixel (%d,%d) = %v, want red", x, y, got)
			}
		}
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	fb := testFrame()

	pngPath := filepath.Join(dir, "frame.png")
	if err := fb.Save(pngPath, 2); err != nil {
		t.Fatalf("Save png: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("png bounds = %v, want 8x6", img.Bounds())
	}

	webpPath := filepath.Join(dir, "frame.webp")
	if err := fb.Save(webpPath, 1); err != nil {
		t.Fatalf("Save webp: %v", err)
	}
	if st, err := os.Stat(webpPath); err != nil || st.Size() == 0 {
		t.Errorf("webp not written: %v", err)
	}

	if err := fb.Save(filepath.Join(dir, "frame.bmp"), 1); err == nil {
		t.Error("unsupported extension should fail")
	}
}

func TestFramebufferSize(t *testing.T) {
	w, h := FramebufferSize(80, 24)
	if w != 80 || h != 48 {
		t.Errorf("FramebufferSize = %dx%d, want 80x48", w, h)
	}
}
