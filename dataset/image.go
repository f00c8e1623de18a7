// Package dataset resolves dataset list files into decoded images and defines
// the Image abstraction the classifier reads pixels through.
package dataset

import (
	"image"
	"image/color"
)

// Image is the pixel access the classifier needs: dimensions and 8-bit RGB
// lookup at (x, y) with 0 <= x < Width() and 0 <= y < Height().
type Image interface {
	Width() int
	Height() int
	RGB(x, y int) (r, g, b uint8)
}

// stdImage adapts an image.Image, translating coordinates to its bounds.
type stdImage struct {
	img  image.Image
	rect image.Rectangle
}

// FromImage wraps a decoded image.Image. Channels are reduced from 16 to 8
// bits by a right shift of 8, matching the 8-bit values stored in the file.
func FromImage(img image.Image) Image {
	if rgba, ok := img.(*image.RGBA); ok {
		return &RGB{pix: rgba.Pix, stride: rgba.Stride, w: rgba.Rect.Dx(), h: rgba.Rect.Dy(), alpha: true}
	}
	return &stdImage{img: img, rect: img.Bounds()}
}

func (s *stdImage) Width() int  { return s.rect.Dx() }
func (s *stdImage) Height() int { return s.rect.Dy() }

func (s *stdImage) RGB(x, y int) (r, g, b uint8) {
	r32, g32, b32, _ := s.img.At(s.rect.Min.X+x, s.rect.Min.Y+y).RGBA()
	return uint8(r32 >> 8), uint8(g32 >> 8), uint8(b32 >> 8)
}

// RGB is an in-memory 8-bit image.
type RGB struct {
	pix    []uint8
	stride int
	w, h   int
	alpha  bool
}

// NewRGB returns a black w x h image.
func NewRGB(w, h int) *RGB {
	return &RGB{pix: make([]uint8, 3*w*h), stride: 3 * w, w: w, h: h}
}

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.RGBA) *RGB {
	img := NewRGB(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c.R, c.G, c.B)
		}
	}
	return img
}

func (m *RGB) Width() int  { return m.w }
func (m *RGB) Height() int { return m.h }

func (m *RGB) index(x, y int) int {
	if m.alpha {
		return y*m.stride + 4*x
	}
	return y*m.stride + 3*x
}

// RGB implements Image.
func (m *RGB) RGB(x, y int) (r, g, b uint8) {
	i := m.index(x, y)
	return m.pix[i], m.pix[i+1], m.pix[i+2]
}

// Set stores a pixel.
func (m *RGB) Set(x, y int, r, g, b uint8) {
	i := m.index(x, y)
	m.pix[i], m.pix[i+1], m.pix[i+2] = r, g, b
}

// ToImage converts the image to *image.NRGBA, e.g. for encoding fixtures.
func (m *RGB) ToImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.w, m.h))
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			r, g, b := m.RGB(x, y)
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}
