package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// intensity is the range linear channel values are clamped to before quantizing
var intensity = core.NewInterval(0.000, 0.999)

// RGB is an 8-bit display color
type RGB struct {
	R, G, B uint8
}

// LinearToGamma applies gamma 2 correction. Non-positive values map to 0.
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ColorToRGB gamma-corrects a linear color and quantizes each channel to [0, 255]
func ColorToRGB(c core.Vec3) RGB {
	r := LinearToGamma(c.X)
	g := LinearToGamma(c.Y)
	b := LinearToGamma(c.Z)

	return RGB{
		R: uint8(255.999 * intensity.Clamp(r)),
		G: uint8(255.999 * intensity.Clamp(g)),
		B: uint8(255.999 * intensity.Clamp(b)),
	}
}

// Image is a row-major grid of display colors, top row first
type Image struct {
	Width, Height int
	Pixels        []RGB
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]RGB, width*height),
	}
}

// At returns the pixel at column x, row y
func (img *Image) At(x, y int) RGB {
	return img.Pixels[y*img.Width+x]
}

// Set stores the pixel at column x, row y
func (img *Image) Set(x, y int, c RGB) {
	img.Pixels[y*img.Width+x] = c
}

// Row returns the pixels of row y. The slice aliases the image.
func (img *Image) Row(y int) []RGB {
	return img.Pixels[y*img.Width : (y+1)*img.Width]
}

// WritePPM writes the image as an ASCII PPM (P3) stream, one pixel per line
func (img *Image) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	for _, p := range img.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
			return fmt.Errorf("write ppm pixel: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush ppm: %w", err)
	}
	return nil
}

// ToRGBA converts the image for use with the image/* encoders
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x, p := range img.Row(y) {
			rgba.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return rgba
}
