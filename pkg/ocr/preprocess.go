package ocr

import (
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
)

// preprocessImage prepares a receipt photo for Tesseract: grayscale, upscale
// small images, raise contrast, then a global binarize. The result is written
// next to the source with an .ocr.png suffix; the caller removes it.
func preprocessImage(path string) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	img = imaging.Grayscale(img)
	if img.Bounds().Dx() < 1000 {
		img = imaging.Resize(img, img.Bounds().Dx()*2, 0, imaging.Lanczos)
	}
	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 1.0)
	out := binarize(img, 160)

	tmp := path + ".ocr.png"
	if err := imaging.Save(out, tmp); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

// binarize performs a simple global threshold on a grayscale image.
func binarize(img image.Image, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			gray := uint8((r + g + bb) / 3 >> 8)
			var v uint8 = 255
			if gray <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}
