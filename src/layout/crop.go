package layout

import (
	"image"
	"image/color"
)

// cropToContent returns the sub-image bounding every pixel that differs from
// bg, grown by pad pixels and clamped to the image. An image that is all
// background is returned unchanged.
func cropToContent(img image.Image, bg color.Color, pad int) image.Image {
	b := img.Bounds()
	br, bgG, bb, ba := bg.RGBA()
	box := image.Rectangle{}
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if r == br && g == bgG && bl == bb && a == ba {
				continue
			}
			if !found {
				box = image.Rect(x, y, x+1, y+1)
				found = true
				continue
			}
			box = box.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	if !found {
		return img
	}
	box = box.Inset(-pad).Intersect(b)
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(box)
	}
	return img
}
