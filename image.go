// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texel

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// PixelsFromImage converts img to a tightly packed RGBA8 byte slice
// sized w by h, resampling with Catmull-Rom when the source dimensions
// differ. The result is suitable for [Texture.Upload] with a zero
// bytesPerRow into an RGBA8 texture.
func PixelsFromImage(img image.Image, w, h uint32) ([]byte, error) {
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: target dimensions must be at least 1", ErrInvalidArgument)
	}
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || b.Dx() != int(w) || b.Dy() != int(h) {
		rgba = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
		xdraw.CatmullRom.Scale(rgba, rgba.Bounds(), img, b, xdraw.Over, nil)
	}
	props := PropertiesOf(FormatRGBA8Unorm)
	packed := props.BytesPerRow(w)
	if uint64(rgba.Stride) == packed && rgba.Rect.Min == (image.Point{}) {
		return rgba.Pix, nil
	}
	out := make([]byte, packed*uint64(h))
	if err := RepackData(props, New2D(0, 0, w, h), rgba.Pix, uint64(rgba.Stride), out, 0, false); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadImage converts img and uploads it to the texture's base level.
// The texture must be RGBA8.
func (t *Texture) UploadImage(img image.Image) error {
	if t.desc.Format != FormatRGBA8Unorm {
		return fmt.Errorf("%w: image uploads require an RGBA8 texture, got %v", ErrInvalidArgument, t.desc.Format)
	}
	pix, err := PixelsFromImage(img, t.desc.Width, t.desc.Height)
	if err != nil {
		return err
	}
	return t.Upload(New2D(0, 0, t.desc.Width, t.desc.Height), pix, 0)
}
