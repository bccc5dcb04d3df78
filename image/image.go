// seehuhn.de/go/streampdf - write PDF files in a single pass
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package image loads raster images for embedding in PDF files.
//
// JPEG files are embedded unchanged, using the DCTDecode filter.  Images
// in other formats (PNG, GIF, BMP, TIFF and WebP) are decoded and stored
// as 8-bit samples, compressed with the FlateDecode filter.  For these
// formats, transparency is preserved using a soft mask.
package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"os"

	_ "image/gif"  // register the GIF decoder
	_ "image/jpeg" // register the JPEG decoder
	_ "image/png"  // register the PNG decoder

	_ "golang.org/x/image/bmp"  // register the BMP decoder
	_ "golang.org/x/image/tiff" // register the TIFF decoder
	_ "golang.org/x/image/webp" // register the WebP decoder

	"seehuhn.de/go/streampdf/pdf"
)

// Image is a raster image in a form which can be embedded in a PDF file.
type Image struct {
	Width, Height    int
	ColorSpace       pdf.Name
	BitsPerComponent int

	// Filter is the PDF filter needed to decode Data,
	// either DCTDecode or FlateDecode.
	Filter pdf.Name
	Data   []byte

	// Decode, if not nil, is used as the /Decode array of the image.
	Decode pdf.Array

	// Mask, if not nil, is a DeviceGray image used as the soft mask.
	Mask *Image
}

// Decoder turns the contents of an image file into an Image.
type Decoder interface {
	Decode(data []byte) (*Image, error)
}

// DecoderFunc is an adapter to allow the use of ordinary functions as
// image decoders.
type DecoderFunc func(data []byte) (*Image, error)

// Decode implements the Decoder interface.
func (f DecoderFunc) Decode(data []byte) (*Image, error) {
	return f(data)
}

// DefaultDecoder is the decoder used by LoadFromFile.
var DefaultDecoder Decoder = DecoderFunc(Decode)

// LoadFromFile reads and decodes an image file.
//
// If the file cannot be read, a *pdf.ResourceError is returned.  If the
// file contents cannot be decoded, a *pdf.DecodeError is returned.
func LoadFromFile(path string) (*Image, error) {
	return Load(path, DefaultDecoder)
}

// Load reads an image file and decodes it using dec.
func Load(path string, dec Decoder) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &pdf.ResourceError{Op: "read image", Name: path, Err: err}
	}
	img, err := dec.Decode(data)
	if err != nil {
		var decErr *pdf.DecodeError
		if errors.As(err, &decErr) && decErr.Name == "" {
			decErr.Name = path
			return nil, decErr
		}
		return nil, &pdf.DecodeError{Name: path, Err: err}
	}
	return img, nil
}

// Decode converts the contents of an image file into an Image.
// JPEG data is passed through without re-encoding.
func Decode(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &pdf.DecodeError{Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &pdf.DecodeError{Err: errEmpty}
	}

	if format == "jpeg" {
		res := &Image{
			Width:            cfg.Width,
			Height:           cfg.Height,
			BitsPerComponent: 8,
			Filter:           "DCTDecode",
			Data:             data,
		}
		switch cfg.ColorModel {
		case color.GrayModel:
			res.ColorSpace = "DeviceGray"
		case color.CMYKModel:
			res.ColorSpace = "DeviceCMYK"
			// Adobe applications write inverted CMYK data
			res.Decode = pdf.Array{
				pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
				pdf.Integer(1), pdf.Integer(0), pdf.Integer(1), pdf.Integer(0),
			}
		default:
			res.ColorSpace = "DeviceRGB"
		}
		return res, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &pdf.DecodeError{Err: err}
	}
	return FromImage(src)
}

// FromImage converts a decoded image into an Image, using lossless
// compression.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, &pdf.DecodeError{Err: errEmpty}
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)

	isGray := false
	switch src.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		isGray = true
	}

	var pixels []byte
	if isGray {
		pixels = make([]byte, 0, width*height)
	} else {
		pixels = make([]byte, 0, 3*width*height)
	}
	alpha := make([]byte, 0, width*height)
	hasAlpha := false
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+4*width]
		for x := 0; x < width; x++ {
			r, g, b, a := row[4*x], row[4*x+1], row[4*x+2], row[4*x+3]
			if isGray {
				pixels = append(pixels, r)
			} else {
				pixels = append(pixels, r, g, b)
			}
			alpha = append(alpha, a)
			if a != 0xFF {
				hasAlpha = true
			}
		}
	}

	res, err := flateImage(width, height, isGray, pixels)
	if err != nil {
		return nil, err
	}
	if hasAlpha {
		res.Mask, err = flateImage(width, height, true, alpha)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func flateImage(width, height int, isGray bool, pixels []byte) (*Image, error) {
	data, err := pdf.Compress(pixels)
	if err != nil {
		return nil, err
	}
	cs := pdf.Name("DeviceRGB")
	if isGray {
		cs = "DeviceGray"
	}
	return &Image{
		Width:            width,
		Height:           height,
		ColorSpace:       cs,
		BitsPerComponent: 8,
		Filter:           "FlateDecode",
		Data:             data,
	}, nil
}

var errEmpty = errors.New("image has no pixels")
