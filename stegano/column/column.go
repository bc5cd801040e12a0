package column
import (
	"fmt"
	"image"
	"image/color"

	"tvcrypt/stegano/util"
)

/*
 * column-based steganography over an RGB pixel grid.
 *
 * the encoder walks columns x = 1, 1+step, ... and every row inside
 * each visited column, painting a pixel pure black when the current
 * payload bit equals blackBit and leaving it untouched otherwise.
 * once the payload runs out every remaining visited pixel is painted
 * black as well. the decoder walks the exact same pattern and maps
 * blackness back to bits.
 *
 * the scheme is fragile on purpose: any lossy recompression or
 * resampling of the carrier destroys the payload.
 */

var blackPixel = color.RGBA{0, 0, 0, 0xff}

// visit pixels in the shared sampling order. embedding and extraction
// must walk bit-for-bit identically, so both go through this walk.
func walkColumns( w, h, step int, visit func( x, y int ) ) {
	for x := 1; x < w; x += step {
		for y := 0; y < h; y++ {
			visit( x, y )
		}
	}
}

// how many pixels the sampling pattern visits on a w x h grid.
// this is a plain helper: nothing gates on it, oversized payloads
// are silently truncated.
func Capacity( w, h, step int ) int {
	if w <= 1 || h <= 0 || step < 1 {
		return 0
	}
	columns := (w - 2) / step + 1
	return columns * h
}

// produce a copy of src with every RGB channel incremented by one,
// clamped at 255. after this no pixel can be pure black unless the
// encoder painted it, which is the invariant extraction relies on.
func Lighten( src *image.RGBA ) *image.RGBA {
	bounds := src.Bounds()
	width, height := bounds.Max.X, bounds.Max.Y

	out := image.NewRGBA( bounds )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At( x, y ).RGBA()
			out.Set( x, y, color.RGBA{
				lighten( uint8(r) ),
				lighten( uint8(g) ),
				lighten( uint8(b) ),
				0xff,
			} )
		}
	}
	return out
}

func lighten( channel uint8 ) uint8 {
	if channel == 255 {
		return 255
	}
	return channel + 1
}

// embed data into a lightened grid and return the encoded copy.
// src is never mutated. bits that do not fit are never written,
// without any warning.
func Embed( src *image.RGBA, data []byte, blackBit uint8, step int ) (*image.RGBA, error) {
	if err := checkParams( src, blackBit, step ); err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	width, height := bounds.Max.X, bounds.Max.Y

	// start from a copy of the lightened source
	out := image.NewRGBA( bounds )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.Set( x, y, src.At( x, y ) )
		}
	}

	bits := util.ToBits( data )
	idx := 0
	walkColumns( width, height, step, func( x, y int ) {
		if idx >= len(bits) {
			// payload exhausted, the rest of the pattern is painted black
			out.Set( x, y, blackPixel )
		} else if bits[idx] == blackBit {
			out.Set( x, y, blackPixel )
		}
		// a bit not equal to blackBit leaves the lightened pixel as is
		idx++
	} )
	return out, nil
}

// walk the same pattern over an encoded grid and reassemble the bytes.
// a trailing group shorter than 8 bits is dropped silently. decoding
// with the wrong blackBit yields complement garbage, not an error.
func Extract( src *image.RGBA, blackBit uint8, step int ) ([]byte, error) {
	if err := checkParams( src, blackBit, step ); err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	width, height := bounds.Max.X, bounds.Max.Y

	bits := make( []uint8, 0, Capacity( width, height, step ) )
	walkColumns( width, height, step, func( x, y int ) {
		r, g, b, _ := src.At( x, y ).RGBA()
		if r == 0 && g == 0 && b == 0 {
			bits = append( bits, blackBit )
		} else {
			bits = append( bits, 1 - blackBit )
		}
	} )
	return util.FromBits( bits ), nil
}

func checkParams( src *image.RGBA, blackBit uint8, step int ) error {
	if src == nil {
		return fmt.Errorf("No image supplied")
	}
	if blackBit > 1 {
		return fmt.Errorf("Invalid black bit value: %d", blackBit)
	}
	if step < 1 {
		return fmt.Errorf("Invalid column step: %d", step)
	}
	return nil
}
