package img
import (
	"os"
	"fmt"
	"bytes"
	"image"
	"image/png"
	"strings"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
)

/*
 * carrier storage: loading and saving the pixel grids the column
 * scheme works on. only lossless truecolor containers are valid
 * carriers, a jpeg recompression or a gif palette would destroy
 * the payload.
 */

// load a carrier image from disk and normalize it to an opaque RGB
// grid. a missing file keeps its fs.ErrNotExist classification so
// the caller can tell "nothing to decode" from "decoding went wrong".
func Load( filename string ) (*image.RGBA, error) {
	data, err := os.ReadFile( filename )
	if err != nil {
		return nil, err
	}
	return DecodeCarrier( data )
}

func DecodeCarrier( data []byte ) (*image.RGBA, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("Unsupported image format.")
	}
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4e &&
		data[3] == 0x47 && data[4] == 0x0d && data[5] == 0x0a &&
		data[6] == 0x1a && data[7] == 0x0a {
		// a png image
		decoded, err := png.Decode( bytes.NewReader( data ) )
		if err != nil {
			return nil, err
		}
		return toRGBA( decoded ), nil
	}
	if data[0] == 0x42 && data[1] == 0x4d {
		// bmp image
		decoded, err := bmp.Decode( bytes.NewReader( data ) )
		if err != nil {
			return nil, err
		}
		return toRGBA( decoded ), nil
	}
	if data[0] == 0x71 && data[1] == 0x6f && data[2] == 0x69 && data[3] == 0x66 {
		// qoi image
		decoded, err := qoi.Decode( bytes.NewReader( data ) )
		if err != nil {
			return nil, err
		}
		return toRGBA( decoded ), nil
	}
	if data[0] == 0xff && data[1] == 0xd8 && data[2] == 0xff {
		return nil, fmt.Errorf("JPEG is a lossy container and cannot carry the payload. Run 'prepare' on it first.")
	}
	if data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 {
		return nil, fmt.Errorf("GIF is a paletted container and cannot carry the payload. Run 'prepare' on it first.")
	}
	return nil, fmt.Errorf("Unsupported image format.")
}

// save the grid in the container matching the filename extension
func Save( filename string, grid *image.RGBA ) error {
	if grid == nil {
		return fmt.Errorf("No image supplied")
	}
	buf := new(bytes.Buffer)

	ext := strings.ToLower( filename )
	switch {
	case strings.HasSuffix( ext, ".png" ):
		if err := png.Encode( buf, grid ); err != nil {
			return err
		}
	case strings.HasSuffix( ext, ".bmp" ):
		if err := bmp.Encode( buf, grid ); err != nil {
			return err
		}
	case strings.HasSuffix( ext, ".qoi" ):
		if err := qoi.Encode( buf, grid ); err != nil {
			return err
		}
	default:
		return fmt.Errorf("Unsupported image format: %s", filename)
	}
	return os.WriteFile( filename, buf.Bytes(), 0660 )
}

// flatten any decoded image into an opaque RGBA grid, the moral
// equivalent of PIL's convert("RGB")
func toRGBA( src image.Image ) *image.RGBA {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	grid := image.NewRGBA( image.Rect( 0, 0, width, height ) )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At( bounds.Min.X + x, bounds.Min.Y + y ).RGBA()
			offset := grid.PixOffset( x, y )
			grid.Pix[ offset ] = uint8( r >> 8 )
			grid.Pix[ offset + 1 ] = uint8( g >> 8 )
			grid.Pix[ offset + 2 ] = uint8( b >> 8 )
			grid.Pix[ offset + 3 ] = 0xff
		}
	}
	return grid
}
