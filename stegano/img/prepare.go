package img
import (
	"fmt"
	"bytes"
	"image"
	_ "image/gif"	// readable during preparation only
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
)

/*
 * carrier preparation. real photos usually come as jpegs, which can
 * never carry the payload, so any supported image can be converted
 * into a lossless grid here BEFORE anything is embedded into it.
 */
func Prepare( data []byte, width uint ) (*image.RGBA, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("Unsupported image format.")
	}

	var decoded image.Image
	var err error
	if data[0] == 0x42 && data[1] == 0x4d {
		decoded, err = bmp.Decode( bytes.NewReader( data ) )
	} else if data[0] == 0x71 && data[1] == 0x6f && data[2] == 0x69 && data[3] == 0x66 {
		decoded, err = qoi.Decode( bytes.NewReader( data ) )
	} else {
		// png, jpeg or gif
		decoded, _, err = image.Decode( bytes.NewReader( data ) )
	}
	if err != nil {
		return nil, err
	}

	if width > 0 && width != uint( decoded.Bounds().Dx() ) {
		// height 0 keeps the aspect ratio
		decoded = resize.Resize( width, 0, decoded, resize.Lanczos3 )
	}
	return toRGBA( decoded ), nil
}
