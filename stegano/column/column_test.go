package column
import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// a small gradient image without pure black pixels at the edges of
// the value range in mind
func makeTestImage( w, h int ) *image.RGBA {
	img := image.NewRGBA( image.Rect( 0, 0, w, h ) )
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set( x, y, color.RGBA{
				uint8( 10 + x * 3 ),
				uint8( 20 + y * 5 ),
				uint8( 30 + x + y ),
				0xff,
			} )
		}
	}
	return img
}

func pixelAt( img *image.RGBA, x, y int ) (uint8, uint8, uint8) {
	r, g, b, _ := img.At( x, y ).RGBA()
	return uint8(r), uint8(g), uint8(b)
}

func isBlack( img *image.RGBA, x, y int ) bool {
	r, g, b := pixelAt( img, x, y )
	return r == 0 && g == 0 && b == 0
}

// what Extract must return for a payload embedded with the given
// parameters: the payload itself followed by filler bytes decoded
// from the black-painted tail of the sampling pattern.
func expectedOutput( data []byte, blackBit uint8, w, h, step int ) []byte {
	capacity := Capacity( w, h, step )
	filler := byte(0x00)
	if blackBit == 1 {
		filler = 0xff
	}
	if len(data) * 8 > capacity {
		return data[ : capacity / 8 ]
	}
	tail := ( capacity - len(data) * 8 ) / 8
	return append( append( []byte{}, data... ), bytes.Repeat( []byte{filler}, tail )... )
}

func TestLighten( t *testing.T ) {
	img := image.NewRGBA( image.Rect( 0, 0, 3, 2 ) )
	img.Set( 0, 0, color.RGBA{0, 0, 0, 0xff} )	// a natural pure black pixel
	img.Set( 1, 0, color.RGBA{255, 128, 0, 0xff} )
	img.Set( 2, 0, color.RGBA{254, 255, 1, 0xff} )
	img.Set( 0, 1, color.RGBA{100, 200, 50, 0xff} )
	img.Set( 1, 1, color.RGBA{255, 255, 255, 0xff} )
	img.Set( 2, 1, color.RGBA{0, 255, 0, 0xff} )

	out := Lighten( img )
	if out.Bounds() != img.Bounds() {
		t.Errorf("Lightening changed image dimensions")
	}

	// zero goes to one, 255 saturates
	if r, g, b := pixelAt( out, 0, 0 ); r != 1 || g != 1 || b != 1 {
		t.Errorf("Black pixel must become (1,1,1), got (%d,%d,%d)", r, g, b)
	}
	if r, g, b := pixelAt( out, 1, 0 ); r != 255 || g != 129 || b != 1 {
		t.Errorf("Invalid lightened pixel: (%d,%d,%d)", r, g, b)
	}
	if r, g, b := pixelAt( out, 1, 1 ); r != 255 || g != 255 || b != 255 {
		t.Errorf("White must stay white, got (%d,%d,%d)", r, g, b)
	}

	// the invariant extraction relies on: no black pixel survives
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if isBlack( out, x, y ) {
				t.Errorf("Pure black pixel at (%d,%d) after lightening", x, y)
			}
		}
	}

	// source must be untouched
	if isBlack( img, 0, 0 ) == false {
		t.Errorf("Lightening mutated the source image")
	}
}

func TestLightenKeepsNoBlack( t *testing.T ) {
	// even an entirely black image must come out without black pixels
	img := image.NewRGBA( image.Rect( 0, 0, 8, 8 ) )
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set( x, y, color.RGBA{0, 0, 0, 0xff} )
		}
	}
	out := Lighten( img )
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if isBlack( out, x, y ) {
				t.Errorf("Pure black pixel at (%d,%d) after lightening", x, y)
			}
		}
	}
}

func TestRoundTrip( t *testing.T ) {
	sizes := [][2]int{
		{4, 4},
		{16, 8},
		{33, 7},
		{64, 64},
	}
	steps := []int{1, 2, 3, 5}
	payloads := []string{
		"Hi",
		"Hello world!",
	}

	for _, size := range sizes {
		w, h := size[0], size[1]
		src := Lighten( makeTestImage( w, h ) )
		for _, step := range steps {
			for _, blackBit := range []uint8{0, 1} {
				for _, text := range payloads {
					if len(text) * 8 > Capacity( w, h, step ) {
						continue
					}
					enc, err := Embed( src, []byte(text), blackBit, step )
					if err != nil {
						t.Errorf("Failed to embed: %v", err)
						continue
					}
					dec, err := Extract( enc, blackBit, step )
					if err != nil {
						t.Errorf("Failed to extract: %v", err)
						continue
					}
					expected := expectedOutput( []byte(text), blackBit, w, h, step )
					if bytes.Equal( dec, expected ) == false {
						t.Errorf("Round trip spoiled the data (%dx%d step %d bit %d): %q != %q",
							w, h, step, blackBit, dec, expected)
					}
					// the payload itself must always come back as a prefix
					if bytes.HasPrefix( dec, []byte(text) ) == false {
						t.Errorf("Payload lost: %q does not start with %q", dec, text)
					}
				}
			}
		}
	}
}

func TestKnownPattern( t *testing.T ) {
	// 4x4 grid, step 2 samples columns 1 and 3, four rows each:
	// exactly 8 visited pixels for the 8 bits of "A" (01000001).
	src := Lighten( makeTestImage( 4, 4 ) )
	enc, err := Embed( src, []byte("A"), 0, 2 )
	if err != nil {
		t.Errorf("Failed to embed: %v", err)
	}

	// with blackBit 0 a zero bit paints black and a one bit leaves
	// the lightened pixel in place
	expectBlack := map[[2]int]bool{
		{1, 0}: true,	// bit 0
		{1, 1}: false,	// bit 1
		{1, 2}: true,	// bit 0
		{1, 3}: true,	// bit 0
		{3, 0}: true,	// bit 0
		{3, 1}: true,	// bit 0
		{3, 2}: true,	// bit 0
		{3, 3}: false,	// bit 1
	}
	for pos, wantBlack := range expectBlack {
		if isBlack( enc, pos[0], pos[1] ) != wantBlack {
			t.Errorf("Pixel (%d,%d): black = %v, expected %v",
				pos[0], pos[1], !wantBlack, wantBlack)
		}
	}

	// pixels outside the sampling pattern must keep their lightened value
	for y := 0; y < 4; y++ {
		for _, x := range []int{0, 2} {
			er, eg, eb := pixelAt( enc, x, y )
			sr, sg, sb := pixelAt( src, x, y )
			if er != sr || eg != sg || eb != sb {
				t.Errorf("Unsampled pixel (%d,%d) was modified", x, y)
			}
		}
	}

	dec, err := Extract( enc, 0, 2 )
	if err != nil {
		t.Errorf("Failed to extract: %v", err)
	}
	if string(dec) != "A" {
		t.Errorf("Extracted %q instead of \"A\"", dec)
	}
}

func TestPolarityMismatch( t *testing.T ) {
	src := Lighten( makeTestImage( 16, 16 ) )
	enc, err := Embed( src, []byte("Hello"), 0, 2 )
	if err != nil {
		t.Errorf("Failed to embed: %v", err)
	}

	// decoding with the opposite black bit flips every single bit
	dec, err := Extract( enc, 1, 2 )
	if err != nil {
		t.Errorf("Failed to extract: %v", err)
	}
	if bytes.HasPrefix( dec, []byte("Hello") ) {
		t.Errorf("Mismatched polarity must not recover the payload")
	}
	expected := expectedOutput( []byte("Hello"), 0, 16, 16, 2 )
	if len(dec) != len(expected) {
		t.Errorf("Mismatched polarity changed output length: %d != %d",
			len(dec), len(expected))
	}
	for i := range dec {
		if dec[i] != ^expected[i] {
			t.Errorf("Byte %d is not the bitwise complement: %02x != ^%02x",
				i, dec[i], expected[i])
		}
	}
}

func TestCapacityTruncation( t *testing.T ) {
	// 6x4 at step 2 samples columns 1, 3 and 5: 12 pixels, one byte
	// plus a dropped half byte
	w, h, step := 6, 4, 2
	if Capacity( w, h, step ) != 12 {
		t.Errorf("Unexpected capacity: %d", Capacity( w, h, step ))
	}
	src := Lighten( makeTestImage( w, h ) )
	enc, err := Embed( src, []byte("ABC"), 0, step )
	if err != nil {
		t.Errorf("Failed to embed: %v", err)
	}
	dec, err := Extract( enc, 0, step )
	if err != nil {
		t.Errorf("Failed to extract: %v", err)
	}
	if string(dec) != "A" {
		t.Errorf("Truncated payload must decode to \"A\", got %q", dec)
	}
}

func TestEmptyPayload( t *testing.T ) {
	w, h, step := 8, 8, 2
	src := Lighten( makeTestImage( w, h ) )
	enc, err := Embed( src, nil, 0, step )
	if err != nil {
		t.Errorf("Failed to embed: %v", err)
	}

	// with no bits at all every visited pixel hits the exhausted branch
	walkColumns( w, h, step, func( x, y int ) {
		if isBlack( enc, x, y ) == false {
			t.Errorf("Sampled pixel (%d,%d) must be black for an empty payload", x, y)
		}
	} )

	dec, err := Extract( enc, 0, step )
	if err != nil {
		t.Errorf("Failed to extract: %v", err)
	}
	expected := bytes.Repeat( []byte{0x00}, Capacity( w, h, step ) / 8 )
	if bytes.Equal( dec, expected ) == false {
		t.Errorf("Empty payload must decode to filler bytes only, got %v", dec)
	}
}

func TestSingleColumn( t *testing.T ) {
	// step bigger than the width still samples column 1
	w, h, step := 4, 8, 7
	if Capacity( w, h, step ) != 8 {
		t.Errorf("Single column capacity must be %d, got %d", h, Capacity( w, h, step ))
	}
	src := Lighten( makeTestImage( w, h ) )
	enc, err := Embed( src, []byte("Z"), 1, step )
	if err != nil {
		t.Errorf("Failed to embed: %v", err)
	}
	dec, err := Extract( enc, 1, step )
	if err != nil {
		t.Errorf("Failed to extract: %v", err)
	}
	// capacity matches the payload exactly here, no filler tail
	if string(dec) != "Z" {
		t.Errorf("Extracted %q instead of \"Z\"", dec)
	}
}

func TestCapacity( t *testing.T ) {
	tests := []struct {
		w, h, step	int
		expected	int
	}{
		{4, 4, 2, 8},
		{6, 4, 2, 12},
		{1, 5, 2, 0},
		{0, 0, 1, 0},
		{2, 3, 1, 3},
		{10, 2, 3, 6},
		{5, 5, 10, 5},
		{4, 4, 0, 0},
	}
	for _, test := range tests {
		got := Capacity( test.w, test.h, test.step )
		if got != test.expected {
			t.Errorf("Capacity(%d,%d,%d) = %d, expected %d",
				test.w, test.h, test.step, got, test.expected)
		}
	}
}

func TestEmbedDoesNotMutateSource( t *testing.T ) {
	src := Lighten( makeTestImage( 8, 8 ) )
	before := make( []byte, len(src.Pix) )
	copy( before, src.Pix )

	if _, err := Embed( src, []byte("mutation check"), 0, 2 ); err != nil {
		t.Errorf("Failed to embed: %v", err)
	}
	if bytes.Equal( before, src.Pix ) == false {
		t.Errorf("Embedding mutated the source image")
	}
}

func TestInvalidParams( t *testing.T ) {
	src := Lighten( makeTestImage( 4, 4 ) )

	if _, err := Embed( nil, []byte("x"), 0, 2 ); err == nil {
		t.Errorf("Embedding into a nil image must fail")
	}
	if _, err := Embed( src, []byte("x"), 2, 2 ); err == nil {
		t.Errorf("Black bit above 1 must be rejected")
	}
	if _, err := Embed( src, []byte("x"), 0, 0 ); err == nil {
		t.Errorf("Zero column step must be rejected")
	}
	if _, err := Extract( nil, 0, 2 ); err == nil {
		t.Errorf("Extracting from a nil image must fail")
	}
	if _, err := Extract( src, 2, 2 ); err == nil {
		t.Errorf("Black bit above 1 must be rejected")
	}
	if _, err := Extract( src, 0, -1 ); err == nil {
		t.Errorf("Negative column step must be rejected")
	}
}
