package texture

import (
	"image/color"
	"testing"
)

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGA(t *testing.T) {
	red := []byte{0, 0, 255}
	blue := []byte{255, 0, 0}

	tests := []struct {
		name string
		data []byte
		top  color.RGBA
		bot  color.RGBA
	}{
		{
			name: "uncompressed bottom-up",
			data: append(tgaHeader(tgaTrueColor, 1, 2, 24, 0), append(red, blue...)...),
			top:  color.RGBA{B: 255, A: 255},
			bot:  color.RGBA{R: 255, A: 255},
		},
		{
			name: "uncompressed top-down",
			data: append(tgaHeader(tgaTrueColor, 1, 2, 24, 0x20), append(red, blue...)...),
			top:  color.RGBA{R: 255, A: 255},
			bot:  color.RGBA{B: 255, A: 255},
		},
		{
			name: "rle run",
			data: append(tgaHeader(tgaTrueColorRLE, 1, 2, 32, 0x20), 0x81, 0, 255, 0, 128),
			top:  color.RGBA{G: 255, A: 128},
			bot:  color.RGBA{G: 255, A: 128},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeTGA(tt.data)
			if err != nil {
				t.Fatalf("DecodeTGA: %v", err)
			}
			if got := img.RGBAAt(0, 0); got != tt.top {
				t.Errorf("top pixel = %v, want %v", got, tt.top)
			}
			if got := img.RGBAAt(0, 1); got != tt.bot {
				t.Errorf("bottom pixel = %v, want %v", got, tt.bot)
			}
		})
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := map[string][]byte{
		"short header":    {0, 0, 2},
		"color mapped":    append([]byte{0, 1}, make([]byte, 16)...),
		"grayscale":       tgaHeader(3, 1, 1, 8, 0),
		"16 bit":          tgaHeader(tgaTrueColor, 1, 1, 16, 0),
		"truncated":       append(tgaHeader(tgaTrueColor, 2, 2, 24, 0), 1, 2, 3),
		"truncated rle":   append(tgaHeader(tgaTrueColorRLE, 2, 2, 24, 0), 0x83),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeTGA(data); err == nil {
				t.Error("expected error")
			}
		})
	}
}
