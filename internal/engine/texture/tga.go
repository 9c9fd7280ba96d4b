package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

// DecodeTGA decodes uncompressed and RLE true-color TGA data (24 or 32 bpp).
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: header truncated")
	}

	idLength := int(data[0])
	if data[1] != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	imageType := data[2]
	if imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	topToBottom := data[17]&0x20 != 0

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("tga: data truncated")
	}

	r := tgaReader{
		src:         data[offset:],
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		stride:      bpp / 8,
		topToBottom: topToBottom,
	}
	if imageType == tgaTrueColor {
		if len(r.src) < width*height*r.stride {
			return nil, fmt.Errorf("tga: pixel data truncated")
		}
		for r.n < width*height {
			r.put(r.next())
		}
	} else if err := r.readRLE(); err != nil {
		return nil, err
	}
	return r.img, nil
}

type tgaReader struct {
	src         []byte
	pos         int
	img         *image.RGBA
	stride      int
	topToBottom bool
	n           int
}

func (r *tgaReader) next() color.RGBA {
	p := r.src[r.pos : r.pos+r.stride]
	r.pos += r.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.stride == 4 {
		c.A = p[3]
	}
	return c
}

// put writes the next pixel in file order. Files are bottom-up unless the
// descriptor says otherwise.
func (r *tgaReader) put(c color.RGBA) {
	w, h := r.img.Rect.Dx(), r.img.Rect.Dy()
	x, y := r.n%w, r.n/w
	if !r.topToBottom {
		y = h - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.n++
}

func (r *tgaReader) readRLE() error {
	total := r.img.Rect.Dx() * r.img.Rect.Dy()
	for r.n < total {
		if r.pos >= len(r.src) {
			return fmt.Errorf("tga: rle data truncated at pixel %d", r.n)
		}
		packet := r.src[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if r.pos+r.stride > len(r.src) {
				return fmt.Errorf("tga: rle data truncated at pixel %d", r.n)
			}
			c := r.next()
			for i := 0; i < count && r.n < total; i++ {
				r.put(c)
			}
			continue
		}
		for i := 0; i < count && r.n < total; i++ {
			if r.pos+r.stride > len(r.src) {
				return fmt.Errorf("tga: rle data truncated at pixel %d", r.n)
			}
			r.put(r.next())
		}
	}
	return nil
}
