package graphics

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"rama/internal/logging"
)

// Texture is a 2D image on the device.
type Texture struct {
	ID     uuid.UUID
	Path   string
	Width  int
	Height int
	Format TextureFormat
	// Unit is the texture unit of the last Bind, used by Shader.SetTexture.
	Unit int

	handle  uint32
	dev     Device
	tracker *Tracker
}

// LoadTexture decodes an image file and uploads it with nearest filtering
// and clamp-to-edge wrapping. When decoding fails the error is logged and
// the returned texture has no backing data; check Valid before use.
func (r *Resources) LoadTexture(path string) (*Texture, error) {
	img, err := decodeImage(path)
	if err != nil {
		logging.Error("failed to load texture data: %s: %v", path, err)
		return &Texture{Path: path, dev: r.Device}, fmt.Errorf("%w: %s: %v", ErrTextureDecode, path, err)
	}
	return r.NewTextureFromImage(path, img), nil
}

// NewTextureFromImage uploads an already decoded image.
func (r *Resources) NewTextureFromImage(label string, img image.Image) *Texture {
	pix, format := PixelData(img)
	size := img.Bounds().Size()
	desc := TextureDesc{Width: size.X, Height: size.Y, Format: format, Filter: FilterNearest}
	return &Texture{
		ID:      r.Tracker.register(KindTexture, label),
		Path:    label,
		Width:   size.X,
		Height:  size.Y,
		Format:  format,
		handle:  r.Device.CreateTexture(desc, pix),
		dev:     r.Device,
		tracker: r.Tracker,
	}
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// PixelData flattens an image into tightly packed rows and picks the upload
// format: grayscale becomes RG (luma, alpha), fully opaque images RGB and
// everything else RGBA.
func PixelData(img image.Image) ([]byte, TextureFormat) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		pix := make([]byte, 0, w*h*2)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
				pix = append(pix, g.Y, 0xff)
			}
		}
		return pix, FormatRG
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	if !nrgba.Opaque() {
		return nrgba.Pix, FormatRGBA
	}

	pix := make([]byte, 0, w*h*3)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		pix = append(pix, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}
	return pix, FormatRGB
}

// Valid reports whether the texture has device storage.
func (t *Texture) Valid() bool {
	return t != nil && t.handle != 0
}

// Handle returns the device handle, 0 if invalid.
func (t *Texture) Handle() uint32 {
	if t == nil {
		return 0
	}
	return t.handle
}

// Bind makes the texture current on the given unit.
func (t *Texture) Bind(unit int) {
	if !t.Valid() {
		return
	}
	t.Unit = unit
	t.dev.BindTexture(unit, t.handle)
}

// Destroy releases the device storage. Further calls are ignored.
func (t *Texture) Destroy() {
	if !t.Valid() {
		return
	}
	t.dev.DeleteTexture(t.handle)
	t.handle = 0
	t.tracker.release(t.ID)
}
