package docview

import (
	"image"
	"os"
	"path/filepath"

	"github.com/gen2brain/jpegn"
)

// DocumentMeta is a read-only metadata snapshot built on demand, never
// cached. Width and height reflect the current document state; the EXIF
// block is present for raster content only, and only when the file
// carries it.
type DocumentMeta struct {
	FileName      string
	FilePath      string
	Format        string
	Width         int
	Height        int
	FileSizeBytes int64
	ColorType     string
	Exif          *ExifMeta
}

// ExifMeta holds the embedded camera metadata of a raster document.
type ExifMeta struct {
	Make         string
	Model        string
	Software     string
	DateTime     string
	Orientation  int
	GPSLatitude  float64
	GPSLongitude float64
	GPSAltitude  float64
}

// buildMeta fills the fields common to every backend.
func buildMeta(path, format string, width, height int, colorType string) DocumentMeta {
	meta := DocumentMeta{
		FileName:  filepath.Base(path),
		FilePath:  path,
		Format:    format,
		Width:     width,
		Height:    height,
		ColorType: colorType,
	}
	if abs, err := filepath.Abs(path); err == nil {
		meta.FilePath = abs
	}
	if info, err := os.Stat(path); err == nil {
		meta.FileSizeBytes = info.Size()
	}
	return meta
}

// extractExif reads the EXIF block of a JPEG file. Non-JPEG paths and
// files without EXIF yield nil.
func extractExif(path string) *ExifMeta {
	switch normalizedExt(path) {
	case "jpg", "jpeg":
	default:
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	exif, err := jpegn.DecodeExif(f)
	if err != nil {
		return nil
	}
	return &ExifMeta{
		Make:         exif.Make,
		Model:        exif.Model,
		Software:     exif.Software,
		DateTime:     exif.DateTime,
		Orientation:  exif.Orientation,
		GPSLatitude:  exif.GPSLatitude,
		GPSLongitude: exif.GPSLongitude,
		GPSAltitude:  exif.GPSAltitude,
	}
}

// colorTypeLabel names the pixel layout of a decoded image for the
// properties panel.
func colorTypeLabel(img image.Image) string {
	switch img.(type) {
	case *image.Gray:
		return "Grayscale (8-bit)"
	case *image.Gray16:
		return "Grayscale (16-bit)"
	case *image.Paletted:
		return "Indexed (8-bit)"
	case *image.CMYK:
		return "CMYK (8-bit)"
	case *image.YCbCr:
		return "YCbCr (8-bit)"
	case *image.RGBA64, *image.NRGBA64:
		return "RGBA (16-bit)"
	default:
		return "RGBA (8-bit)"
	}
}
