package docview

import (
	"path/filepath"
	"strings"
)

// DocumentKind classifies a document by its backend.
type DocumentKind int

const (
	// KindInvalid means the path did not match any supported kind.
	KindInvalid DocumentKind = iota
	// KindRaster is a decoded pixel image (PNG, JPEG, WebP, ...).
	KindRaster
	// KindVector is a retained vector scene (SVG).
	KindVector
	// KindPortable is a paginated portable document (PDF).
	KindPortable
)

// String implements fmt.Stringer.
func (k DocumentKind) String() string {
	switch k {
	case KindRaster:
		return "Raster"
	case KindVector:
		return "Vector"
	case KindPortable:
		return "Portable"
	default:
		return "Invalid"
	}
}

// vectorExts and portableExts are the fixed extension sets checked before
// falling back to the raster format registry.
var (
	vectorExts   = map[string]bool{"svg": true, "svgz": true}
	portableExts = map[string]bool{"pdf": true}
)

// rasterFormats maps lowercase extensions to format labels for every raster
// codec the module can decode.
var rasterFormats = map[string]string{
	"png":  "PNG",
	"jpg":  "JPEG",
	"jpeg": "JPEG",
	"gif":  "GIF",
	"bmp":  "BMP",
	"tif":  "TIFF",
	"tiff": "TIFF",
	"webp": "WebP",
}

// DetectKind derives the document kind from a file extension. Vector and
// portable extensions are checked first, then the raster format registry.
// An unrecognized extension yields (KindInvalid, false); there is no
// default guess and no backend is constructed.
func DetectKind(path string) (DocumentKind, bool) {
	ext := normalizedExt(path)
	if ext == "" {
		return KindInvalid, false
	}
	switch {
	case vectorExts[ext]:
		return KindVector, true
	case portableExts[ext]:
		return KindPortable, true
	}
	if _, ok := rasterFormats[ext]; ok {
		return KindRaster, true
	}
	return KindInvalid, false
}

// rasterFormatLabel returns the display label for a raster extension.
func rasterFormatLabel(path string) string {
	if label, ok := rasterFormats[normalizedExt(path)]; ok {
		return label
	}
	return "Unknown"
}

func normalizedExt(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
