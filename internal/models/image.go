package models

import (
	"encoding/base64"
	"path"
	"strings"
)

// DefaultImageContentType is reported when storage metadata has no content type
const DefaultImageContentType = "image/jpeg"

// supportedImageExtensions lists the object key extensions that get labeled
var supportedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
}

// ImageResult is a single image returned by a search
type ImageResult struct {
	ImageName   string `json:"imageName"`
	ImageData   string `json:"imageData"`
	ContentType string `json:"contentType"`
}

// NewImageResult encodes raw object bytes into a search result
func NewImageResult(imageName string, data []byte, contentType string) ImageResult {
	if contentType == "" {
		contentType = DefaultImageContentType
	}
	return ImageResult{
		ImageName:   imageName,
		ImageData:   base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
	}
}

// IsImageKey reports whether an object key has a supported image extension (case-insensitive)
func IsImageKey(key string) bool {
	ext := strings.ToLower(path.Ext(key))
	_, ok := supportedImageExtensions[ext]
	return ok
}
