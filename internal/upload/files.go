// Package upload implements the direct-to-object-storage upload flow:
// fixed-size chunking, presigned-URL negotiation, strictly sequential part
// PUTs with combined progress, thumbnail upload and server-side
// finalization.
package upload

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultPartSize is the fixed video chunk size: 80 MiB.
const DefaultPartSize int64 = 80 * 1024 * 1024

var (
	videoExtensions = map[string]bool{
		".mp4": true,
		".mov": true,
		".avi": true,
		".m4v": true,
	}
	imageTypes = map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
	}
)

// IsAllowedVideo reports whether the filename carries an accepted video
// extension.
func IsAllowedVideo(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// VideoContentType derives the MIME type from the file extension:
// .mov and .m4v map to video/quicktime, everything else to video/mp4.
func VideoContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mov", ".m4v":
		return "video/quicktime"
	default:
		return "video/mp4"
	}
}

// ImageContentType returns the thumbnail MIME type for an accepted image
// extension, or an error for anything else.
func ImageContentType(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := imageTypes[ext]; ok {
		return ct, nil
	}
	return "", fmt.Errorf("unsupported thumbnail type %q (accepted: .jpg, .jpeg, .png)", ext)
}

// Part is one byte range of the video file.
type Part struct {
	Number int   // 1-based part number
	Offset int64 // start of the range
	Size   int64 // exact byte length
}

// PlanParts splits size bytes into contiguous, non-overlapping ranges of
// partSize each, the last part holding the remainder. An empty file plans
// to zero parts, which is an error.
func PlanParts(size, partSize int64) ([]Part, error) {
	if partSize <= 0 {
		return nil, fmt.Errorf("part size must be positive, got %d", partSize)
	}
	if size <= 0 {
		return nil, fmt.Errorf("no video data to upload")
	}

	count := int((size + partSize - 1) / partSize)
	parts := make([]Part, 0, count)
	for i := 0; i < count; i++ {
		offset := int64(i) * partSize
		length := partSize
		if offset+length > size {
			length = size - offset
		}
		parts = append(parts, Part{Number: i + 1, Offset: offset, Size: length})
	}
	return parts, nil
}
