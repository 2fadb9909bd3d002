package model

import (
	"regexp"
	"strings"

	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
)

var imageDataURLRegex = regexp.MustCompile(`^(?i)data:image/(png|jpe?g|webp|gif);base64,[A-Za-z0-9+/=]+$`)

// MaxImageDataURLLength bounds encoded profile images to roughly 2MB of
// decoded image data.
const MaxImageDataURLLength = 2_800_000

// NormalizeImageDataURL validates a profile image data URL. Empty or
// whitespace-only input normalizes to nil.
func NormalizeImageDataURL(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	normalized := strings.TrimSpace(*value)
	if normalized == "" {
		return nil, nil
	}

	if !imageDataURLRegex.MatchString(normalized) {
		return nil, apperr.Validation("Invalid image format. Please upload a valid image file.")
	}
	if len(normalized) > MaxImageDataURLLength {
		return nil, apperr.Validation("Profile image is too large. Please upload a smaller image.")
	}

	return &normalized, nil
}
