package validation

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// MinImagePayloadLength rejects payloads too short to be an encoded image
const MinImagePayloadLength = 100

// AllowedImageTypes lists the accepted upload MIME types
var AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

var dataURLPrefix = regexp.MustCompile(`^data:(image/[\w.+-]+);base64,`)

// ImageValidator checks uploaded note photos
type ImageValidator struct {
	validator *Validator
}

// NewImageValidator creates a new image validator
func NewImageValidator(v *Validator) *ImageValidator {
	if v == nil {
		v = NewValidator()
	}
	return &ImageValidator{validator: v}
}

// ValidatePayload checks a base64 payload, with or without a data URL prefix
func (iv *ImageValidator) ValidatePayload(image string) error {
	validationError := NewValidationError()
	if !iv.validator.IsNonEmptyString(image) {
		validationError.AddRequiredError("image")
		return validationError
	}
	if len(image) < MinImagePayloadLength {
		validationError.AddInvalidLengthError("image", len(image), MinImagePayloadLength, 0)
		return validationError
	}

	mimeType, data := SplitDataURL(image)
	if mimeType != "" {
		if err := iv.ValidateFile(mimeType, int64(base64.StdEncoding.DecodedLen(len(data)))); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFile checks the MIME type and byte size of an upload
func (iv *ImageValidator) ValidateFile(mimeType string, size int64) error {
	validationError := NewValidationError()

	if !isAllowedImageType(mimeType) {
		validationError.AddInvalidValueError("image", mimeType, "please upload a valid image file (JPEG, PNG, or WebP)")
	}
	if size > iv.validator.maxImageBytes() {
		validationError.AddInvalidRangeError("image", size, "must be less than 10MB")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// SplitDataURL separates a data URL into its MIME type and base64 body.
// Bare base64 returns an empty MIME type.
func SplitDataURL(s string) (mimeType, data string) {
	m := dataURLPrefix.FindStringSubmatch(s)
	if m == nil {
		return "", s
	}
	return strings.ToLower(m[1]), s[len(m[0]):]
}

func isAllowedImageType(mimeType string) bool {
	mimeType = strings.ToLower(mimeType)
	for _, t := range AllowedImageTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}
