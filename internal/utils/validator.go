package utils

import (
	"io"
	"net/http"
	"net/mail"
	"strings"
)

const MinPasswordLength = 6

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the address syntax.
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false, "Please enter a valid email"
	}
	return true, ""
}

// ValidatePassword checks if the password meets the requirements.
// Returns true if valid, otherwise false and an error message.
func ValidatePassword(password string) (bool, string) {
	if len(password) < MinPasswordLength {
		return false, "Password must be at least 6 characters"
	}
	return true, ""
}

// allowedImageTypes maps declared MIME types to the canonical sniffed type.
var allowedImageTypes = map[string]string{
	"image/jpeg": "image/jpeg",
	"image/jpg":  "image/jpeg",
	"image/png":  "image/png",
}

// CanonicalImageType returns the canonical MIME type for a declared one, or "".
func CanonicalImageType(declared string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	return allowedImageTypes[declared]
}

// ValidateImageContent sniffs the first bytes and checks them against the
// declared type. The reader is rewound afterwards.
func ValidateImageContent(reader io.ReadSeeker, declared string) (bool, string) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return false, "Failed to read file content"
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return false, "Failed to rewind file"
	}

	want := CanonicalImageType(declared)
	if want == "" {
		return false, "Unsupported file type: " + declared
	}

	contentType := http.DetectContentType(buffer[:n])
	if contentType != want {
		return false, "File content (" + contentType + ") does not match declared type (" + declared + ")"
	}
	return true, ""
}

// ExtensionFor returns the storage file extension for a canonical MIME type.
func ExtensionFor(contentType string) string {
	if contentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}
