package importer

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultMaxFileSize is the largest upload admitted, 100 MiB.
const DefaultMaxFileSize int64 = 100 << 20

// AllowedExtensions are admitted by the gate. Only .csv is parsed.
var AllowedExtensions = []string{".csv", ".xlsx", ".xls", ".pdf"}

// Validation is the gate verdict. Error is empty when Valid.
type Validation struct {
	Valid bool
	Error string
}

// ValidateFile checks name and size against the default limits.
func ValidateFile(name string, size int64) Validation {
	return validateFile(name, size, DefaultMaxFileSize)
}

func validateFile(name string, size, maxSize int64) Validation {
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case strings.TrimSpace(name) == "":
		return reject("file name is empty")
	case !slices.Contains(AllowedExtensions, ext):
		return reject(fmt.Sprintf("file type %q is not allowed; use one of %s", ext, strings.Join(AllowedExtensions, ", ")))
	case size < 0:
		return reject("file size is unknown")
	case size > maxSize:
		return reject(fmt.Sprintf("file is %s, the limit is %s", humanSize(size), humanSize(maxSize)))
	}

	return Validation{Valid: true}
}

func reject(msg string) Validation {
	return Validation{Error: msg}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
