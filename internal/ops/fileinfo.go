package ops

import (
	"github.com/gabriel-vasile/mimetype"
)

// DetectType sniffs the content type of the file at path. Detection failure
// is not an error; file-info reporting treats the type as best-effort and
// returns an empty string.
func DetectType(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return mt.String()
}
