package extract

import (
	"encoding/base64"

	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
)

// EncodeImage returns the unwrapped standard base64 form of the image bytes.
// No resizing or re-encoding happens here.
func EncodeImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", common.EmptyFileError()
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
