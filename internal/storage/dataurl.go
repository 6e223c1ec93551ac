package storage

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const maxUploadBytes = 10 << 20 // 10 MB

// DecodeDataURL parses a "data:<mime>;base64,<payload>" string into raw
// bytes and its content type. Rejects non-base64 data URLs and payloads
// over the upload limit.
func DecodeDataURL(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, "", fmt.Errorf("not a data URL")
	}

	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URL")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("only base64 data URLs are supported")
	}

	contentType := strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > maxUploadBytes {
		return nil, "", fmt.Errorf("upload exceeds %d byte limit", maxUploadBytes)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 payload: %w", err)
	}

	return data, contentType, nil
}
