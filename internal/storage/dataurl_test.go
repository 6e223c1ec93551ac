package storage

import (
	"encoding/base64"
	"testing"
)

func TestDecodeDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))

	tests := []struct {
		name     string
		input    string
		wantData string
		wantType string
		wantErr  bool
	}{
		{
			name:     "valid png data URL",
			input:    "data:image/png;base64," + payload,
			wantData: "fake-png-bytes",
			wantType: "image/png",
		},
		{
			name:     "missing mime defaults to octet-stream",
			input:    "data:;base64," + payload,
			wantData: "fake-png-bytes",
			wantType: "application/octet-stream",
		},
		{name: "plain URL is not a data URL", input: "https://cdn.example.com/po.jpg", wantErr: true},
		{name: "no comma separator", input: "data:image/png;base64", wantErr: true},
		{name: "non-base64 encoding rejected", input: "data:text/plain,hello", wantErr: true},
		{name: "invalid base64 payload", input: "data:image/png;base64,!!!not-base64!!!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, contentType, err := DecodeDataURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DecodeDataURL(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeDataURL(%q) error: %v", tt.input, err)
			}
			if string(data) != tt.wantData {
				t.Errorf("data = %q, want %q", data, tt.wantData)
			}
			if contentType != tt.wantType {
				t.Errorf("contentType = %q, want %q", contentType, tt.wantType)
			}
		})
	}
}
