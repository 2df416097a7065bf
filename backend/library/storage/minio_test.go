package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormaliseEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		wantEndpoint string
		wantSecure   bool
		wantErr      bool
	}{
		{"minio:9000", "minio:9000", false, false},
		{"http://minio:9000", "minio:9000", false, false},
		{"https://minio:9000", "minio:9000", true, false},
		{"http://minio:9000/", "minio:9000", false, false},
		{" minio:9000 ", "minio:9000", false, false},
		{"http://minio:9000/foo", "", false, true},
		{"http://", "", false, true},
		{"", "", false, true},
	}

	for _, tt := range tests {
		ep, secure, err := normaliseEndpoint(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		if assert.NoError(t, err, tt.in) {
			assert.Equal(t, tt.wantEndpoint, ep, tt.in)
			assert.Equal(t, tt.wantSecure, secure, tt.in)
		}
	}
}

func TestIsNoSuchKey(t *testing.T) {
	assert.False(t, isNoSuchKey(assert.AnError))
	assert.Nil(t, mapMinioErr(nil))
}
