package publicurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		resolver Resolver
		key      string
		want     string
	}{
		{
			name:     "friendly base wins over endpoint",
			resolver: Resolver{FriendlyBase: "https://cdn.example.org", Endpoint: "minio.internal:9000", Bucket: "media"},
			key:      "original/abc_photo.jpg",
			want:     "https://cdn.example.org/media/original/abc_photo.jpg",
		},
		{
			name:     "friendly base keeps single trailing slash",
			resolver: Resolver{FriendlyBase: "https://cdn.example.org/", Bucket: "media"},
			key:      "thumbs/abc_thumb.jpg",
			want:     "https://cdn.example.org/media/thumbs/abc_thumb.jpg",
		},
		{
			name:     "endpoint fallback adds https scheme",
			resolver: Resolver{Endpoint: "minio.internal:9000", Bucket: "media"},
			key:      "original/abc_photo.jpg",
			want:     "https://minio.internal:9000/media/original/abc_photo.jpg",
		},
		{
			name:     "endpoint with scheme is normalized",
			resolver: Resolver{Endpoint: "http://minio.internal:9000", Bucket: "media"},
			key:      "original/abc_photo.jpg",
			want:     "https://minio.internal:9000/media/original/abc_photo.jpg",
		},
		{
			name:     "leading slash in key is stripped",
			resolver: Resolver{FriendlyBase: "https://cdn.example.org", Bucket: "media"},
			key:      "/original/abc_photo.jpg",
			want:     "https://cdn.example.org/media/original/abc_photo.jpg",
		},
		{
			name:     "empty key yields empty url",
			resolver: Resolver{FriendlyBase: "https://cdn.example.org", Bucket: "media"},
			key:      "",
			want:     "",
		},
		{
			name:     "nothing configured yields empty url",
			resolver: Resolver{Bucket: "media"},
			key:      "original/abc_photo.jpg",
			want:     "",
		},
		{
			name:     "blank friendly base falls through to endpoint",
			resolver: Resolver{FriendlyBase: "   ", Endpoint: "minio.internal:9000", Bucket: "media"},
			key:      "original/abc_photo.jpg",
			want:     "https://minio.internal:9000/media/original/abc_photo.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resolver.Resolve(tt.key))
		})
	}
}
