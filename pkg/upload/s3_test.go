package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkgbench/pkgbench/pkg/config"
)

func TestResolveKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		baseName string
		want     string
	}{
		{
			name:     "default prefix",
			prefix:   "",
			baseName: "benchmark_20250601_120000.json",
			want:     "reports/benchmark_20250601_120000.json",
		},
		{
			name:     "custom prefix",
			prefix:   "my-project/benchmarks",
			baseName: "benchmark_20250601_120000.json",
			want:     "my-project/benchmarks/benchmark_20250601_120000.json",
		},
		{
			name:     "trailing slash stripped",
			prefix:   "my-prefix/",
			baseName: "report.json",
			want:     "my-prefix/report.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &s3Uploader{
				cfg: &config.S3UploadConfig{Prefix: tt.prefix},
			}
			got := u.resolveKey(tt.baseName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantPrefix string
	}{
		{
			name:       "json file",
			path:       "results/benchmark_20250601_120000.json",
			wantPrefix: "application/json",
		},
		{
			name:       "no extension",
			path:       "results/Makefile",
			wantPrefix: "application/octet-stream",
		},
		{
			name:       "html file",
			path:       "results/index.html",
			wantPrefix: "text/html",
		},
		{
			name:       "txt file",
			path:       "results/notes.txt",
			wantPrefix: "text/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectContentType(tt.path)
			assert.Contains(t, got, tt.wantPrefix)
		})
	}
}
