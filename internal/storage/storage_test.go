package storage

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlcc/internal/config"
)

func TestAttachmentKey(t *testing.T) {
	tests := []struct {
		name    string
		docID   int64
		file    string
		wantExt string
	}{
		{name: "keeps extension lower-cased", docID: 7, file: "Nội quy.PDF", wantExt: ".pdf"},
		{name: "no extension", docID: 7, file: "README", wantExt: ""},
		{name: "windows path", docID: 12, file: `C:\scan\bien-ban.docx`, wantExt: ".docx"},
		{name: "hostile extension dropped", docID: 1, file: "x.a b", wantExt: ""},
		{name: "unsaved document", docID: 0, file: "a.png", wantExt: ".png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := AttachmentKey(tt.docID, tt.file)
			scope := `\d+`
			if tt.docID == 0 {
				scope = "new"
			}
			pattern := `^attachments/` + scope + `/[0-9a-f-]{36}` + regexp.QuoteMeta(tt.wantExt) + `$`
			assert.Regexp(t, pattern, key)
		})
	}

	assert.NotEqual(t, AttachmentKey(1, "a.png"), AttachmentKey(1, "a.png"))
}

func TestNewMinIO_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{name: "endpoint", cfg: config.MinIOConfig{}, want: "endpoint is required"},
		{name: "credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}, want: "credentials are required"},
		{name: "bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}, want: "bucket is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
