package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want ContentType
		mime string
	}{
		{"/index.htm", HTML, "text/html"},
		{"/index.html", HTML, "text/html"},
		{"/a/photo.jpg", JPEG, "image/jpeg"},
		{"/a/photo.jpeg", JPEG, "image/jpeg"},
		{"/logo.png", PNG, "image/png"},
		{"/anim.gif", GIF, "image/gif"},
		{"/favicon.ico", ICO, "image/x-icon"},
		{"/readme.txt", Unsupported, UnsupportedMIME},
		{"/INDEX.HTML", Unsupported, UnsupportedMIME},
		{"/photo.JPG", Unsupported, UnsupportedMIME},
		{"/html", Unsupported, UnsupportedMIME},
		{"/index.html.bak", Unsupported, UnsupportedMIME},
		{"", Unsupported, UnsupportedMIME},
		{"/", Unsupported, UnsupportedMIME},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Resolve(tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.mime, got.MIME())
			assert.Equal(t, tt.want != Unsupported, got.Supported())
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, PNG, Resolve("/same.png"))
	}
}

func TestContentType_IsText(t *testing.T) {
	assert.True(t, HTML.IsText())

	for _, ct := range []ContentType{JPEG, PNG, GIF, ICO, Unsupported} {
		assert.False(t, ct.IsText(), ct.String())
	}
}

func TestContentType_String(t *testing.T) {
	assert.Equal(t, "html", HTML.String())
	assert.Equal(t, "unsupported", ContentType(42).String())
	assert.Equal(t, UnsupportedMIME, ContentType(42).MIME())
}
