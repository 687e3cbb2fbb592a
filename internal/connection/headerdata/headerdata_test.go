package headerdata

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kostushka/webworker/internal/connection/types"
	"github.com/Kostushka/webworker/internal/contenttype"
)

var fixedNow = func() time.Time {
	return time.Date(2026, time.October, 19, 15, 4, 5, 0, time.FixedZone("MSK", 3*60*60))
}

func TestWriteResponseHeader_Found(t *testing.T) {
	h := New("test-server", fixedNow)
	h.SetResponseData(&types.StatusData{Outcome: types.Found, ContentType: contenttype.HTML})

	var buf bytes.Buffer
	require.NoError(t, h.WriteResponseHeader(&buf))

	want := "HTTP/1.1 200 OK\n" +
		"Date: Mon, 19 Oct 2026 12:04:05 GMT\n" +
		"Server: test-server\n" +
		"Connection: close\n" +
		"Content-Type: text/html\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteResponseHeader_NotFound(t *testing.T) {
	h := New("test-server", fixedNow)
	h.SetResponseData(&types.StatusData{Outcome: types.NotFound, ContentType: contenttype.ICO})

	var buf bytes.Buffer
	require.NoError(t, h.WriteResponseHeader(&buf))

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "HTTP/1.1 404 Not Found", lines[0])
	assert.Equal(t, "Content-Type: image/x-icon", lines[4])
	assert.Equal(t, "", lines[5])
}

func TestWriteResponseHeader_HeaderOrder(t *testing.T) {
	h := New("", nil)
	h.SetResponseData(&types.StatusData{Outcome: types.Found, ContentType: contenttype.Unsupported})

	var buf bytes.Buffer
	require.NoError(t, h.WriteResponseHeader(&buf))

	lines := strings.Split(buf.String(), "\n")
	prefixes := []string{"HTTP/1.1 ", "Date: ", "Server: ", "Connection: close", "Content-Type: application/octet-stream"}
	for i, p := range prefixes {
		assert.True(t, strings.HasPrefix(lines[i], p), "строка %d: %q", i, lines[i])
	}

	date := strings.TrimPrefix(lines[1], "Date: ")
	_, err := http.ParseTime(date)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(date, " GMT"))
}

type failingWriter struct{}

var errBrokenPipe = errors.New("broken pipe")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errBrokenPipe
}

func TestWriteResponseHeader_WriteError(t *testing.T) {
	h := New("test-server", fixedNow)
	h.SetResponseData(&types.StatusData{Outcome: types.Found, ContentType: contenttype.PNG})

	err := h.WriteResponseHeader(failingWriter{})
	assert.ErrorIs(t, err, errBrokenPipe)
}

func TestSetResponseData(t *testing.T) {
	h := New("test-server", fixedNow)
	h.SetResponseData(&types.StatusData{Outcome: types.NotFound, ContentType: contenttype.GIF})

	rd := h.ResponseData()
	assert.Equal(t, "404", rd.Status)
	assert.Equal(t, "Not Found", rd.Phrase)
	assert.Equal(t, "image/gif", rd.ContentType)
}
