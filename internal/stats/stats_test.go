package stats

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kostushka/webworker/internal/connection"
	"github.com/Kostushka/webworker/internal/connection/types"
	"github.com/Kostushka/webworker/internal/contenttype"
	"github.com/Kostushka/webworker/internal/file"
	"github.com/Kostushka/webworker/internal/querydata"
)

func request(t *testing.T, line string) *querydata.Request {
	t.Helper()

	q, err := querydata.ParseLine(line)
	require.NoError(t, err)

	return q
}

func TestStats_Done(t *testing.T) {
	s := New()

	for i := 0; i < 6; i++ {
		s.Begin()
	}

	s.Done(connection.Summary{
		Request: request(t, "GET /a.html HTTP/1.1"), Outcome: types.Found, ContentType: contenttype.HTML, BodyBytes: 10,
	}, nil)
	s.Done(connection.Summary{
		Request: request(t, "GET /b.png HTTP/1.1"), Outcome: types.NotFound, ContentType: contenttype.PNG, BodyBytes: 1,
	}, nil)
	s.Done(connection.Summary{
		Request: request(t, "GET /c.txt HTTP/1.1"), Outcome: types.Found, ContentType: contenttype.Unsupported, BodyBytes: 4,
	}, fmt.Errorf("%w: broken pipe", connection.ErrTransportFault))
	s.Done(connection.Summary{}, fmt.Errorf("bad: %w", querydata.ErrMalformedRequest))
	s.Done(connection.Summary{}, fmt.Errorf("%w: eof", connection.ErrTransportFault))
	// сбой чтения файла посреди тела - не ошибка передачи данных
	s.Done(connection.Summary{
		Request: request(t, "GET /d.jpg HTTP/1.1"), Outcome: types.Found, ContentType: contenttype.JPEG, BodyBytes: 3,
	}, fmt.Errorf("не полностью: %w: input/output error", file.ErrRead))

	snap := s.Snapshot()
	assert.Equal(t, int64(0), snap.Active)
	assert.Equal(t, int64(6), snap.Total)
	assert.Equal(t, int64(3), snap.Found)
	assert.Equal(t, int64(1), snap.NotFound)
	assert.Equal(t, int64(1), snap.Malformed)
	assert.Equal(t, int64(2), snap.Faults)
	assert.Equal(t, int64(1), snap.ReadErrors)
	assert.Equal(t, int64(1), snap.Unsupported)
	assert.Equal(t, int64(18), snap.BodyBytes)
	assert.GreaterOrEqual(t, snap.Uptime, 0.0)
}

func TestStats_Concurrent(t *testing.T) {
	s := New()
	q := request(t, "GET /a.gif HTTP/1.1")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Begin()
			s.Done(connection.Summary{Request: q, Outcome: types.Found, ContentType: contenttype.GIF, BodyBytes: 2}, nil)
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, int64(100), snap.Total)
	assert.Equal(t, int64(100), snap.Found)
	assert.Equal(t, int64(200), snap.BodyBytes)
	assert.Equal(t, int64(0), snap.Active)
}
