// Package headerdata - пакет для формирования строки статуса и заголовков ответа
package headerdata

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Kostushka/webworker/internal/connection/consts"
	"github.com/Kostushka/webworker/internal/connection/types"
)

// HeaderData - структура с сформированными данными для строки статуса и заголовков ответа
type HeaderData struct {
	responseData *types.ResponseData
	serverName   string
	now          func() time.Time
}

// New - создать структуру для записи заголовков; now может быть nil
func New(serverName string, now func() time.Time) *HeaderData {
	if serverName == "" {
		serverName = consts.DefaultServerName
	}

	if now == nil {
		now = time.Now
	}

	return &HeaderData{
		serverName: serverName,
		now:        now,
	}
}

// ResponseData - сформированные данные ответа
func (h *HeaderData) ResponseData() *types.ResponseData {
	return h.responseData
}

// SetResponseData - формируем данные заголовков для ответа клиенту
func (h *HeaderData) SetResponseData(data *types.StatusData) {
	code := consts.StatusOK
	if data.Outcome == types.NotFound {
		code = consts.StatusNotFound
	}

	// заполняем структуру данных для формирования ответа клиенту
	h.responseData = &types.ResponseData{
		Status:      strconv.Itoa(code),
		Phrase:      http.StatusText(code),
		ContentType: data.ContentType.MIME(),
	}
}

// WriteResponseHeader - формируем и отправляем клиенту заголовки ответа
func (h *HeaderData) WriteResponseHeader(w io.Writer) error {
	respStatus := types.ResponseStatusLine{
		Version: consts.Protocol,
		Status:  h.responseData.Status,
		Phrase:  h.responseData.Phrase,
	}

	var b strings.Builder

	// порядок заголовков фиксирован
	b.WriteString(respStatus.Version + " " + respStatus.Status + " " + respStatus.Phrase + "\n")
	b.WriteString("Date: " + h.now().UTC().Format(http.TimeFormat) + "\n")
	b.WriteString("Server: " + h.serverName + "\n")
	b.WriteString("Connection: close\n")
	b.WriteString("Content-Type: " + h.responseData.ContentType + "\n")
	// заголовки заканчиваются пустой строкой
	b.WriteString("\n")

	// пишем заголовки в клиентский сокет одной записью
	_, err := io.WriteString(w, b.String())

	return err
}
