// Package types - пакет со структурами для строки статуса и заголовков ответа
package types

import "github.com/Kostushka/webworker/internal/contenttype"

// Outcome - результат поиска запрошенного файла
type Outcome int

const (
	// Found - файл существует
	Found Outcome = iota
	// NotFound - файла нет или его нельзя открыть
	NotFound
)

func (o Outcome) String() string {
	if o == Found {
		return "found"
	}

	return "not found"
}

// ResponseStatusLine - строка статуса ответа
type ResponseStatusLine struct {
	Version string
	Status  string
	Phrase  string
}

// StatusData - собираемые данные для строки статуса и заголовков ответа
type StatusData struct {
	Outcome     Outcome
	ContentType contenttype.ContentType
}

// ResponseData - сформированные данные для строки статуса и заголовков ответа
type ResponseData struct {
	Status      string
	Phrase      string
	ContentType string
}
