// Package contenttype - пакет для определения типа содержимого по расширению файла
package contenttype

import "strings"

// ContentType - тип содержимого отдаваемого файла
type ContentType int

const (
	// Unsupported - расширение файла неизвестно
	Unsupported ContentType = iota
	// HTML - .htm, .html
	HTML
	// JPEG - .jpg, .jpeg
	JPEG
	// PNG - .png
	PNG
	// GIF - .gif
	GIF
	// ICO - .ico
	ICO
)

// UnsupportedMIME - значение заголовка Content-Type для неизвестного типа
const UnsupportedMIME = "application/octet-stream"

// суффиксы проверяются в этом порядке; регистр учитывается
var suffixes = []struct {
	suffix string
	ct     ContentType
}{
	{".htm", HTML},
	{".html", HTML},
	{".jpg", JPEG},
	{".jpeg", JPEG},
	{".png", PNG},
	{".gif", GIF},
	{".ico", ICO},
}

var mimeTypes = map[ContentType]string{
	HTML: "text/html",
	JPEG: "image/jpeg",
	PNG:  "image/png",
	GIF:  "image/gif",
	ICO:  "image/x-icon",
}

var names = map[ContentType]string{
	Unsupported: "unsupported",
	HTML:        "html",
	JPEG:        "jpeg",
	PNG:         "png",
	GIF:         "gif",
	ICO:         "ico",
}

// Resolve - определить тип содержимого по окончанию пути
func Resolve(path string) ContentType {
	for _, s := range suffixes {
		if strings.HasSuffix(path, s.suffix) {
			return s.ct
		}
	}

	return Unsupported
}

// MIME - строка для заголовка Content-Type
func (c ContentType) MIME() string {
	if m, ok := mimeTypes[c]; ok {
		return m
	}

	return UnsupportedMIME
}

// Supported - известен ли тип содержимого
func (c ContentType) Supported() bool {
	_, ok := mimeTypes[c]
	return ok
}

// IsText - нужно ли подставлять значения в содержимое файла
func (c ContentType) IsText() bool {
	return c == HTML
}

func (c ContentType) String() string {
	if n, ok := names[c]; ok {
		return n
	}

	return names[Unsupported]
}
