// Package consts - пакет с константами
package consts

const (
	// StatusOK - статус ответа: хорошо
	StatusOK = 200
	// StatusNotFound - статус ответа: не найдено
	StatusNotFound = 404
	// Protocol - версия протокола в строке статуса
	Protocol = "HTTP/1.1"
	// DefaultServerName - значение заголовка Server по умолчанию
	DefaultServerName = "webworker/1.0"
	// BufSize - дефолтный размер буфера
	BufSize = 32 * 1024
)
