// Package log - пакет с логерами сервера
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrInvalidLevel - указан неизвестный уровень логирования
var ErrInvalidLevel = errors.New("неизвестный уровень логирования")

var (
	infoLog  *slog.Logger
	errorLog *slog.Logger
	level    = new(slog.LevelVar)
)

func init() {
	setOutput(os.Stdout, os.Stderr)
}

const permissions = 0644

// ParseLevel - получить уровень логирования по имени: debug, info, error
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}

// New - создаем логеры
func New(logFile, levelName string) error {
	l, err := ParseLevel(levelName)
	if err != nil {
		return err
	}

	level.Set(l)

	// создаем логеры, пишущие в stdout и stderr
	if logFile == "" {
		setOutput(os.Stdout, os.Stderr)

		return nil
	}
	// создаем файл для записи лога
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permissions)
	if err != nil {
		return err
	}
	// создаем логеры, пишущие в файл
	setOutput(f, f)

	return nil
}

// SetOutput - перенаправить оба логера в w (используется в тестах)
func SetOutput(w io.Writer) {
	setOutput(w, w)
}

func setOutput(info, errs io.Writer) {
	opts := &slog.HandlerOptions{Level: level}
	infoLog = slog.New(slog.NewTextHandler(info, opts))
	errorLog = slog.New(slog.NewTextHandler(errs, opts))
}

// Logger - логер с привязанными атрибутами, например id соединения
type Logger struct {
	info *slog.Logger
	errs *slog.Logger
}

// With - получить логер, добавляющий к каждой записи пары ключ-значение
func With(args ...any) *Logger {
	return &Logger{
		info: infoLog.With(args...),
		errs: errorLog.With(args...),
	}
}

// Debugf - пишет отладочный лог
func (l *Logger) Debugf(v ...any) {
	write(l.info, slog.LevelDebug, v...)
}

// Infof - пишет информационный лог
func (l *Logger) Infof(v ...any) {
	write(l.info, slog.LevelInfo, v...)
}

// Errorf - пишет лог ошибки
func (l *Logger) Errorf(v ...any) {
	write(l.errs, slog.LevelError, v...)
}

// Debugf - пишет отладочный лог
func Debugf(v ...any) {
	write(infoLog, slog.LevelDebug, v...)
}

// Infof - пишет информационный лог
func Infof(v ...any) {
	write(infoLog, slog.LevelInfo, v...)
}

// Errorf - пишет лог ошибки
func Errorf(v ...any) {
	write(errorLog, slog.LevelError, v...)
}

func write(l *slog.Logger, lvl slog.Level, v ...any) {
	if len(v) == 0 {
		return
	}
	// строка лога без аргументов
	if len(v) == 1 {
		l.Log(context.Background(), lvl, fmt.Sprint(v[0]))
		return
	}
	// строка лога с аргументами
	if r, ok := v[0].(string); ok {
		l.Log(context.Background(), lvl, fmt.Sprintf(r, v[1:]...))
		return
	}
	errorLog.Error("некорректный формат лога")
}
