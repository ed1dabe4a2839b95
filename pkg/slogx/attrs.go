package slogx

import (
	"fmt"
	"log/slog"
)

const (
	// KeyLoggerName is the key for the logger name attribute.
	KeyLoggerName = "logger"
	// KeyChannel is the key for the event channel id attribute.
	KeyChannel = "channel"
	// KeyProxy is the key for the proxy id attribute.
	KeyProxy = "proxy"
)

// Error returns a slog.Attr representing the provided error.
// The attribute key is "error" and the value is the error's message.
// A nil error is rendered as "<nil>".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Stringer creates a slog.Attr with the provided key and the string representation
// of the given fmt.Stringer value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// LoggerName creates a slog.Attr with the provided logger name.
// The attribute key is defined by KeyLoggerName.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// Channel tags a record with the id of the event channel it concerns.
func Channel(id string) slog.Attr {
	return slog.String(KeyChannel, id)
}

// Proxy tags a record with a proxy id.
func Proxy(id string) slog.Attr {
	return slog.String(KeyProxy, id)
}
