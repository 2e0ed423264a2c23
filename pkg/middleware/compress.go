package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// Compress gzips responses for clients that accept it.
func Compress() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return handlers.CompressHandler(next)
	}
}
