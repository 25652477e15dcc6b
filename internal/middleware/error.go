package middleware

import (
	"fmt"
	"html/template"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

var alertTemplate = template.Must(template.New("alert").Parse(
	`<div class="alert alert-error" role="alert"><p>{{.}}</p></div>`,
))

// renderAlert writes a small HTML fragment HTMX can swap into the page
func renderAlert(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = alertTemplate.Execute(w, message)
}

// ErrorHandling recovers from panics, logs them with a stack trace and
// answers with a generic error
func ErrorHandling(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic while serving request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("panic", fmt.Sprint(rec)),
					zap.ByteString("stack", debug.Stack()),
				)

				if IsHTMXRequest(r) {
					renderAlert(w, http.StatusInternalServerError, "操作失敗，請稍後再試")
				} else {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXRequest(r) {
			renderAlert(w, http.StatusNotFound, "找不到頁面")
			return
		}
		http.Error(w, "Not Found", http.StatusNotFound)
	})
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXRequest(r) {
			renderAlert(w, http.StatusMethodNotAllowed, "不支援的操作")
			return
		}
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}
