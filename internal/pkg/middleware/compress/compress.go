package compress

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type GzipWriter struct {
	OldW   http.ResponseWriter
	Writer *gzip.Writer
	Log    *zap.SugaredLogger
}

func (w GzipWriter) WriteHeader(statusCode int) {
	w.OldW.Header().Set("Content-Encoding", "gzip")
	w.OldW.WriteHeader(statusCode)
}

func (w GzipWriter) Header() http.Header {
	return w.OldW.Header()
}

func (w GzipWriter) Write(b []byte) (int, error) {
	// the header must carry Content-Encoding before the status line goes out
	if w.OldW.Header().Get("Content-Encoding") == "" {
		w.WriteHeader(http.StatusOK)
	}
	return w.Writer.Write(b)
}

func GzipHandle(next http.Handler, log *zap.SugaredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			io.WriteString(w, err.Error())
			return
		}
		defer gz.Close()
		log.Infof("Encoding response for '%s' with gzip\n", r.RequestURI)
		next.ServeHTTP(GzipWriter{OldW: w, Writer: gz, Log: log}, r)
	})
}
