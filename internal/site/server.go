package site

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"

	"newsdeck/internal/logging"
	"newsdeck/internal/metrics"
)

// NewRouter serves the site at root on fs (GET and HEAD), plus /healthz
// and /metrics
func NewRouter(fs afero.Fs, root string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLog)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", metrics.Handler())

	files := http.FileServer(afero.NewHttpFs(fs).Dir(root))
	static := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Content changes between deploys; clients must revalidate
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, req)
	})
	r.Get("/*", static)
	r.Head("/*", static)

	return r
}

func requestLog(next http.Handler) http.Handler {
	log := logging.NewLogger("site")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.SiteRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
