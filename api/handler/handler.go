package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"argocd-status/api/metrics"
	"argocd-status/api/model"
)

// AppFetcher returns every raw Application in the cluster.
type AppFetcher interface {
	FetchAll(ctx context.Context) ([]unstructured.Unstructured, error)
}

type Handler struct {
	fetcher AppFetcher
	mapper  *model.Mapper
	metrics *metrics.Metrics
	log     logrus.FieldLogger
	timeout time.Duration
}

func New(fetcher AppFetcher, mapper *model.Mapper, m *metrics.Metrics, log logrus.FieldLogger, timeout time.Duration) *Handler {
	return &Handler{
		fetcher: fetcher,
		mapper:  mapper,
		metrics: m,
		log:     log,
		timeout: timeout,
	}
}

// RequestLogger logs one entry per request through log.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.WithFields(logrus.Fields{
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     ww.Status(),
					"bytes":      ww.BytesWritten(),
					"duration":   time.Since(start).String(),
					"request_id": middleware.GetReqID(r.Context()),
				}).Info("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
