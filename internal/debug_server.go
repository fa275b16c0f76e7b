package internal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/infrastructure/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/protobuf/encoding/protojson"
)

type InspectRow struct {
	Key      string          `json:"key"`
	Type     string          `json:"type"`
	Document json.RawMessage `json:"document"`
}

// NewDebugRouter serves prometheus metrics, a liveness probe and a read-only
// dump of stored documents filtered by key prefix.
func NewDebugRouter(store storage.IDocumentStore, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/inspect", func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = domain.KindChatroom.Prefix()
		}
		rows, err := inspect(store, prefix)
		if err != nil {
			log.Error("Inspect failed", "prefix", prefix, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rows)
	})
	return r
}

func inspect(store storage.IDocumentStore, prefix string) ([]InspectRow, error) {
	docs, err := store.Query(storage.Query{Prefix: prefix})
	if err != nil {
		return nil, err
	}
	rows := make([]InspectRow, 0, len(docs))
	for _, doc := range docs {
		raw, err := protojson.Marshal(doc.Body)
		if err != nil {
			return nil, err
		}
		typ := "RAW"
		if v, ok := doc.Field(codec.FieldType); ok {
			typ = v.GetStringValue()
		}
		rows = append(rows, InspectRow{Key: doc.Key, Type: typ, Document: raw})
	}
	return rows, nil
}

// DebugServer runs the debug router until its context ends.
type DebugServer struct {
	server          *http.Server
	shutdownTimeout time.Duration
	log             *slog.Logger
}

func NewDebugServer(addr string, handler http.Handler, shutdownTimeout time.Duration, log *slog.Logger) *DebugServer {
	return &DebugServer{
		server:          &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second},
		shutdownTimeout: shutdownTimeout,
		log:             log,
	}
}

func (d *DebugServer) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		d.log.Info("Debug server listening", "addr", d.server.Addr)
		if err := d.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), d.shutdownTimeout)
		defer cancel()
		return d.server.Shutdown(shutdownCtx)
	}
}
