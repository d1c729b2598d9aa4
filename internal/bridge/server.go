package bridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter exposes a Bridge over HTTP using the routes HTTPClient calls.
// Backend error codes are returned with status 200 inside the snapshot.
func NewRouter(b Bridge, logger *log.Logger) chi.Router {
	h := &handler{bridge: b, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	}))

	r.Post("/"+OpNewGame, h.newGame)
	r.Post("/"+OpStartRound, h.op(OpStartRound, b.StartRound))
	r.Post("/"+OpEndRound, h.op(OpEndRound, b.EndRound))
	r.Post("/"+OpInsertToken, h.op(OpInsertToken, b.InsertToken))
	r.Post("/"+OpRemoveToken, h.op(OpRemoveToken, b.RemoveToken))
	r.Post("/"+OpSpin, h.op(OpSpin, b.Spin))
	r.Get("/"+OpSnapshot, h.op(OpSnapshot, b.Snapshot))

	return r
}

type handler struct {
	bridge Bridge
	logger *log.Logger
}

func (h *handler) newGame(w http.ResponseWriter, r *http.Request) {
	var seed int64
	if v := r.URL.Query().Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = n
	}

	snap, err := h.bridge.NewGame(r.Context(), seed)
	h.write(w, OpNewGame, snap, err)
}

func (h *handler) op(name string, fn func(context.Context) (*Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := fn(r.Context())
		h.write(w, name, snap, err)
	}
}

func (h *handler) write(w http.ResponseWriter, op string, snap *Snapshot, err error) {
	var re *RemoteError
	if err != nil && !errors.As(err, &re) {
		h.logger.Error("bridge call failed", "op", op, "error", err)
		http.Error(w, "bridge failed", http.StatusBadGateway)
		return
	}
	if re != nil {
		h.logger.Debug("backend error code", "op", op, "code", re.Code)
	}

	data, err := snap.Encode()
	if err != nil {
		h.logger.Error("encode snapshot", "op", op, "error", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start))
	})
}

// ListenAndServe runs handler on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
