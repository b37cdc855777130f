// Command statekit-sandbox serves a fake REST API backed by the in-memory
// resource mock, so clients can be pointed at a local endpoint without a real
// server. It supports YAML seeding, artificial latency and failure injection,
// and streams change events to websocket watchers on /watch.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/Statekit/statekit_sdk_go/internal/seed"
	resourcemock "github.com/Statekit/statekit_sdk_go/pkg/resource/mock"
)

type failConfig struct {
	rate float64
	code int
}

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	seedPath := flag.String("seed", "", "path to YAML dataset used to seed the mock")
	latency := flag.Duration("latency", 0, "artificial latency to inject per request")
	fail := flag.String("fail", "", "failure injection (rate=<float>,code=<httpStatus>)")
	flag.Parse()

	backend := resourcemock.New()
	if *seedPath != "" {
		ds, err := seed.LoadDataset(*seedPath)
		if err != nil {
			log.Fatalf("load seed: %v", err)
		}
		if err := backend.Seed(ds); err != nil {
			log.Fatalf("apply seed: %v", err)
		}
	}

	failCfg, err := parseFailConfig(*fail)
	if err != nil {
		log.Fatalf("parse fail flag: %v", err)
	}

	srv := &sandbox{backend: backend, hub: newHub()}

	r := mux.NewRouter()
	r.HandleFunc("/watch", srv.hub.handleWatch)
	r.HandleFunc("/{collection}", withMiddleware(*latency, failCfg, srv.handleList)).Methods(http.MethodGet)
	r.HandleFunc("/{collection}", withMiddleware(*latency, failCfg, srv.handleCreate)).Methods(http.MethodPost)
	r.HandleFunc("/{collection}/{id}", withMiddleware(*latency, failCfg, srv.handleGet)).Methods(http.MethodGet)
	r.HandleFunc("/{collection}/{id}", withMiddleware(*latency, failCfg, srv.handleUpdate)).Methods(http.MethodPut)

	server := &http.Server{
		Addr:    *addr,
		Handler: r,
	}

	log.Printf("statekit-sandbox listening on %s", *addr)
	fmt.Println()
	fmt.Println("export STATEKIT_RUNTIME_MODE=http")
	host := *addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	fmt.Printf("export STATEKIT_API_URL=http://%s\n", host)
	fmt.Println()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}

func withMiddleware(delay time.Duration, failCfg failConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			time.Sleep(delay)
		}
		if failCfg.rate > 0 && rand.Float64() < failCfg.rate {
			writeError(w, failCfg.code, "injected failure")
			return
		}
		next(w, r)
	}
}

func parseFailConfig(raw string) (failConfig, error) {
	cfg := failConfig{code: http.StatusInternalServerError}
	if strings.TrimSpace(raw) == "" {
		return cfg, nil
	}
	for _, part := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			return cfg, fmt.Errorf("invalid fail segment %q", part)
		}
		switch strings.TrimSpace(key) {
		case "rate":
			rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil || rate < 0 || rate > 1 {
				return cfg, fmt.Errorf("invalid fail rate %q", value)
			}
			cfg.rate = rate
		case "code":
			code, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || code < 400 || code > 599 {
				return cfg, fmt.Errorf("invalid fail code %q", value)
			}
			cfg.code = code
		default:
			return cfg, fmt.Errorf("unknown fail key %q", key)
		}
	}
	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
