package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/auth"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/batch"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/importer"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/preset"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/report"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/config"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/history"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/live"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/observability"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

type deps struct {
	cfg     *config.Config
	log     logrus.FieldLogger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

func HandleList(mux *mux.Router, d deps) {
	tankH := &tank.Handler{Log: d.log, Metrics: d.metrics, Guardrails: tank.DefaultGuardrails()}
	store := history.NewStore(history.StoreConfig{
		Capacity:    d.cfg.HistorySize,
		IdleTimeout: d.cfg.HistoryIdleTimeout,
		MaxSessions: d.cfg.HistoryMaxSessions,
	}, d.clock, d.metrics)
	sessions := &auth.Sessions{Key: d.cfg.SessionKey, Secure: d.cfg.TLSEnabled(), Clock: d.clock, Log: d.log}

	presetH := &preset.Handler{Tank: tankH}
	batchH := &batch.Handler{Runner: tankH}
	importH := &importer.Handler{Runner: tankH}
	reportH := &report.Handler{Tank: tankH, History: store, Metrics: d.metrics, Log: d.log}
	historyH := &history.Handler{Store: store, Tank: tankH}
	prefsH := &auth.PreferencesHandler{Secure: d.cfg.TLSEnabled()}
	liveH := &live.Handler{Tank: tankH, Window: d.cfg.DebounceWindow, Clock: d.clock, Log: d.log}

	limiter := auth.NewIPRateLimiter(rate.Limit(d.cfg.RateLimitRPS), d.cfg.RateLimitBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/chemicals", tankH.Chemicals).Methods("GET")
	api.HandleFunc("/chemicals/{key}/defaults", tankH.Defaults).Methods("GET")
	api.HandleFunc("/presets", presetH.List).Methods("GET")
	api.HandleFunc("/presets/{id}/calc", presetH.Calc).Methods("POST")

	api.HandleFunc("/tools/tank/validate", tankH.Validate).Methods("POST")
	api.HandleFunc("/tools/tank/calc", tankH.Calc).Methods("POST")
	api.HandleFunc("/tools/tank/batch", batchH.Calc).Methods("POST")
	api.HandleFunc("/tools/tank/import", importH.Import).Methods("POST")
	api.HandleFunc("/tools/tank/report/csv", reportH.CSV).Methods("POST")
	api.HandleFunc("/tools/tank/report/pdf", reportH.PDF).Methods("POST")
	api.HandleFunc("/tools/tank/report/xlsx", reportH.XLSX).Methods("POST")
	api.HandleFunc("/tools/tank/live", liveH.Serve).Methods("GET")

	api.HandleFunc("/preferences", prefsH.Get).Methods("GET")
	api.HandleFunc("/preferences", prefsH.Put).Methods("PUT")

	sessionApi := api.PathPrefix("/history").Subrouter()
	sessionApi.Use(sessions.Middleware)
	sessionApi.HandleFunc("", historyH.List).Methods("GET")
	sessionApi.HandleFunc("", historyH.Save).Methods("POST")
	sessionApi.HandleFunc("", historyH.Clear).Methods("DELETE")
	sessionApi.HandleFunc("/compare.csv", reportH.CompareCSV).Methods("GET")

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}).Methods("GET")
	mux.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := config.LoadEnvFile(".env"); err != nil {
		logrus.WithError(err).Fatal("Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.SessionKeyGenerated {
		logger.Warn("SESSION_KEY is not set; sessions will not survive a restart")
	}

	mux := mux.NewRouter()
	HandleList(mux, deps{
		cfg:     cfg,
		log:     logger,
		metrics: observability.NewMetrics(),
		clock:   clockwork.NewRealClock(),
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: CORS(mux),
	}

	logger.WithFields(logrus.Fields{"addr": cfg.HTTPAddr, "tls": cfg.TLSEnabled()}).Info("starting server")
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("server shutdown failed")
	}
	wg.Wait()
	logger.Info("server stopped")
}
