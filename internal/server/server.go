// Package server exposes the calculator, converter and reference data over
// HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/rshade/pumpcarbon/internal/carbon"
	"github.com/rshade/pumpcarbon/internal/report"
	"github.com/rshade/pumpcarbon/internal/scenario"
	"github.com/rshade/pumpcarbon/internal/units"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second

	// asymmetryTolerance flags reverse pairs that are not exact reciprocals.
	asymmetryTolerance = 1e-9
)

// Options configures a Server.
type Options struct {
	Converter  *units.Converter
	Calculator carbon.PumpEstimator

	// StrictUnits is the default for requests that do not set ?strict.
	StrictUnits bool
}

// Server serves the HTTP API. Each Server owns its metrics registry.
type Server struct {
	converter  *units.Converter
	calculator carbon.PumpEstimator
	strict     bool
	logger     zerolog.Logger
	registry   *prometheus.Registry
	metrics    *Metrics
	mux        *http.ServeMux
}

// New creates a Server and registers its routes.
func New(opts Options, logger zerolog.Logger) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		converter:  opts.Converter,
		calculator: opts.Calculator,
		strict:     opts.StrictUnits,
		logger:     logger,
		registry:   reg,
		metrics:    NewMetrics(reg),
		mux:        http.NewServeMux(),
	}

	s.handle("POST /api/v1/calculate", s.handleCalculate)
	s.handle("POST /api/v1/convert", s.handleConvert)
	s.handle("GET /api/v1/units", s.handleUnits)
	s.handle("GET /api/v1/reference", s.handleReference)
	s.handle("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", s.instrument("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP))

	return s
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.Handle(pattern, s.instrument(pattern, h))
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Registry returns the server's metrics registry.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, allowing in-flight requests up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Str("addr", addr).Msg("Starting pumpcarbon server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving on %s: %w", addr, err)
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.logger.Info().Msg("Server stopped")
	return nil
}

type errorBody struct {
	Error     string              `json:"error" msgpack:"error"`
	RequestID string              `json:"request_id" msgpack:"request_id"`
	Fields    []carbon.FieldError `json:"fields,omitempty" msgpack:"fields,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	body := errorBody{
		Error:     err.Error(),
		RequestID: w.Header().Get(RequestIDHeader),
	}
	var verrs carbon.ValidationErrors
	if errors.As(err, &verrs) {
		body.Fields = encodableFields(verrs)
	}

	requestLogger(r).Warn().Err(err).Int("status", status).Msg("request rejected")
	s.write(w, r, status, body)
}

// write encodes v as MessagePack when the client accepts it, JSON otherwise.
func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	format := report.FormatJSON
	if strings.Contains(r.Header.Get("Accept"), "msgpack") {
		format = report.FormatMsgpack
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, v); err != nil {
		requestLogger(r).Error().Err(err).Int("status", status).Msg("Failed to encode response")
		w.Header().Set("Content-Type", report.FormatJSON.ContentType())
		w.WriteHeader(http.StatusInternalServerError)
		fallback, _ := json.Marshal(errorBody{
			Error:     "encoding response: " + err.Error(),
			RequestID: w.Header().Get(RequestIDHeader),
		})
		_, _ = w.Write(fallback)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		requestLogger(r).Error().Err(err).Msg("Failed to write response")
	}
}

// encodableFields zeroes NaN and ±Inf values, which JSON cannot carry. The
// offending value is still named in the error message.
func encodableFields(verrs carbon.ValidationErrors) []carbon.FieldError {
	out := make([]carbon.FieldError, len(verrs))
	for i, fe := range verrs {
		if math.IsNaN(fe.Value) || math.IsInf(fe.Value, 0) {
			fe.Value = 0
		}
		out[i] = fe
	}
	return out
}

func isMsgpack(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && (mt == "application/msgpack" || mt == "application/x-msgpack")
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return data, nil
}

// strictParam resolves ?strict=, falling back to the server default.
func (s *Server) strictParam(r *http.Request) (bool, error) {
	v := r.URL.Query().Get("strict")
	if v == "" {
		return s.strict, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("strict: %w", err)
	}
	return b, nil
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	strict, err := s.strictParam(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var doc scenario.Document
	if isMsgpack(r) {
		if err := msgpack.Unmarshal(data, &doc); err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("parsing scenario MessagePack: %w", err))
			return
		}
	} else if doc, err = scenario.DecodeJSON(data); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	builder := scenario.NewBuilder(s.converter, *requestLogger(r),
		scenario.WithStrictUnits(strict),
		scenario.WithConversionHook(func(res units.Result) {
			s.metrics.Conversions.WithLabelValues(string(res.Status)).Inc()
		}),
	)
	built, err := builder.Build(doc)
	if err != nil {
		s.metrics.ValidationFailures.Inc()
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	res, err := s.calculator.Calculate(built.Params)
	if err != nil {
		s.metrics.ValidationFailures.Inc()
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.metrics.Calculations.WithLabelValues(string(built.Variant)).Inc()
	requestLogger(r).Info().
		Str("variant", string(built.Variant)).
		Float64("total_co2_t_day", res.TotalCO2).
		Int("notices", len(built.Notices)).
		Msg("calculation complete")

	s.write(w, r, http.StatusOK, report.New(built, res))
}

type convertRequest struct {
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Strict bool    `json:"strict"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var req convertRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("parsing convert request: %w", err))
		return
	}

	res := s.converter.Resolve(req.Value, req.From, req.To)
	s.metrics.Conversions.WithLabelValues(string(res.Status)).Inc()

	if req.Strict && !res.Converted() {
		_, err := s.converter.ConvertStrict(req.Value, req.From, req.To)
		s.writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	s.write(w, r, http.StatusOK, res)
}

type unitsResponse struct {
	Pairs       []units.Pair      `json:"pairs" msgpack:"pairs"`
	Asymmetries []units.Asymmetry `json:"asymmetries" msgpack:"asymmetries"`
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	table := s.converter.Table()
	s.write(w, r, http.StatusOK, unitsResponse{
		Pairs:       table.Pairs(),
		Asymmetries: table.Asymmetries(asymmetryTolerance),
	})
}

type referenceResponse struct {
	scenario.ReferencePage `msgpack:",inline"`

	Distributions map[scenario.Distribution][]scenario.Field `json:"distributions,omitempty" msgpack:"distributions,omitempty"`
}

func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	variant, err := scenario.ParseVariant(r.URL.Query().Get("pump"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	resp := referenceResponse{ReferencePage: scenario.Reference(variant)}
	if variant == carbon.VariantNormal {
		resp.Distributions = make(map[scenario.Distribution][]scenario.Field, len(scenario.Distributions))
		for _, d := range scenario.Distributions {
			resp.Distributions[d] = scenario.DetailFields(d)
		}
	}
	s.write(w, r, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
