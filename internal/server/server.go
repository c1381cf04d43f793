// Package server exposes the recap API over HTTP: generating a recap for a
// period, fetching a stored document and importing externally built ones.
package server

import (
	"context"
	"errors"
	"net/http"
	"path"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/devrecap/internal/model"
	"github.com/maxbolgarin/devrecap/internal/recap"
	"github.com/maxbolgarin/devrecap/internal/schema"
	"github.com/maxbolgarin/devrecap/internal/storage"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server handles recap API requests
type Server struct {
	service *recap.Service
	config  Config
	log     logze.Logger
	server  *servex.Server
}

// generateRequest is the body of a recap generation request
type generateRequest struct {
	Project string      `json:"project"`
	From    *model.Date `json:"from,omitempty"`
	To      *model.Date `json:"to,omitempty"`
}

// generateResponse carries the stored identifier together with the document
type generateResponse struct {
	ID      string         `json:"id"`
	Summary *model.Summary `json:"summary"`
}

// importResponse carries the identifier of an imported document
type importResponse struct {
	ID string `json:"id"`
}

// validationResponse lists schema violations of a rejected upload
type validationResponse struct {
	Errors []model.FieldError `json:"errors"`
}

// New creates a new recap API server
func New(cfg Config, service *recap.Service) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	log := logze.With("module", "server")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithDefaultMetrics(),
		servex.WithCertificate(cfg.Certificate),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	s := &Server{
		service: service,
		config:  cfg,
		log:     log,
		server:  server,
	}

	server.HandleFunc(cfg.BasePath+"/recaps/generate", s.handleGenerate)
	server.HandleFunc(cfg.BasePath+"/recaps", s.handleImport)
	server.HandleFunc(cfg.BasePath+"/recaps/{id}", s.handleGet)

	return s, nil
}

// Start starts the API server
func (s *Server) Start(ctx context.Context) error {
	if s.config.EnableHTTPS {
		return s.server.StartHTTPS(s.config.Address)
	}
	return s.server.StartHTTP(s.config.Address)
}

// Stop stops the API server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleGenerate runs the full pipeline for a project and period
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodPost {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	body, err := ctx.Read()
	if err != nil {
		ctx.BadRequest(err, "failed to read request body")
		return
	}

	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		ctx.BadRequest(err, "failed to parse request body")
		return
	}
	if req.Project == "" {
		ctx.BadRequest(errm.New("project is required"), "project is required")
		return
	}

	from, to := dateBound(req.From), dateUpperBound(req.To)
	if from != nil && to != nil && to.Before(*from) {
		ctx.BadRequest(errm.New("to is before from"), "invalid period")
		return
	}

	s.log.Info("generating recap", "project", req.Project)

	id, summary, err := s.service.Generate(ctx, req.Project, from, to)
	if err != nil {
		ctx.InternalServerError(err, "failed to generate recap")
		return
	}

	ctx.Response(http.StatusCreated, generateResponse{ID: id, Summary: summary})
}

// handleGet returns a stored document by identifier
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodGet {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	id := path.Base(r.URL.Path)
	if id == "" || id == "recaps" || id == "generate" {
		ctx.BadRequest(errm.New("id is required"), "id is required")
		return
	}

	summary, err := s.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			ctx.NotFound(err, "summary not found")
			return
		}
		ctx.InternalServerError(err, "failed to load summary")
		return
	}

	ctx.Response(http.StatusOK, summary)
}

// handleImport validates and stores an externally built document
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)

	if r.Method != http.MethodPost {
		ctx.Response(http.StatusMethodNotAllowed)
		return
	}

	body, err := ctx.Read()
	if err != nil {
		ctx.BadRequest(err, "failed to read request body")
		return
	}

	fieldErrors, err := schema.Validate(body)
	if err != nil {
		ctx.BadRequest(err, "failed to validate document")
		return
	}
	if len(fieldErrors) > 0 {
		s.log.Debug("rejected upload", "violations", len(fieldErrors))
		ctx.Response(http.StatusBadRequest, validationResponse{Errors: fieldErrors})
		return
	}

	var summary model.Summary
	if err := json.Unmarshal(body, &summary); err != nil {
		ctx.BadRequest(err, "failed to parse document")
		return
	}

	id, err := s.service.Import(ctx, &summary)
	if err != nil {
		ctx.InternalServerError(err, "failed to import summary")
		return
	}

	ctx.Response(http.StatusCreated, importResponse{ID: id})
}

// dateBound converts an optional calendar date to a time bound
func dateBound(d *model.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// dateUpperBound converts an optional end calendar date to an inclusive
// bound: the whole end day belongs to the period.
func dateUpperBound(d *model.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.EndOfDay()
	return &t
}
