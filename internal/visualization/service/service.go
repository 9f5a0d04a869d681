package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eadsgraphic/vizreport/internal/visualization"
	"github.com/eadsgraphic/vizreport/internal/visualization/repository"
	"github.com/eadsgraphic/vizreport/pkg/logger"
	"github.com/eadsgraphic/vizreport/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service is the visualization resource manager: every mutation validates
// the payload before it reaches the repository. It keeps no state of its
// own; each call round-trips to storage.
type Service struct {
	repo      repository.Repository
	validator visualization.Validator
}

// NewService wires a Service from its repository and payload validator.
func NewService(repo repository.Repository, v visualization.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() *Service {
	return NewService(repository.NewMemoryRepo(), visualization.NewSchemaValidator())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller is responsible for creating the collection (and client) and passing it in.
func NewMongoService(col *mongo.Collection) *Service {
	return NewService(repository.NewMongoRepo(col), visualization.NewSchemaValidator())
}

// List returns summaries in insertion order, filtered by firm when non-empty.
func (s *Service) List(ctx context.Context, firm string) (out []visualization.Summary, err error) {
	defer observe("list", time.Now(), &err)
	list, err := s.repo.List(ctx, firm)
	if err != nil {
		return nil, storageErr("list visualizations", err)
	}
	out = make([]visualization.Summary, 0, len(list))
	for _, v := range list {
		out = append(out, v.Summary())
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (v *visualization.Visualization, err error) {
	defer observe("get", time.Now(), &err)
	v, err = s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageErr("get visualization", err)
	}
	return v, nil
}

// Create validates p, assigns a fresh id and persists the record. firm is
// stored as given and is not validated.
func (s *Service) Create(ctx context.Context, p visualization.Payload, firm string) (v *visualization.Visualization, err error) {
	defer observe("create", time.Now(), &err)
	in, err := s.validator.Validate(p)
	if err != nil {
		return nil, err
	}
	v = &visualization.Visualization{Name: in.Name, Description: in.Description, Firm: firm}
	if err := s.repo.Insert(ctx, v); err != nil {
		return nil, storageErr("create visualization", err)
	}
	logger.Debugf("visualization %s created", v.ID)
	return v, nil
}

// Update replaces name and description of an existing record. A missing id
// yields visualization.ErrNotFound and writes nothing.
func (s *Service) Update(ctx context.Context, id string, p visualization.Payload) (err error) {
	defer observe("update", time.Now(), &err)
	in, err := s.validator.Validate(p)
	if err != nil {
		return err
	}
	if err := s.repo.Replace(ctx, id, in); err != nil {
		return storageErr("update visualization", err)
	}
	return nil
}

// Delete removes the record if present; a missing id is not an error.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	defer observe("delete", time.Now(), &err)
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageErr("delete visualization", err)
	}
	return nil
}

func (s *Service) DeleteAll(ctx context.Context) (err error) {
	defer observe("delete_all", time.Now(), &err)
	if err := s.repo.DeleteAll(ctx); err != nil {
		return storageErr("delete all visualizations", err)
	}
	logger.Infof("all visualizations deleted")
	return nil
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// storageErr tags repository failures as storage failures; not-found
// passes through untouched.
func storageErr(op string, err error) error {
	if errors.Is(err, visualization.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, visualization.ErrStorage, err)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, visualization.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, visualization.ErrNotFound):
		return "not_found"
	case errors.Is(err, visualization.ErrStorage):
		return "storage_error"
	}
	return "error"
}

func observe(op string, start time.Time, err *error) {
	o := outcome(*err)
	metrics.VisualizationOps.WithLabelValues(op, o).Inc()
	metrics.VisualizationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if o == "storage_error" {
		logger.Errorf("visualization %s failed: %v", op, *err)
	}
}
