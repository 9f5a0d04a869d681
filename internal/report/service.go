package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eadsgraphic/vizreport/internal/storage"
	"github.com/eadsgraphic/vizreport/internal/visualization"
	"github.com/eadsgraphic/vizreport/pkg/logger"
	"github.com/eadsgraphic/vizreport/pkg/metrics"
	"github.com/google/uuid"
)

const contentType = "application/pdf"

// Lister is the read side of the visualization service.
type Lister interface {
	List(ctx context.Context, firm string) ([]visualization.Summary, error)
}

// Report is a rendered summary. Key and URL are set only when the PDF was stored.
type Report struct {
	PDF []byte
	Key string
	URL string
}

// Service builds PDF summaries of the visualizations and, when a store is
// configured, keeps them for later download.
type Service struct {
	lister    Lister
	renderer  PdfRenderer
	store     ArtifactStore
	index     Index
	urlExpiry time.Duration
	now       func() time.Time
}

// NewService wires a report builder. store may be nil, in which case reports
// are rendered but not kept.
func NewService(l Lister, r PdfRenderer, store ArtifactStore, urlExpiry time.Duration) *Service {
	return &Service{lister: l, renderer: r, store: store, urlExpiry: urlExpiry, now: time.Now}
}

// WithIndex records metadata of every stored report in ix. Open then only
// serves keys the index knows.
func (s *Service) WithIndex(ix Index) *Service {
	s.index = ix
	return s
}

// Stored reports whether reports are persisted.
func (s *Service) Stored() bool { return s.store != nil }

// Build renders the visualization summary for firm as a PDF.
func (s *Service) Build(ctx context.Context, firm string) (*Report, error) {
	items, err := s.lister.List(ctx, firm)
	if err != nil {
		metrics.ReportsRendered.WithLabelValues("list_error").Inc()
		return nil, fmt.Errorf("list visualizations: %w", err)
	}
	html, err := renderSummary(firm, items, s.now())
	if err != nil {
		metrics.ReportsRendered.WithLabelValues("render_error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	pdf, err := s.renderer.RenderHTML(ctx, html)
	if err != nil {
		metrics.ReportsRendered.WithLabelValues("render_error").Inc()
		if !errors.Is(err, ErrRender) {
			err = fmt.Errorf("%w: %w", ErrRender, err)
		}
		return nil, err
	}
	metrics.ReportsRendered.WithLabelValues("ok").Inc()

	rep := &Report{PDF: pdf}
	if s.store == nil {
		return rep, nil
	}
	id := uuid.NewString()
	key := objectKey(id)
	if err := s.store.UploadFile(ctx, key, bytes.NewReader(pdf), int64(len(pdf)), contentType); err != nil {
		// the caller still gets the PDF
		logger.Errorf("report upload %s failed: %v", key, err)
		return rep, nil
	}
	rep.Key = id
	if s.index != nil {
		meta := &Meta{Key: id, Firm: firm, Items: len(items), Size: int64(len(pdf)), CreatedAt: s.now().UTC()}
		if err := s.index.Save(ctx, meta); err != nil {
			logger.Warnf("report index %s: %v", id, err)
		}
	}
	if u, err := s.store.GetPresignedURL(ctx, key, s.urlExpiry); err != nil {
		logger.Warnf("report presign %s failed: %v", key, err)
	} else {
		rep.URL = u
	}
	logger.Infof("report %s stored (%d bytes)", key, len(pdf))
	return rep, nil
}

// Open streams a previously stored report. Caller closes the reader.
func (s *Service) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if s.store == nil {
		return nil, ErrReportNotFound
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrReportNotFound
	}
	if s.index != nil {
		meta, err := s.index.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		if meta == nil {
			return nil, ErrReportNotFound
		}
	}
	rc, err := s.store.DownloadFile(ctx, objectKey(id))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return rc, nil
}

func objectKey(id string) string {
	return "reports/" + id + ".pdf"
}
