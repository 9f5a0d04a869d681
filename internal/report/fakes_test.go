package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/eadsgraphic/vizreport/internal/storage"
	"github.com/eadsgraphic/vizreport/internal/visualization"
)

type fakeRenderer struct {
	html string
	err  error
}

func (f *fakeRenderer) RenderHTML(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeLister struct {
	items []visualization.Summary
	err   error
	firm  string
}

func (f *fakeLister) List(_ context.Context, firm string) ([]visualization.Summary, error) {
	f.firm = firm
	return f.items, f.err
}

type memStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (m *memStore) UploadFile(_ context.Context, key string, r io.Reader, size int64, _ string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return errors.New("size mismatch")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	return nil
}

func (m *memStore) DownloadFile(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memStore) GetPresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "http://minio.local/vizreport/" + key, nil
}

func (m *memStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	return out
}

func onlyKey(m *memStore) string {
	k := m.keys()
	if len(k) != 1 {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(k[0], "reports/"), ".pdf")
}

type memIndex struct {
	mu    sync.Mutex
	metas map[string]*Meta
}

func newMemIndex() *memIndex { return &memIndex{metas: map[string]*Meta{}} }

func (m *memIndex) Save(_ context.Context, meta *Meta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *meta
	m.metas[meta.Key] = &cp
	return nil
}

func (m *memIndex) Load(_ context.Context, key string) (*Meta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metas[key], nil
}
