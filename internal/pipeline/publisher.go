package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/dirgest/internal/extract"
	"github.com/dgallion1/dirgest/internal/pathstore"
)

// ErrDirectoryNotFound is returned when a published directory does not exist.
var ErrDirectoryNotFound = errors.New("directory not found")

const (
	directoriesRoot = "directories"
	sourcePrefix    = "dirgest:"
)

// Store is the subset of the pathstore API the publisher needs.
type Store interface {
	PutNode(ctx context.Context, key string, req pathstore.NodeRequest) error
	GetNode(ctx context.Context, key string) (*pathstore.NodeResponse, error)
	DeleteNode(ctx context.Context, key string, recursive bool) error
	ListChildren(ctx context.Context, key string, limit int) ([]pathstore.ListChildrenResponse, error)
	PutLink(ctx context.Context, req pathstore.LinkRequest) error
}

// Publisher writes extraction results to a pathstore service:
//
//	directories/{docID}/meta
//	directories/{docID}/employees/{id}
//	directories/{docID}/districts/{district}
//	directories/by_hash/{hash}/{docID}
//
// Each employee node is linked to its district node.
type Publisher struct {
	store       Store
	log         *zap.Logger
	concurrency int
}

// NewPublisher returns a publisher issuing at most concurrency writes at once.
func NewPublisher(store Store, log *zap.Logger, concurrency int) *Publisher {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Publisher{store: store, log: log, concurrency: concurrency}
}

func docKey(docID string) string { return directoriesRoot + "/" + docID }

func hashKey(hash string) string { return directoriesRoot + "/by_hash/" + hash }

// FindDuplicate returns the id of an already published document with the
// same content hash.
func (p *Publisher) FindDuplicate(ctx context.Context, hash string) (string, bool, error) {
	children, err := p.store.ListChildren(ctx, hashKey(hash), 1)
	if err != nil {
		return "", false, err
	}
	if len(children) == 0 {
		return "", false, nil
	}
	return pathstore.LastSegment(children[0].Key), true, nil
}

// PublishResult summarizes one publish call.
type PublishResult struct {
	Stored int
	Errors []error
}

// Publish writes every record, the district index, the document meta and
// the hash index. Record failures are collected rather than aborting the
// rest.
func (p *Publisher) Publish(ctx context.Context, snap JobSnapshot, res *extract.Result) PublishResult {
	source := sourcePrefix + snap.DocID
	prefix := docKey(snap.DocID)

	var (
		mu  sync.Mutex
		out PublishResult
	)
	fail := func(err error) {
		mu.Lock()
		out.Errors = append(out.Errors, err)
		mu.Unlock()
	}

	districtKeys := make(map[string]string, len(res.Diagnostics.Stats.ByDistrict))
	for _, t := range res.Diagnostics.Stats.ByDistrict {
		key := prefix + "/districts/" + pathstore.Segment(t.Label)
		districtKeys[t.Label] = key
		err := p.store.PutNode(ctx, key, pathstore.NodeRequest{
			Value:  map[string]any{"district": t.Label, "employees": t.Count},
			Source: source,
		})
		if err != nil {
			fail(fmt.Errorf("district %s: %w", t.Label, err))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, emp := range res.Employees {
		g.Go(func() error {
			if err := emp.Validate(); err != nil {
				fail(fmt.Errorf("employee %s: %w", emp.ID, err))
				return nil
			}
			key := prefix + "/employees/" + emp.ID
			if err := p.store.PutNode(gctx, key, pathstore.NodeRequest{Value: emp, Source: source}); err != nil {
				fail(fmt.Errorf("employee %s: %w", emp.ID, err))
				return nil
			}
			mu.Lock()
			out.Stored++
			mu.Unlock()

			if to, ok := districtKeys[emp.District]; ok {
				err := p.store.PutLink(gctx, pathstore.LinkRequest{From: key, To: to, Weight: 1, Summary: "located in"})
				if err != nil {
					p.log.Warn("district link failed", zap.String("employee", emp.ID), zap.Error(err))
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	err := p.store.PutNode(ctx, prefix+"/meta", pathstore.NodeRequest{
		Value: map[string]any{
			"doc_id":       snap.DocID,
			"filename":     snap.Filename,
			"title":        snap.Title,
			"content_hash": snap.ContentHash,
			"records":      len(res.Employees),
			"stored":       out.Stored,
			"diagnostics":  res.Diagnostics,
			"created_at":   snap.CreatedAt.Format(time.RFC3339),
		},
		Source: source,
	})
	if err != nil {
		fail(fmt.Errorf("meta: %w", err))
	}

	if snap.ContentHash != "" {
		err := p.store.PutNode(ctx, hashKey(snap.ContentHash)+"/"+snap.DocID, pathstore.NodeRequest{
			Value: map[string]any{
				"filename":   snap.Filename,
				"created_at": snap.CreatedAt.Format(time.RFC3339),
			},
			Source: source,
		})
		if err != nil {
			p.log.Error("hash index write failed", zap.String("doc_id", snap.DocID), zap.Error(err))
		}
	}
	return out
}

// Directory is a published document as listed by List.
type Directory struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// List returns the meta nodes of published directories.
func (p *Publisher) List(ctx context.Context, limit int) ([]Directory, error) {
	children, err := p.store.ListChildren(ctx, directoriesRoot, limit)
	if err != nil {
		return nil, err
	}
	docs := make([]Directory, 0)
	for _, c := range children {
		if pathstore.LastSegment(c.Key) == "meta" {
			docs = append(docs, Directory{Key: c.Key, Value: c.Value})
		}
	}
	return docs, nil
}

// Delete removes a published directory and its hash index entry.
func (p *Publisher) Delete(ctx context.Context, docID string) error {
	prefix := docKey(docID)
	meta, err := p.store.GetNode(ctx, prefix+"/meta")
	if err != nil {
		return err
	}
	if meta == nil {
		return ErrDirectoryNotFound
	}

	if err := p.store.DeleteNode(ctx, prefix, true); err != nil {
		return err
	}

	if m, ok := meta.Value.(map[string]any); ok {
		if hash, _ := m["content_hash"].(string); strings.TrimSpace(hash) != "" {
			if err := p.store.DeleteNode(ctx, hashKey(hash)+"/"+docID, false); err != nil {
				p.log.Warn("hash index delete failed", zap.String("doc_id", docID), zap.Error(err))
			}
		}
	}
	return nil
}
