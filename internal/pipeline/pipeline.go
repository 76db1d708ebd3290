package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/loomhq/loom/internal/models"
	"github.com/loomhq/loom/internal/parser"
)

// Renderer renders one snapshot into generated source text.
type Renderer interface {
	RenderSnapshot(snapshot models.Snapshot) (string, error)
}

// Artifact is the rendered output of one snapshot within a cycle.
type Artifact struct {
	Key       string
	Content   string
	FromCache bool
}

// PackageResult pairs a package snapshot with its rendered artifacts, in
// the snapshot's stable order.
type PackageResult struct {
	Snapshot  *models.PackageSnapshot
	Artifacts []Artifact
}

// CycleResult summarizes one pipeline cycle.
type CycleResult struct {
	ID       string
	Packages []PackageResult
	Rendered int
	Reused   int
}

type cacheEntry struct {
	fingerprint uint64
	snapshot    models.Snapshot
	content     string
}

// Pipeline runs the extract, compare, render cycle over a set of package
// directories. Rendered output is memoized per snapshot key: a declaration
// is re-rendered only when its snapshot is no longer equal to the cached
// one, so edits that do not change extracted semantics reuse prior output.
type Pipeline struct {
	extractor *parser.Extractor
	renderer  Renderer

	mu    sync.Mutex
	cache map[string]cacheEntry

	renders atomic.Int64
}

// New creates a pipeline with an empty cache.
func New(extractor *parser.Extractor, renderer Renderer) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		renderer:  renderer,
		cache:     make(map[string]cacheEntry),
	}
}

// TotalRenders reports how many snapshots have been rendered fresh since
// the pipeline was created.
func (p *Pipeline) TotalRenders() int64 {
	return p.renders.Load()
}

// Invalidate drops the memoized output, forcing the next cycle to render
// everything fresh.
func (p *Pipeline) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[string]cacheEntry)
}

// RunCycle extracts every directory, renders the snapshots whose semantics
// changed since the previous cycle, and commits the new cache state. A
// failed or cancelled cycle leaves the cache untouched, so the next cycle
// compares against the last fully committed state.
func (p *Pipeline) RunCycle(ctx context.Context, dirs []string) (*CycleResult, error) {
	snapshots := make([]*models.PackageSnapshot, len(dirs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, dir := range dirs {
		i, dir := i, dir
		group.Go(func() error {
			snapshot, err := p.extractor.ParseDirectory(groupCtx, dir)
			if err != nil {
				return err
			}
			snapshots[i] = snapshot
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return p.RunSnapshots(ctx, snapshots)
}

// renderUnit tracks one snapshot through a cycle
type renderUnit struct {
	pkgIndex  int
	snapshot  models.Snapshot
	content   string
	fromCache bool
}

// RunSnapshots runs the compare, render, commit phases over pre-extracted
// package snapshots. Keys absent from this cycle are evicted from the
// cache; render workers share no state, the commit happens once on the
// coordinator after every render succeeded.
func (p *Pipeline) RunSnapshots(ctx context.Context, snapshots []*models.PackageSnapshot) (*CycleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	previous := p.cache
	p.mu.Unlock()

	var units []*renderUnit
	var pending []*renderUnit
	for i, snapshot := range snapshots {
		for _, s := range snapshot.Snapshots() {
			unit := &renderUnit{pkgIndex: i, snapshot: s}
			if entry, ok := previous[s.Key()]; ok &&
				entry.fingerprint == s.Fingerprint() && entry.snapshot.EqualSnapshot(s) {
				unit.content = entry.content
				unit.fromCache = true
			} else {
				pending = append(pending, unit)
			}
			units = append(units, unit)
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, unit := range pending {
		unit := unit
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			content, err := p.renderer.RenderSnapshot(unit.snapshot)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", unit.snapshot.Key(), err)
			}
			unit.content = content
			p.renders.Add(1)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	next := make(map[string]cacheEntry, len(units))
	for _, unit := range units {
		next[unit.snapshot.Key()] = cacheEntry{
			fingerprint: unit.snapshot.Fingerprint(),
			snapshot:    unit.snapshot,
			content:     unit.content,
		}
	}
	p.mu.Lock()
	p.cache = next
	p.mu.Unlock()

	result := &CycleResult{
		ID:       uuid.New().String(),
		Packages: make([]PackageResult, len(snapshots)),
	}
	for i, snapshot := range snapshots {
		result.Packages[i] = PackageResult{Snapshot: snapshot}
	}
	for _, unit := range units {
		pkg := &result.Packages[unit.pkgIndex]
		pkg.Artifacts = append(pkg.Artifacts, Artifact{
			Key:       unit.snapshot.Key(),
			Content:   unit.content,
			FromCache: unit.fromCache,
		})
		if unit.fromCache {
			result.Reused++
		} else {
			result.Rendered++
		}
	}
	return result, nil
}
