// Package syncer mirrors service protocol files into the central protocol
// root. Planning is read-only; applying copies only files whose bytes differ.
package syncer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grpc-protos/protosync/internal/protosync/catalog"
	"github.com/grpc-protos/protosync/internal/protosync/fsutil"
	"github.com/grpc-protos/protosync/internal/protosync/report"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
	"github.com/grpc-protos/protosync/pkg/logger"
)

// Change is one destination that differs from its source.
type Change struct {
	Service     string
	Source      string
	Destination string
	// RelPath is Destination relative to the central protocol root, with
	// forward slashes.
	RelPath string
	Created bool
}

// ServicePlan holds the changes contributed by one service.
type ServicePlan struct {
	Service string
	Changes []Change
}

// Plan is the ordered set of changes for one run.
type Plan struct {
	Services   []ServicePlan
	Considered int
	Unchanged  int
}

// Changes flattens the plan in service order.
func (p *Plan) Changes() []Change {
	var out []Change
	for _, sp := range p.Services {
		out = append(out, sp.Changes...)
	}
	return out
}

func (p *Plan) Len() int {
	n := 0
	for _, sp := range p.Services {
		n += len(sp.Changes)
	}
	return n
}

func (p *Plan) Empty() bool {
	return p.Len() == 0
}

// ForService returns the changes planned for name.
func (p *Plan) ForService(name string) []Change {
	for _, sp := range p.Services {
		if sp.Service == name {
			return sp.Changes
		}
	}
	return nil
}

// Engine computes and applies sync plans against one central protocol root.
type Engine struct {
	protoRoot string
	reporter  report.Reporter
	logger    *logger.Logger
}

func New(protoRoot string, r report.Reporter) *Engine {
	return &Engine{
		protoRoot: protoRoot,
		reporter:  r,
		logger:    logger.WithField("component", "syncer"),
	}
}

// ProtoRoot returns the central protocol root.
func (e *Engine) ProtoRoot() string {
	return e.protoRoot
}

type claim struct {
	service string
	source  string
	data    []byte
}

// Plan compares every cataloged file with its central copy. A file outside
// its service's proto root, or two services claiming one destination with
// different bytes, is a structural error.
func (e *Engine) Plan(cat *catalog.Catalog) (*Plan, error) {
	plan := &Plan{}
	claims := map[string]claim{}

	for _, svc := range cat.Services {
		sp := ServicePlan{Service: svc.Name}
		for _, src := range svc.Files {
			plan.Considered++

			rel, err := relativeTo(svc.ProtoRoot, src)
			if err != nil {
				return nil, err
			}
			dst := filepath.Join(e.protoRoot, rel)

			data, err := os.ReadFile(src)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", src, err)
			}

			if prev, ok := claims[dst]; ok {
				if !bytes.Equal(prev.data, data) {
					return nil, perrors.WrapStructural(dst, "plan sync",
						fmt.Errorf("%w: %s (%s) and %s (%s)", perrors.ErrDestinationConflict,
							prev.service, prev.source, svc.Name, src))
				}
				e.logger.Debug("destination already claimed", "destination", dst, "owner", prev.service, "service", svc.Name)
				continue
			}
			claims[dst] = claim{service: svc.Name, source: src, data: data}

			exists, same, err := fsutil.SameContent(dst, data)
			switch {
			case err != nil:
				return nil, fmt.Errorf("read %s: %w", dst, err)
			case !exists:
				sp.Changes = append(sp.Changes, e.change(svc.Name, src, dst, true))
			case !same:
				sp.Changes = append(sp.Changes, e.change(svc.Name, src, dst, false))
			default:
				plan.Unchanged++
				report.Emitf(e.reporter, report.Debug, "unchanged: %s/%s", svc.Name, filepath.ToSlash(rel))
			}
		}
		if len(sp.Changes) > 0 {
			plan.Services = append(plan.Services, sp)
		}
	}

	return plan, nil
}

func (e *Engine) change(service, src, dst string, created bool) Change {
	rel, _ := filepath.Rel(e.protoRoot, dst)
	return Change{
		Service:     service,
		Source:      src,
		Destination: dst,
		RelPath:     filepath.ToSlash(rel),
		Created:     created,
	}
}

// relativeTo re-roots path under root, refusing anything that escapes it.
func relativeTo(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", perrors.WrapStructural(path, "resolve destination",
			fmt.Errorf("%w: %s", perrors.ErrPathOutsideRoot, root))
	}
	return rel, nil
}

// Apply writes the planned changes. With dryRun nothing touches the disk and
// the returned changes have the same shape as a real run.
func (e *Engine) Apply(plan *Plan, dryRun bool) ([]Change, error) {
	changes := plan.Changes()
	total := len(changes)
	applied := make([]Change, 0, total)

	for i, c := range changes {
		if dryRun {
			report.Emitf(e.reporter, report.Info, "[%d/%d] preview: %s -> %s", i+1, total, c.Service, c.RelPath)
			applied = append(applied, c)
			continue
		}

		if err := fsutil.CopyFile(c.Source, c.Destination); err != nil {
			return applied, fmt.Errorf("sync %s: %w", c.RelPath, err)
		}
		e.logger.Debug("copied", "source", c.Source, "destination", c.Destination, "created", c.Created)
		report.Emitf(e.reporter, report.Success, "[%d/%d] synced: %s / %s", i+1, total, c.Service, c.RelPath)
		applied = append(applied, c)
	}

	switch {
	case total == 0:
		e.reporter.Emit(report.Info, "no protocol files changed")
	case dryRun:
		report.Emitf(e.reporter, report.Info, "%d files would be synced (%d unchanged)", total, plan.Unchanged)
	default:
		report.Emitf(e.reporter, report.Success, "%d files synced (%d unchanged)", total, plan.Unchanged)
	}

	return applied, nil
}

// Sync plans and applies in one call.
func (e *Engine) Sync(cat *catalog.Catalog, dryRun bool) (*Plan, []Change, error) {
	plan, err := e.Plan(cat)
	if err != nil {
		return nil, nil, err
	}
	applied, err := e.Apply(plan, dryRun)
	return plan, applied, err
}
