// Package catalog discovers the services that carry protocol definitions.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grpc-protos/protosync/internal/protosync/report"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

// ProtoExt is the extension of protocol definition files.
const ProtoExt = ".proto"

// maxAlternatives caps the names listed when a lookup fails.
const maxAlternatives = 5

// Service is one discovered service. Files are absolute and sorted.
type Service struct {
	Name      string
	Root      string
	ProtoRoot string
	Files     []string
}

// Skip records a service directory that was not cataloged.
type Skip struct {
	Name   string
	Reason string
}

// Catalog is the result of one scan. It is never cached across runs.
type Catalog struct {
	Root     string
	Services []Service
	Skips    []Skip
}

// Options tunes discovery. The zero value uses "protos".
type Options struct {
	ProtoDir string
}

// Discover scans the immediate subdirectories of servicesRoot in
// lexicographic order. Directories without a proto directory, or whose
// proto directory holds no proto file, are skipped with a warning.
func Discover(servicesRoot string, opts Options, r report.Reporter) (*Catalog, error) {
	protoDir := opts.ProtoDir
	if protoDir == "" {
		protoDir = "protos"
	}

	info, err := os.Stat(servicesRoot)
	if err != nil || !info.IsDir() {
		return nil, perrors.NewNotFoundError("services root", servicesRoot)
	}

	entries, err := os.ReadDir(servicesRoot)
	if err != nil {
		return nil, fmt.Errorf("read services root %s: %w", servicesRoot, err)
	}

	root, err := filepath.Abs(servicesRoot)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{Root: root}
	// os.ReadDir returns entries sorted by filename.
	for _, entry := range entries {
		if !IsServiceDir(root, entry) {
			continue
		}
		name := entry.Name()
		serviceRoot := filepath.Join(root, name)
		protoRoot := filepath.Join(serviceRoot, protoDir)

		pinfo, err := os.Stat(protoRoot)
		if err != nil || !pinfo.IsDir() {
			cat.skip(r, name, "no "+protoDir+" directory")
			continue
		}

		files, err := collectProtoFiles(protoRoot)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", protoRoot, err)
		}
		if len(files) == 0 {
			cat.skip(r, name, "no proto files")
			continue
		}

		cat.Services = append(cat.Services, Service{
			Name:      name,
			Root:      serviceRoot,
			ProtoRoot: protoRoot,
			Files:     files,
		})
		report.Emitf(r, report.Success, "found %s (%d files)", name, len(files))
	}

	report.Emitf(r, report.Info, "%d services discovered (skipped: %d)", len(cat.Services), len(cat.Skips))
	return cat, nil
}

func (c *Catalog) skip(r report.Reporter, name, reason string) {
	c.Skips = append(c.Skips, Skip{Name: name, Reason: reason})
	report.Emitf(r, report.Warning, "skipping %s (%s)", name, reason)
}

// IsServiceDir reports whether entry of root is a directory, following
// symlinks so linked service checkouts count as services.
func IsServiceDir(root string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}

func collectProtoFiles(protoRoot string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(protoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ProtoExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Lookup returns the service called name.
func (c *Catalog) Lookup(name string) (Service, error) {
	for _, svc := range c.Services {
		if svc.Name == name {
			return svc, nil
		}
	}

	return Service{}, perrors.NewUserInputError(fmt.Sprintf("service %q not found", name), c.Suggestions()...)
}

// Suggestions returns the first few service names, for error messages.
func (c *Catalog) Suggestions() []string {
	names := c.Names()
	if len(names) > maxAlternatives {
		names = names[:maxAlternatives]
	}
	return names
}

// Names returns the cataloged service names in discovery order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Services))
	for _, svc := range c.Services {
		names = append(names, svc.Name)
	}
	return names
}

func (c *Catalog) Skipped() int {
	return len(c.Skips)
}

func (c *Catalog) TotalFiles() int {
	n := 0
	for _, svc := range c.Services {
		n += len(svc.Files)
	}
	return n
}

// Only returns a catalog restricted to the named service.
func (c *Catalog) Only(name string) (*Catalog, error) {
	svc, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	return &Catalog{Root: c.Root, Services: []Service{svc}}, nil
}
