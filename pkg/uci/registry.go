package uci

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ServiceSectionType is the section type the registry collects.
const ServiceSectionType = "service"

// Service is one DDNS service section together with its source file.
type Service struct {
	Name    string
	Path    string
	Content string
	Section *Section
}

// Enabled reports the service's `enabled` option (default off).
func (s Service) Enabled() bool {
	return s.Section.GetBool("enabled", false)
}

// LoadResult reports what a directory reload produced.
type LoadResult struct {
	LoadedServices []string
	SkippedFiles   []string
}

// Registry holds the DDNS service sections loaded from a config directory.
// It is safe for concurrent use; ReloadFromDir swaps the whole view at once.
type Registry struct {
	mu       sync.RWMutex
	services map[string]Service
}

func NewRegistry() *Registry {
	return &Registry{services: map[string]Service{}}
}

// ReloadFromDir parses every regular, non-hidden file under dir and replaces
// the registry content with the service sections found. Files that fail to
// parse are skipped and reported, not fatal; a missing directory yields an
// empty registry.
func (r *Registry) ReloadFromDir(dir string) (LoadResult, error) {
	if r == nil {
		return LoadResult{}, fmt.Errorf("nil registry")
	}
	next := map[string]Service{}
	var res LoadResult

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.swap(next)
			return res, nil
		}
		return LoadResult{}, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		// #nosec G304 -- path is discovered under the configured services dir.
		b, readErr := os.ReadFile(path)
		if readErr != nil {
			res.SkippedFiles = append(res.SkippedFiles, name)
			continue
		}
		doc, parseErr := Parse(strings.NewReader(string(b)))
		if parseErr != nil {
			res.SkippedFiles = append(res.SkippedFiles, name)
			continue
		}
		doc.Path = path
		for _, sec := range doc.SectionsByType(ServiceSectionType) {
			next[sec.Name] = Service{
				Name:    sec.Name,
				Path:    path,
				Content: string(b),
				Section: sec,
			}
		}
	}

	r.swap(next)
	res.LoadedServices = keysSorted(next)
	return res, nil
}

func (r *Registry) swap(next map[string]Service) {
	r.mu.Lock()
	r.services = next
	r.mu.Unlock()
}

// ListServiceNames returns the loaded service names, sorted.
func (r *Registry) ListServiceNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return keysSorted(r.services)
}

// GetService returns the named service section.
func (r *Registry) GetService(name string) (Service, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[name]
	return svc, ok
}

func keysSorted(m map[string]Service) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
