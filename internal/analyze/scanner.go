// Package analyze reports what a cleanup would reclaim without deleting
// anything: it plans the removals per cleaning root and sizes them in
// parallel.
package analyze

import (
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lakshaymaurya-felt/cleaninstall/internal/clean"
)

// staleAfter marks artifacts nobody has touched in about six months.
const staleAfter = 180 * 24 * time.Hour

// Target is one entry a cleanup would remove.
type Target struct {
	Path    string
	IsDir   bool
	Size    uint64
	Files   uint64
	ModTime time.Time
}

// IsStale returns true if the entry hasn't been modified in 6+ months.
func (t Target) IsStale(now time.Time) bool {
	return now.Sub(t.ModTime) > staleAfter
}

// Group is the set of targets found under one cleaning root.
type Group struct {
	Root    string
	Targets []Target
	Size    uint64
}

// Percentage returns the group's size as a percentage of total.
func (g Group) Percentage(total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(g.Size) / float64(total) * 100
}

// Report is the result of Analyze.
type Report struct {
	Root     string
	Groups   []Group
	Size     uint64
	Files    uint64
	Warnings []string
}

// Scanner sizes removal targets with bounded concurrency.
type Scanner struct {
	sem     chan struct{}
	measure func(path string) (size, files uint64, err error)

	mu       sync.Mutex
	warnings []string
	measured atomic.Int64
}

// NewScanner creates a scanner that measures at most maxConcurrency
// targets at once.
func NewScanner(maxConcurrency int) *Scanner {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}
	return &Scanner{
		sem:     make(chan struct{}, maxConcurrency),
		measure: clean.Measure,
	}
}

// Warnings returns any warnings accumulated during scanning.
func (s *Scanner) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// MeasuredCount returns the number of targets sized so far.
func (s *Scanner) MeasuredCount() int64 {
	return s.measured.Load()
}

func (s *Scanner) addWarning(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.warnings) < 500 {
		s.warnings = append(s.warnings, msg)
	}
}

// Size measures every path in parallel and returns the targets largest
// first. Paths that cannot be measured are dropped with a warning.
func (s *Scanner) Size(paths []string) []Target {
	results := make([]*Target, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		i, p := i, p
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.sem <- struct{}{}
			defer func() { <-s.sem }()

			t, err := s.sizeOne(p)
			if err != nil {
				s.addWarning("cannot measure " + p + ": " + err.Error())
				return
			}
			s.measured.Add(1)
			results[i] = &t
		}()
	}
	wg.Wait()

	targets := make([]Target, 0, len(paths))
	for _, t := range results {
		if t != nil {
			targets = append(targets, *t)
		}
	}
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Size > targets[j].Size
	})
	return targets
}

func (s *Scanner) sizeOne(path string) (Target, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Target{}, err
	}
	size, files, err := s.measure(path)
	if err != nil {
		return Target{}, err
	}
	return Target{
		Path:    path,
		IsDir:   info.IsDir(),
		Size:    size,
		Files:   files,
		ModTime: info.ModTime(),
	}, nil
}
