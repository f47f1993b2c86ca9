package model

import "sync"

// ScanStatistics accumulates batch-wide counters (§3). All mutation happens
// through Add* methods so it is safe to share one instance across worker
// goroutines (§5 "updated via atomic counters or a single reduction").
type ScanStatistics struct {
	mu             sync.Mutex
	Scanned        int
	Failed         int
	Incomplete     int
	Solved         int
	failedFileSet  map[string]bool
	FailedFileNames []string
}

// NewScanStatistics returns a zeroed ScanStatistics ready for concurrent use.
func NewScanStatistics() *ScanStatistics {
	return &ScanStatistics{failedFileSet: make(map[string]bool)}
}

func (s *ScanStatistics) AddScanned() {
	s.mu.Lock()
	s.Scanned++
	s.mu.Unlock()
}

func (s *ScanStatistics) AddSolved() {
	s.mu.Lock()
	s.Solved++
	s.mu.Unlock()
}

func (s *ScanStatistics) AddIncomplete() {
	s.mu.Lock()
	s.Incomplete++
	s.mu.Unlock()
}

// AddFailed records path as failed. failed_file_names is deduplicated per
// §4.10's aggregation contract.
func (s *ScanStatistics) AddFailed(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
	if !s.failedFileSet[path] {
		s.failedFileSet[path] = true
		s.FailedFileNames = append(s.FailedFileNames, path)
	}
}

// Snapshot returns a stable copy for rendering in the aggregate report.
func (s *ScanStatistics) Snapshot() ScanStatistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.FailedFileNames))
	copy(names, s.FailedFileNames)
	return ScanStatistics{
		Scanned:         s.Scanned,
		Failed:          s.Failed,
		Incomplete:      s.Incomplete,
		Solved:          s.Solved,
		FailedFileNames: names,
	}
}
