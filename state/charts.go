package state

import (
	"slices"

	"github.com/etnz/arthik"
)

// SetChart registers h as the live chart name. The handle previously
// registered under name, if any, is released first.
func (s *Store) SetChart(name arthik.ChartName, h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release(name)
	if h != nil {
		s.charts[name] = h
	}
}

// ReleaseChart releases the chart name, if any.
func (s *Store) ReleaseChart(name arthik.ChartName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release(name)
}

// ReleaseAllCharts releases every live chart.
func (s *Store) ReleaseAllCharts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseAll()
}

// Chart returns the live chart name.
func (s *Store) Chart(name arthik.ChartName) (Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.charts[name]
	return h, ok
}

// LiveCharts returns the names of the registered charts, sorted.
func (s *Store) LiveCharts() []arthik.ChartName {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]arthik.ChartName, 0, len(s.charts))
	for name := range s.charts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// release must be called with s.mu held.
func (s *Store) release(name arthik.ChartName) {
	h, ok := s.charts[name]
	if !ok {
		return
	}
	delete(s.charts, name)
	if s.releaser != nil {
		s.releaser.Release(h)
	}
}

// releaseAll must be called with s.mu held.
func (s *Store) releaseAll() {
	for name := range s.charts {
		s.release(name)
	}
}
