package main

import (
	"sync"

	"github.com/charmbracelet/ssh"

	"github.com/tomz197/colliders/internal/draw"
)

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

// follow applies window changes until winCh is closed.
func (s *sizeTracker) follow(winCh <-chan ssh.Window) {
	for win := range winCh {
		s.update(win.Width, win.Height)
	}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
