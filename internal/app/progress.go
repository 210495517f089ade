package app

import (
	"sync"

	"github.com/specialistvlad/gptgrid/internal/report"
)

// progressSnapshot is the JSON body of the /progress endpoint.
type progressSnapshot struct {
	Total     int    `json:"total"`
	Done      int    `json:"done"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Current   string `json:"current,omitempty"`
	Finished  bool   `json:"finished"`
}

// progress counts batch events for the healthcheck server.
type progress struct {
	mu       sync.Mutex
	total    int
	ok       int
	failed   int
	current  string
	finished bool
}

var _ report.Reporter = (*progress)(nil)

func (p *progress) start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total, p.ok, p.failed = total, 0, 0
	p.current, p.finished = "", false
}

func (p *progress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = ""
	p.finished = true
}

func (p *progress) Pending(e report.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = e.Input
}

func (p *progress) Succeeded(report.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ok++
	p.current = ""
}

func (p *progress) Failed(report.Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed++
	p.current = ""
}

func (p *progress) snapshot() progressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return progressSnapshot{
		Total:     p.total,
		Done:      p.ok + p.failed,
		Succeeded: p.ok,
		Failed:    p.failed,
		Current:   p.current,
		Finished:  p.finished,
	}
}
