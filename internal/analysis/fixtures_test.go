package analysis

import (
	"context"
	"sync"
	"time"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 555 123 4567

TECHNICAL SKILLS
• Golang
• PostgreSQL
• Kubernetes

WORK EXPERIENCE
Jan 2021 - Present Software Engineer, Acme Corp
• Reduced API latency by 35%
• Led migration to Kubernetes
Jun 2020 - Aug 2020 Backend Intern, Beta Inc

PROJECTS
• Task Tracker: Built a task tracker using React and Node.js
• Budget App - Created a budgeting tool for Northwind Bank https://github.com/janedoe/budget

EDUCATION
State University Bachelor of Science in Computer Science 2016-2020
`

type stubGateway struct {
	mu        sync.Mutex
	responses map[string]Response
	errs      map[string]error
	err       error
	panics    map[string]bool
	calls     []string
	timeouts  []time.Duration
}

func (s *stubGateway) Call(_ context.Context, model, _ string, timeout time.Duration) (Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, model)
	s.timeouts = append(s.timeouts, timeout)
	s.mu.Unlock()

	if s.panics[model] {
		panic("gateway exploded")
	}
	if err := s.errs[model]; err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.responses[model], nil
}
