package main

import (
	"io"
	"text/template"
	"time"

	"github.com/plus3/blockfall/loop"
)

type Report struct {
	// Configuration
	Seed     uint64
	Height   int
	Width    int
	Frames   int
	FPS      int
	Realtime bool

	// Results
	State      string
	Score      int
	Lines      int
	Pieces     int
	TotalTime  time.Duration
	UpdateTime Stats
	Scheduler  *loop.SchedulerStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Simulation Report

## Configuration
- **Seed:** {{.Seed}}
- **Board:** {{.Height}}x{{.Width}}
- **Frame Budget:** {{.Frames}}
- **Pacing:** {{if .Realtime}}{{.FPS}} fps{{else}}unpaced{{end}}

## Game
- **Final State:** {{.State}}
- **Score:** {{.Score}}
- **Lines Cleared:** {{.Lines}}
- **Pieces Locked:** {{.Pieces}}
- **Frames Run:** {{.Scheduler.Frames}}

## Performance
- **Total Time:** {{.TotalTime}}
{{- if .UpdateTime.Samples}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{- end}}

| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Scheduler.Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
`

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
