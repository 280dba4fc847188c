package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/lox/pokercfr/sdk/solver"
)

// progressBar redraws a single terminal line as training advances.
type progressBar struct {
	mu    sync.Mutex
	out   io.Writer
	label string
	bar   progress.Model
	quiet bool
}

func newProgressBar(label string, out io.Writer, quiet bool) *progressBar {
	return &progressBar{
		out:   out,
		label: label,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		quiet: quiet,
	}
}

// Update is a solver progress callback.
func (p *progressBar) Update(pr solver.Progress) {
	if p.quiet || pr.Iterations == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	pct := float64(pr.Iteration) / float64(pr.Iterations)
	fmt.Fprintf(p.out, "\r%-8s %s %d/%d  %d infosets  %s",
		p.label, p.bar.ViewAs(pct), pr.Iteration, pr.Iterations, pr.InfoSets, pr.Elapsed.Round(time.Millisecond))
	if pr.Iteration >= pr.Iterations {
		fmt.Fprintln(p.out)
	}
}
