package cmd

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/giantswarm/etcd-cleaner/internal/cleaner"
)

// spinnerProgress shows the current stage while listings run.
type spinnerProgress struct {
	s *spinner.Spinner
}

// newProgress returns a spinner on w when w is a file. The spinner itself
// stays silent unless that file is a terminal.
func newProgress(w io.Writer) cleaner.Progress {
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	return &spinnerProgress{
		s: spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f)),
	}
}

func (p *spinnerProgress) Start(stage string) {
	p.s.Lock()
	p.s.Suffix = " " + stage + "..."
	p.s.Unlock()
	if !p.s.Active() {
		p.s.Start()
	}
}

func (p *spinnerProgress) Stop() {
	p.s.Stop()
}
