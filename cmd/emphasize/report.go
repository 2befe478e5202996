package main

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gokanetr/internal/config"
	"github.com/gitrdm/gokanetr/internal/problem"
	"github.com/gitrdm/gokanetr/pkg/emphasis"
)

// report is the result of one problem file.
type report struct {
	Path    string
	Name    string
	RunID   string
	outcome *emphasis.Outcome
	err     error
}

// reportDoc is the YAML shape of a report.
type reportDoc struct {
	Name        string              `yaml:"name,omitempty"`
	Path        string              `yaml:"path"`
	RunID       string              `yaml:"run_id,omitempty"`
	Error       string              `yaml:"error,omitempty"`
	Target      string              `yaml:"target,omitempty"`
	Focus       string              `yaml:"focus,omitempty"`
	Candidates  []string            `yaml:"candidates,omitempty"`
	Stage       *problem.Collection `yaml:"stage,omitempty"`
	Supposition *problem.Collection `yaml:"supposition,omitempty"`
}

func (r report) doc(explain bool) reportDoc {
	d := reportDoc{Name: r.Name, Path: r.Path, RunID: r.RunID}
	if r.err != nil {
		d.Error = r.err.Error()
		return d
	}
	out := r.outcome
	stage, supposition := problem.NewCollection(out.Stage), problem.NewCollection(out.Supposition)
	d.Target = out.Target.String()
	d.Stage, d.Supposition = &stage, &supposition
	if out.Target != emphasis.TargetNone {
		d.Focus = out.Focus.String()
		if explain {
			for _, c := range out.Candidates {
				d.Candidates = append(d.Candidates, c.String())
			}
		}
	}
	return d
}

// writeReports prints reports in the configured format.
func writeReports(w io.Writer, cfg config.Config, reports []report) error {
	if cfg.Output == config.OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, r := range reports {
			if err := enc.Encode(r.doc(cfg.Explain)); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
		}
		return enc.Close()
	}

	var b strings.Builder
	for i, r := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		writeText(&b, r, cfg.Explain)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeText(b *strings.Builder, r report, explain bool) {
	title := r.Name
	if title == "" {
		title = r.Path
	}
	fmt.Fprintf(b, "# %s\n", title)
	if r.err != nil {
		fmt.Fprintf(b, "error: %v\n", r.err)
		return
	}
	out := r.outcome
	fmt.Fprintf(b, "target: %s\n", out.Target)
	if out.Target != emphasis.TargetNone {
		fmt.Fprintf(b, "focus: %s (occurrence %d of %d)\n", out.Focus, out.Selection.Index+1, out.Selection.Total)
		if explain {
			for _, c := range out.Candidates {
				fmt.Fprintf(b, "  candidate: %s\n", c)
			}
		}
	}
	fmt.Fprintf(b, "stage: %s\n", out.Stage)
	fmt.Fprintf(b, "supposition: %s\n", out.Supposition)
}
