// Package run defines the outcome of a single agent invocation and of each of its steps.
package run

import (
	"strings"

	"github.com/Strob0t/runnable/internal/domain/task"
)

// Step names a stage of the run.
type Step string

const (
	StepOutputDir Step = "output_dir"
	StepGenerate  Step = "generate"
	StepPersist   Step = "persist"
	StepLaunch    Step = "launch"
)

// LaunchStep returns the step name recorded for launching app.
func LaunchStep(app string) Step { return StepLaunch + Step(":"+app) }

// IsLaunch reports whether s was produced by LaunchStep.
func (s Step) IsLaunch() bool { return strings.HasPrefix(string(s), string(StepLaunch)+":") }

// Status represents how a step ended.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded" // a fallback was used and the run continued
	StatusFailed   Status = "failed"
)

// Outcome is a step result with its diagnostics. Errors recovered inside a
// step are carried here instead of being returned.
type Outcome struct {
	Step   Step   `json:"step"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
	Err    error  `json:"-"`
}

// OK returns a successful outcome for step.
func OK(step Step, detail string) Outcome {
	return Outcome{Step: step, Status: StatusOK, Detail: detail}
}

// Degraded returns an outcome for a step that fell back after err.
func Degraded(step Step, detail string, err error) Outcome {
	return Outcome{Step: step, Status: StatusDegraded, Detail: detail, Err: err}
}

// Failed returns a failed outcome for step.
func Failed(step Step, err error) Outcome {
	o := Outcome{Step: step, Status: StatusFailed, Err: err}
	if err != nil {
		o.Detail = err.Error()
	}
	return o
}

// Succeeded reports whether the step produced its intended result.
func (o Outcome) Succeeded() bool { return o.Status == StatusOK }

// Report collects the outcomes of one invocation in execution order.
type Report struct {
	RunID     string    `json:"run_id"`
	Task      task.Task `json:"task"`
	OutputDir string    `json:"output_dir"`
	FilePath  string    `json:"file_path,omitempty"`
	Outcomes  []Outcome `json:"outcomes"`
	Aborted   bool      `json:"aborted"`
}

// Record appends o to the report.
func (r *Report) Record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Outcome returns the first recorded outcome for step.
func (r *Report) Outcome(step Step) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Step == step {
			return o, true
		}
	}
	return Outcome{}, false
}

// Launches returns the launch outcomes in launch order.
func (r *Report) Launches() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Step.IsLaunch() {
			out = append(out, o)
		}
	}
	return out
}
