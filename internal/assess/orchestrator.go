// Package assess sequences one full analysis: validate the inputs,
// build the prompt, call the completion service, parse the reply. Any
// stage failure is converted into a single reportable Failure so that
// internal error types never reach the presentation layer.
package assess

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tp-assess/internal/gateway"
	"tp-assess/internal/parser"
	"tp-assess/internal/party"
	"tp-assess/internal/prompt"
	"tp-assess/internal/schema"
)

// Pipeline stages, named in failures surfaced to the caller.
const (
	StageValidate = "validate"
	StageBuild    = "build"
	StageGateway  = "gateway"
	StageParse    = "parse"
)

// Failure is the single reportable outcome of a failed analysis.
type Failure struct {
	ID      uuid.UUID
	Stage   string
	Message string
}

func (f *Failure) String() string {
	return fmt.Sprintf("assessment %s failed at %s stage: %s", f.ID, f.Stage, f.Message)
}

// Outcome pairs a successful result with its correlation ID and the
// soft warning state of the risk level.
type Outcome struct {
	ID     uuid.UUID
	Result *parser.AssessmentResult
}

// RiskLevelWarning returns a non-empty warning when the model emitted a
// risk level outside HIGH/MEDIUM/LOW. Deliberate leniency: the value is
// passed through unchanged and only flagged here.
func (o *Outcome) RiskLevelWarning() string {
	if o.Result.RiskLevelRecognized() {
		return ""
	}
	return fmt.Sprintf("unrecognized risk level %q (expected HIGH, MEDIUM, or LOW)", o.Result.RiskLevel)
}

// Assessor runs the four-stage pipeline. It holds only immutable,
// process-wide collaborators and is safe for concurrent use; all
// per-analysis values are local to each Assess call.
type Assessor struct {
	completer gateway.Completer
	builder   *prompt.Builder
	contract  schema.Contract
}

// New builds an Assessor around the given completer using the default
// output contract.
func New(completer gateway.Completer) *Assessor {
	contract := schema.Default()
	return &Assessor{
		completer: completer,
		builder:   prompt.NewBuilder(contract),
		contract:  contract,
	}
}

// Assess runs one analysis. Exactly one gateway call is made per
// invocation; no stage runs after an earlier stage has failed.
func (a *Assessor) Assess(ctx context.Context, p1, p2 *party.Profile, rel *party.Relationship) (*Outcome, *Failure) {
	id := uuid.New()

	if a.completer == nil {
		return nil, a.fail(id, StageGateway, &gateway.ConfigurationError{Reason: "no completion provider configured"})
	}

	req, err := prompt.NewAssessmentRequest(p1, p2, rel, a.contract)
	if err != nil {
		return nil, a.fail(id, StageValidate, err)
	}

	completion, err := a.builder.Build(req)
	if err != nil {
		return nil, a.fail(id, StageBuild, err)
	}

	raw, err := a.completer.Complete(ctx, completion)
	if err != nil {
		return nil, a.fail(id, StageGateway, err)
	}

	result, err := parser.Parse(raw, a.contract)
	if err != nil {
		return nil, a.fail(id, StageParse, err)
	}

	return &Outcome{ID: id, Result: result}, nil
}

func (a *Assessor) fail(id uuid.UUID, stage string, err error) *Failure {
	log.Printf("assessment %s: %s stage failed: %v", id, stage, err)
	return &Failure{ID: id, Stage: stage, Message: err.Error()}
}
