package agent

import (
	"context"
	"time"

	"chatserver/internal/ai"
	"chatserver/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultAgentTimeout = 2 * time.Minute

// Result is the outcome of one agent's invocation. Err is non-fatal: it
// never affects the triggering message or the other agents.
type Result struct {
	AgentID   int64    `json:"agent_id"`
	AgentName string   `json:"agent_name"`
	Decision  Decision `json:"-"`
	Err       error    `json:"-"`
}

// Report collects the results of a pipeline run over one message.
type Report struct {
	RunID     uuid.UUID `json:"run_id"`
	MessageID int64     `json:"message_id"`
	Deleted   bool      `json:"deleted"`
	Results   []Result  `json:"results"`
}

// Runner invokes a chat's agents for each newly created message and
// applies their decisions.
type Runner struct {
	agents   domain.AgentRepository
	messages domain.MessageRepository
	registry *Registry
	timeout  time.Duration
}

// NewRunner creates a pipeline runner
func NewRunner(agents domain.AgentRepository, messages domain.MessageRepository, registry *Registry) *Runner {
	return &Runner{
		agents:   agents,
		messages: messages,
		registry: registry,
		timeout:  defaultAgentTimeout,
	}
}

// Run invokes every agent attached to the message's chat, in ascending
// agent id order, against the message's original content. Decisions are
// applied as they arrive; no agent sees another's output for the same
// message. A failing agent is recorded and logged, then the run moves on.
func (r *Runner) Run(ctx context.Context, msg *domain.Message) *Report {
	report := &Report{RunID: uuid.New(), MessageID: msg.ID}

	agents, err := r.agents.ListByChat(ctx, msg.ChatID)
	if err != nil {
		log.Error().Err(err).
			Str("run_id", report.RunID.String()).
			Int64("chat_id", msg.ChatID).
			Msg("failed to list chat agents")
		return report
	}

	mctx := Context{ChatID: msg.ChatID, MessageID: msg.ID, SenderID: msg.SenderID}

	for _, a := range agents {
		result := Result{AgentID: a.ID, AgentName: a.Name}
		result.Decision, result.Err = r.invoke(ctx, a, msg.Content, mctx)

		if result.Err == nil {
			if err := r.apply(ctx, a, msg, result.Decision, report); err != nil {
				result.Err = err
			}
		}

		if result.Err != nil {
			log.Warn().Err(result.Err).
				Str("run_id", report.RunID.String()).
				Int64("agent_id", a.ID).
				Str("agent", a.Name).
				Int64("message_id", msg.ID).
				Msg("agent failed")
		}

		report.Results = append(report.Results, result)

		// nothing left to act on once the triggering message is gone
		if report.Deleted {
			break
		}
	}

	return report
}

func (r *Runner) invoke(ctx context.Context, a domain.ChatAgent, content string, mctx Context) (Decision, error) {
	// tap agents never call the backend, so an unconfigured adapter must
	// not fail them
	var adapter ai.Adapter
	if a.Type != domain.AgentTypeTap {
		var err error
		adapter, err = r.registry.Adapter(a.Adapter, a.Model)
		if err != nil {
			return nil, err
		}
	}

	variant, err := New(a, adapter)
	if err != nil {
		return nil, err
	}

	// each agent gets its own deadline; a hung backend call must not
	// stall its siblings
	actx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return variant.Process(actx, content, mctx)
}

func (r *Runner) apply(ctx context.Context, a domain.ChatAgent, msg *domain.Message, decision Decision, report *Report) error {
	switch d := decision.(type) {
	case Modify:
		return r.messages.SetModifiedContent(ctx, msg.ID, d.Content)
	case Reply:
		_, err := r.messages.Create(ctx, msg.ChatID, a.ID, d.Content, nil)
		return err
	case Delete:
		if _, err := r.messages.Delete(ctx, msg.ChatID, msg.ID); err != nil {
			return err
		}
		report.Deleted = true
		return nil
	default:
		return nil
	}
}
