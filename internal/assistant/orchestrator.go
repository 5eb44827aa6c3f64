package assistant

import (
	"context"
	"time"

	"github.com/hbalint/jarvis/internal/config"
	"github.com/hbalint/jarvis/internal/history"
	"github.com/hbalint/jarvis/internal/llm"
	"github.com/hbalint/jarvis/internal/tools"
	"github.com/hbalint/jarvis/pkg/log"
)

// Orchestrator drives one conversational turn: given new user input it
// decides the sequence of model, tool, and search calls needed to
// produce a final answer, then commits exactly the user input and the
// final answer to the persisted transcript. Scaffolding messages live
// only in the turn's working copy.
type Orchestrator struct {
	config *config.Store
	store  history.Store
	model  ModelClient
	search Searcher
	tools  *tools.Registry
	now    func() time.Time
}

// New creates an orchestrator. model may be nil, which puts the
// assistant into the keyword fallback mode; search may be nil when no
// provider is configured.
func New(cfgStore *config.Store, store history.Store, model ModelClient, search Searcher, registry *tools.Registry) *Orchestrator {
	return &Orchestrator{
		config: cfgStore,
		store:  store,
		model:  model,
		search: search,
		tools:  registry,
		now:    time.Now,
	}
}

// Status reports which subsystems are live
func (o *Orchestrator) Status() Status {
	searchable := o.search != nil && o.search.Available()
	return Status{
		Model:     o.model != nil,
		Search:    searchable,
		Tools:     o.tools != nil && o.tools.Count() > 0,
		Streaming: o.model != nil,
	}
}

// ConfigStore exposes the configuration store for the operational
// surfaces (REPL "config" command, HTTP config endpoint)
func (o *Orchestrator) ConfigStore() *config.Store {
	return o.config
}

// ClearHistory resets the persisted transcript to the system message only
func (o *Orchestrator) ClearHistory(ctx context.Context) error {
	cfg := o.config.Load()
	return o.store.Save(ctx, history.NewTranscript(cfg.Rules))
}

// HandleTurn runs one full turn for userInput. sink, when non-nil,
// receives generated chunks as they arrive; decisions are always made
// on assembled text. The returned error is non-nil only on
// cancellation, in which case nothing was persisted. Every other
// failure is recovered into a natural-language answer.
func (o *Orchestrator) HandleTurn(ctx context.Context, userInput string, sink StreamSink) (string, error) {
	cfg := o.config.Load()

	persisted, err := o.store.Load(ctx)
	if err != nil {
		log.Error("history load failed: %v, starting fresh", err)
		persisted = nil
	}
	persisted = persisted.WithSystem(cfg.Rules)

	if o.model == nil {
		final := FallbackReply(userInput, o.now())
		o.commit(ctx, persisted, userInput, final)
		return final, nil
	}

	st := &turnState{
		transcript: persisted.Append(llm.User(userInput)),
	}

	if err := o.preemptiveSearch(ctx, cfg, st, userInput); err != nil {
		return "", err
	}

	if err := o.runLoop(ctx, cfg, st, sink); err != nil {
		return "", err
	}
	if !st.done {
		// Retry budgets ran out without a clean final answer.
		st.result = budgetApology
	}

	o.commit(ctx, persisted, userInput, st.result)
	return st.result, nil
}

// preemptiveSearch runs the trigger-term scan over the user input and,
// when a query can be built, searches before the first model call. A
// failed pre-emptive search folds nothing and spends no attempt; the
// model simply starts without results.
func (o *Orchestrator) preemptiveSearch(ctx context.Context, cfg config.Config, st *turnState, userInput string) error {
	if o.search == nil || !o.search.Available() {
		return nil
	}
	query, ok := AutoSearchQuery(userInput, o.now())
	if !ok {
		return nil
	}

	log.Info("auto-detected search need: %s", query)
	results, ok := o.search.Search(ctx, query)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !ok {
		return nil
	}

	st.transcript = st.transcript.Append(
		llm.Assistant(`SEARCH("`+query+`")`),
		llm.User(autoSearchResultsPrompt(query, results)),
	)
	st.searchAttempts = 1
	return nil
}

// runLoop is the turn state machine: call the model, honor at most one
// tool or search marker per round, fold the outcome back into the
// working transcript, and repeat until a response carries no marker or
// a budget runs out.
func (o *Orchestrator) runLoop(ctx context.Context, cfg config.Config, st *turnState, sink StreamSink) error {
	// Every round consumes either a search or a tool attempt, so the
	// budgets bound the loop; +2 covers the pre-emptive round and the
	// final marker-free answer.
	maxRounds := cfg.MaxSearchAttempts + cfg.MaxToolAttempts + 2

	for round := 0; round < maxRounds; round++ {
		text, err := o.model.Complete(ctx, st.transcript, sink)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Error("model call failed: %v", err)
			st.result = transportApology
			st.done = true
			return nil
		}

		if inv, ok := ParseToolMarker(text); ok {
			if st.toolAttempts >= cfg.MaxToolAttempts {
				log.Warn("tool budget exhausted, giving up on turn")
				return nil
			}
			st.toolAttempts++
			o.runTool(ctx, st, text, inv)
			continue
		}

		if query, ok := ParseSearchMarker(text); ok {
			if st.searchAttempts >= cfg.MaxSearchAttempts {
				log.Warn("search budget exhausted, giving up on turn")
				return nil
			}
			st.searchAttempts++
			if err := o.runSearch(ctx, st, text, query); err != nil {
				return err
			}
			continue
		}

		st.result = text
		st.done = true
		return nil
	}
	return nil
}

// runTool executes the requested tool and folds the request and its
// result (or failure explanation) into the working transcript. Tool
// failures never abort the turn.
func (o *Orchestrator) runTool(ctx context.Context, st *turnState, responseText string, inv ToolInvocation) {
	log.Info("using tool: %s", inv.Name)
	result := o.tools.Execute(ctx, inv.Name, inv.Args)

	st.transcript = st.transcript.Append(llm.Assistant(responseText))
	if result.IsError {
		st.transcript = st.transcript.Append(llm.User(toolFailedPrompt(result.Content)))
	} else {
		st.transcript = st.transcript.Append(llm.User(toolResultPrompt(inv.Name, result.Content)))
	}
}

// runSearch executes a model-requested search. Both outcomes fold an
// instruction into the working transcript and both consume an attempt.
func (o *Orchestrator) runSearch(ctx context.Context, st *turnState, responseText, query string) error {
	var results string
	ok := false
	if o.search != nil {
		results, ok = o.search.Search(ctx, query)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	st.transcript = st.transcript.Append(llm.Assistant(responseText))
	if ok {
		st.transcript = st.transcript.Append(llm.User(finalAnswerPrompt(query, results)))
	} else {
		st.transcript = st.transcript.Append(llm.User(searchFailedPrompt))
	}
	return nil
}

// commit appends the user/assistant pair to the persisted transcript,
// saves it under the cap, and records the interaction. Persistence
// failures are logged, never surfaced.
func (o *Orchestrator) commit(ctx context.Context, persisted history.Transcript, userInput, final string) {
	updated := persisted.Append(llm.User(userInput), llm.Assistant(final))
	if err := o.store.Save(ctx, updated); err != nil {
		log.Error("history save failed: %v", err)
	}
	if err := o.store.LogInteraction(ctx, userInput, final); err != nil {
		log.Error("interaction log failed: %v", err)
	}
}
