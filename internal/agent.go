package internal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// ToolDefinition describes one memory tool exposed to the model: name,
// description, JSON input schema and handler. Handlers never panic and
// report failures as readable strings in the tool result.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
	Function    func(ctx context.Context, input json.RawMessage) (string, error)
}

// GenerateSchema derives the JSON schema for a tool input struct.
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

// Toolset bundles every memory service behind the agent tool surface.
type Toolset struct {
	Baseline     *BaselineService
	Change       *ChangeService
	Lifecycle    *LifecycleService
	Drift        *DriftService
	History      *HistoryService
	Roadmap      *RoadmapService
	Trial        *TrialService
	Troubleshoot *TroubleshootService
	Query        *QueryService
	Update       *UpdateService
}

type baselineInput struct {
	ManagerName    string         `json:"manager_name" jsonschema_description:"Dotfiles manager in use (stow, chezmoi, yadm, rcm)."`
	ConfigMap      []AppConfig    `json:"config_map" jsonschema_description:"All configurations present on the user's system."`
	SystemMetadata SystemMetadata `json:"system_metadata" jsonschema_description:"Hardware and software environment details."`
}

type changeInput struct {
	AppChange
}

type driftInput struct{}

type historyInput struct {
	Count int `json:"count,omitempty" jsonschema_description:"Number of past commits to ingest (default 20)."`
}

type lifecycleInput struct {
	Action    string     `json:"action" jsonschema_description:"DEPRECATE or REPLACE."`
	OldConfig AppConfig  `json:"old_config" jsonschema_description:"The outgoing application configuration."`
	NewConfig *AppConfig `json:"new_config,omitempty" jsonschema_description:"The incoming configuration; required for REPLACE."`
	Logic     string     `json:"logic" jsonschema_description:"Strategic reasoning behind the transition."`
}

type roadmapLogInput struct {
	IdeaTitle  string `json:"idea_title" jsonschema_description:"Strategic name for the idea or tool."`
	Hypothesis string `json:"hypothesis" jsonschema_description:"Proposed implementation and expected benefits."`
	Blockers   string `json:"blockers" jsonschema_description:"Requirements preventing immediate action."`
	Priority   string `json:"priority" jsonschema_description:"LOW, MEDIUM or HIGH."`
}

type roadmapQueryInput struct {
	Status   string `json:"status" jsonschema_description:"Filter: pending or blocked."`
	Priority string `json:"priority,omitempty" jsonschema_description:"Optional priority filter."`
}

type trialStartInput struct {
	Name            string `json:"name" jsonschema_description:"Tool or plugin being evaluated."`
	TrialDays       int    `json:"trial_days" jsonschema_description:"Evaluation duration in days."`
	SuccessCriteria string `json:"success_criteria" jsonschema_description:"Requirements for keeping the tool."`
}

type trialListInput struct {
	MinDaysActive int `json:"min_days_active,omitempty" jsonschema_description:"Minimum days a trial has been running."`
}

type troubleshootLogInput struct {
	ErrorSignature string `json:"error_signature" jsonschema_description:"Pattern or message identifying the error."`
	RootCause      string `json:"root_cause" jsonschema_description:"Why the failure happened."`
	FixSteps       string `json:"fix_steps" jsonschema_description:"Reproducible steps that resolved it."`
}

type troubleshootGuideInput struct {
	ErrorKeyword string `json:"error_keyword" jsonschema_description:"Keywords from the current error."`
}

type contextInput struct {
	AppName string `json:"app_name" jsonschema_description:"App to retrieve context for (zsh, nvim, ...)."`
}

type updateInput struct {
	MemoryID string `json:"memory_id" jsonschema_description:"UUID of the memory to correct."`
	NewText  string `json:"new_text" jsonschema_description:"Complete corrected content."`
}

// Registry returns every memory tool wired for the agent loop.
func (t *Toolset) Registry() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "initialize_system_baseline",
			Description: "Establish ground truth for the environment (OS, shell, hardware, managed configs). Call once at the start of a new relationship with a machine.",
			InputSchema: GenerateSchema[baselineInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in baselineInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				return t.Baseline.Initialize(ctx, in.ManagerName, in.ConfigMap, in.SystemMetadata)
			},
		},
		{
			Name:        "commit_contextual_change",
			Description: "Record a configuration change with its rationale (WHAT and WHY). Call immediately after modifying any configuration file.",
			InputSchema: GenerateSchema[changeInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in changeInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				return t.Change.Commit(ctx, in.AppChange)
			},
		},
		{
			Name:        "check_config_drift",
			Description: "Detect uncommitted changes by comparing the filesystem to version control. Call at the start of every session.",
			InputSchema: GenerateSchema[driftInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				result := t.Drift.Check(ctx)
				return encodeJSON(result)
			},
		},
		{
			Name:        "ingest_version_history",
			Description: "Backfill semantic memory with the dotfiles repository's recent commit history.",
			InputSchema: GenerateSchema[historyInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in historyInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				return t.History.Ingest(ctx, in.Count)
			},
		},
		{
			Name:        "track_lifecycle_events",
			Description: "Record tool migration, deprecation or removal, so deprecated tools are never suggested again.",
			InputSchema: GenerateSchema[lifecycleInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in lifecycleInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				return t.Lifecycle.Track(ctx, LifecycleAction(in.Action), in.OldConfig, in.NewConfig, in.Logic)
			},
		},
		{
			Name:        "log_conceptual_roadmap",
			Description: "Store a future idea or nice-to-have feature the user is not ready to implement yet.",
			InputSchema: GenerateSchema[roadmapLogInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in roadmapLogInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				return t.Roadmap.Log(ctx, in.IdeaTitle, in.Hypothesis, in.Blockers, Priority(in.Priority))
			},
		},
		{
			Name:        "query_roadmap",
			Description: "Retrieve planned features or blocked ideas from the roadmap.",
			InputSchema: GenerateSchema[roadmapQueryInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in roadmapQueryInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				records, err := t.Roadmap.Query(ctx, in.Status, Priority(in.Priority))
				if err != nil {
					return "", err
				}
				return encodeJSON(records)
			},
		},
		{
			Name:        "manage_trial",
			Description: "Set an evaluation timer for a tool installed just to try it out.",
			InputSchema: GenerateSchema[trialStartInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in trialStartInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				return t.Trial.Start(ctx, in.Name, in.TrialDays, in.SuccessCriteria)
			},
		},
		{
			Name:        "list_active_trials",
			Description: "Retrieve tools currently in a probationary period.",
			InputSchema: GenerateSchema[trialListInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in trialListInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				records, err := t.Trial.ListActive(ctx, in.MinDaysActive)
				if err != nil {
					return "", err
				}
				return encodeJSON(records)
			},
		},
		{
			Name:        "log_troubleshooting_event",
			Description: "Record a verified fix in the knowledge base. Call after successfully fixing a configuration issue.",
			InputSchema: GenerateSchema[troubleshootLogInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in troubleshootLogInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				return t.Troubleshoot.Log(ctx, in.ErrorSignature, in.RootCause, in.FixSteps)
			},
		},
		{
			Name:        "get_troubleshooting_guide",
			Description: "Search past solutions to configuration errors. Call first when an error occurs.",
			InputSchema: GenerateSchema[troubleshootGuideInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in troubleshootGuideInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				records, err := t.Troubleshoot.Guide(ctx, in.ErrorKeyword)
				if err != nil {
					return "", err
				}
				return encodeJSON(records)
			},
		},
		{
			Name:        "get_config_context",
			Description: "Retrieve accumulated context for a specific app: past changes, preferences, fixes.",
			InputSchema: GenerateSchema[contextInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in contextInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				records, err := t.Query.Context(ctx, in.AppName)
				if err != nil {
					return "", err
				}
				return encodeJSON(records)
			},
		},
		{
			Name:        "update_memory",
			Description: "Correct an existing memory entry identified by its UUID.",
			InputSchema: GenerateSchema[updateInput](),
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in updateInput
				if err := json.Unmarshal(input, &in); err != nil {
					return "", err
				}
				return t.Update.Rewrite(ctx, in.MemoryID, in.NewText)
			},
		},
	}
}

func encodeJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(data), nil
}

// AgentRunner drives one model turn at a time, executing memory tool
// calls between turns.
type AgentRunner struct {
	Client *anthropic.Client
	Tools  []ToolDefinition
	System string
}

func NewAgentRunner(client *anthropic.Client, toolDefs []ToolDefinition) *AgentRunner {
	return &AgentRunner{Client: client, Tools: toolDefs}
}

func (r *AgentRunner) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.Tools))
	for _, t := range r.Tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// RunOneStep sends the conversation and returns the model message plus
// any tool results to append before the next step.
func (r *AgentRunner) RunOneStep(ctx context.Context, model anthropic.Model, conv []anthropic.MessageParam) (*anthropic.Message, []anthropic.ContentBlockParamUnion, error) {
	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: int64(1024),
		Messages:  conv,
		Tools:     r.anthropicTools(),
	}
	if r.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: r.System}}
	}

	msg, err := r.Client.Messages.New(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	var toolResults []anthropic.ContentBlockParamUnion
	for _, block := range msg.Content {
		if v, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			input := json.RawMessage(v.JSON.Input.Raw())
			toolResults = append(toolResults, r.execTool(ctx, v.ID, v.Name, input))
		}
	}

	return msg, toolResults, nil
}

func (r *AgentRunner) execTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	var def *ToolDefinition
	for i := range r.Tools {
		if r.Tools[i].Name == name {
			def = &r.Tools[i]
			break
		}
	}
	if def == nil {
		return anthropic.NewToolResultBlock(id, "tool not found", true)
	}

	resp, err := def.Function(ctx, input)
	if err != nil {
		// The model sees the failure as a readable string, never a crash.
		return anthropic.NewToolResultBlock(id, err.Error(), true)
	}
	return anthropic.NewToolResultBlock(id, resp, false)
}
