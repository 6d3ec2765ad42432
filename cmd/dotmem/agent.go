package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/4thel00z/dotmem/internal"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"
)

const agentSystemPrompt = `You maintain the user's dotfiles environment. Use the memory tools
to recall what is known before answering, and to record every change, fix and decision you
learn about. Check for config drift at the start of a session.`

func NewAgentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Interactive assistant backed by the memory tools",
		Long:  `Chat loop where the model can call every memory tool: recall context, record changes, check drift. Requires ANTHROPIC_API_KEY.`,
		Args:  cobra.NoArgs,
		RunE:  makeAgentRunner(a),
	}

	cmd.Flags().String("model", string(anthropic.ModelClaude3_7SonnetLatest), "Model to chat with")
	return cmd
}

func makeAgentRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		if err := a.setup(); err != nil {
			return err
		}

		modelName, _ := cmd.Flags().GetString("model")
		model := anthropic.Model(modelName)

		client := anthropic.NewClient()
		runner := internal.NewAgentRunner(&client, a.tools.Registry())
		runner.System = agentSystemPrompt

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "dotmem agent (Ctrl-D to quit)")

		scanner := bufio.NewScanner(cmd.InOrStdin())
		var conv []anthropic.MessageParam

		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				break
			}
			line := scanner.Text()
			if line == "" {
				continue
			}

			conv = append(conv, anthropic.NewUserMessage(anthropic.NewTextBlock(line)))

			for {
				msg, toolResults, err := runner.RunOneStep(cmd.Context(), model, conv)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					break
				}
				conv = append(conv, msg.ToParam())

				for _, block := range msg.Content {
					if tb, ok := block.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
						fmt.Fprintln(out, tb.Text)
					}
				}

				if len(toolResults) == 0 {
					break
				}
				conv = append(conv, anthropic.NewUserMessage(toolResults...))
			}
		}

		return scanner.Err()
	}
}
