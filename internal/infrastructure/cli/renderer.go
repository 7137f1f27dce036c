package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/doeshing/investigator-go/internal/domain"
)

// RenderReply prints one assistant reply followed by a blank line.
func RenderReply(out io.Writer, reply string) {
	if reply == "" {
		return
	}
	fmt.Fprintln(out, reply)
	fmt.Fprintln(out)
}

// RenderTurns prints the replies of the turns a chat step appended.
func RenderTurns(out io.Writer, turns []domain.Turn) {
	for _, turn := range turns {
		RenderReply(out, turn.Reply)
	}
}

// RenderIntent prints the proposed action in a friendly, ASCII-only format.
func RenderIntent(out io.Writer, intent domain.Intent, lang domain.Language) {
	fmt.Fprintln(out, domain.Explain(intent, lang))
	fmt.Fprintf(out, "Action: %s\n", intent.Action)
	fmt.Fprintf(out, "Target: %s (%s)\n", intent.Target, intent.Action.TargetKind())
	fmt.Fprintf(out, "Tools:  %s\n\n", strings.Join(intent.ToolsOrDefault(), ", "))
}

// RenderOutput prints the executor result the same way the chat does.
func RenderOutput(out io.Writer, lang domain.Language, raw string) {
	RenderReply(out, fmt.Sprintf("%s\n\n```\n%s\n```", domain.Text(domain.TextDone, lang), raw))
}
