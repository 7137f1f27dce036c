package conversation

import (
	"fmt"
	"strings"

	"github.com/doeshing/investigator-go/internal/domain"
)

// CommandResult is the outcome of a slash command typed in chat.
type CommandResult struct {
	Handled bool
	Quit    bool
	Reply   string
}

// Command interprets chat slash commands. Lines that are not commands are
// reported as unhandled and should go through Turn.
//
//	/lang <pt|en>  switch locale
//	/reset         clear transcript and pending confirmation
//	/quit          end the chat
func Command(conv *Conversation, line string) CommandResult {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return CommandResult{}
	}

	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit":
		return CommandResult{Handled: true, Quit: true}
	case "/reset":
		conv.Reset()
		return CommandResult{Handled: true, Reply: Greeting(conv.Lang)}
	case "/lang":
		if len(fields) < 2 {
			return CommandResult{Handled: true, Reply: languageUsage()}
		}
		lang, ok := domain.ParseLanguage(fields[1])
		if !ok {
			return CommandResult{Handled: true, Reply: languageUsage()}
		}
		conv.Lang = lang
		return CommandResult{
			Handled: true,
			Reply:   fmt.Sprintf(domain.Text(domain.TextLanguageSwitched, lang), domain.Languages[lang]),
		}
	default:
		return CommandResult{}
	}
}

func languageUsage() string {
	return "/lang " + string(domain.LangPT) + "|" + string(domain.LangEN)
}
