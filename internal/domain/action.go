package domain

// Action enumerates the reconnaissance operations the assistant can perform.
type Action string

const (
	ActionScanIP       Action = "scan_ip"
	ActionWebScan      Action = "web_scan"
	ActionLeakCheck    Action = "leak_check"
	ActionUsernameHunt Action = "username_hunt"
	ActionUnknown      Action = "unknown"
)

// Actions returns every executable action kind in declaration order.
// ActionUnknown is a sentinel and never part of this list.
func Actions() []Action {
	return []Action{
		ActionScanIP,
		ActionWebScan,
		ActionLeakCheck,
		ActionUsernameHunt,
	}
}

// ParseAction maps a raw string onto the enumeration.
func ParseAction(raw string) (Action, bool) {
	switch Action(raw) {
	case ActionScanIP, ActionWebScan, ActionLeakCheck, ActionUsernameHunt, ActionUnknown:
		return Action(raw), true
	default:
		return "", false
	}
}

// Executable reports whether the action can be dispatched to a tool.
func (a Action) Executable() bool {
	switch a {
	case ActionScanIP, ActionWebScan, ActionLeakCheck, ActionUsernameHunt:
		return true
	default:
		return false
	}
}

// TargetKind describes the shape of target an action expects.
func (a Action) TargetKind() string {
	switch a {
	case ActionScanIP:
		return "ipv4"
	case ActionWebScan:
		return "domain"
	case ActionLeakCheck:
		return "email"
	case ActionUsernameHunt:
		return "username"
	default:
		return ""
	}
}

// DefaultTools lists the tools an action is expected to run.
func (a Action) DefaultTools() []string {
	switch a {
	case ActionScanIP:
		return []string{ToolNmap}
	case ActionWebScan:
		return []string{ToolNmap, ToolNikto, ToolFfuf}
	case ActionLeakCheck:
		return []string{ToolLeakCheck}
	case ActionUsernameHunt:
		return []string{ToolUsernameHunt}
	default:
		return nil
	}
}

// Tool names referenced by intents.
const (
	ToolNmap         = "nmap"
	ToolNikto        = "nikto"
	ToolFfuf         = "ffuf"
	ToolLeakCheck    = "leak_check"
	ToolUsernameHunt = "username_hunt"
)

var explainTemplates = map[Action]map[Language]string{
	ActionScanIP: {
		LangPT: "Vou escanear o IP ",
		LangEN: "I'll scan IP ",
	},
	ActionWebScan: {
		LangPT: "Vou vasculhar o domínio ",
		LangEN: "I'll scan domain ",
	},
	ActionLeakCheck: {
		LangPT: "Vou checar vazamentos para ",
		LangEN: "I'll check breaches for ",
	},
	ActionUsernameHunt: {
		LangPT: "Vou buscar o username ",
		LangEN: "I'll hunt username ",
	},
}

// Explain renders the human-readable description of what an intent will do.
// Unknown actions render as an empty string.
func Explain(intent Intent, lang Language) string {
	byLang, ok := explainTemplates[intent.Action]
	if !ok {
		return ""
	}
	prefix, ok := byLang[lang.OrDefault()]
	if !ok {
		prefix = byLang[DefaultLanguage]
	}
	return prefix + intent.Target
}
