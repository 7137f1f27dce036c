package domain

import "strings"

// Language identifies a supported conversation locale.
type Language string

const (
	LangPT Language = "pt"
	LangEN Language = "en"
)

// DefaultLanguage is used whenever a locale is missing or unsupported.
const DefaultLanguage = LangPT

// Languages maps each locale to its display label.
var Languages = map[Language]string{
	LangPT: "🇧🇷 Português",
	LangEN: "🇺🇸 English",
}

// ParseLanguage normalizes user input into a supported locale.
func ParseLanguage(raw string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := Languages[lang]; ok {
		return lang, true
	}
	return "", false
}

// OrDefault returns the language, or DefaultLanguage when unsupported.
func (l Language) OrDefault() Language {
	if _, ok := Languages[l]; ok {
		return l
	}
	return DefaultLanguage
}

// TextKey names an entry in the localized message table.
type TextKey string

const (
	TextGreeting         TextKey = "greeting"
	TextConfirmQuestion  TextKey = "confirm_q"
	TextCancelled        TextKey = "cancelled"
	TextRunning          TextKey = "running"
	TextDone             TextKey = "done"
	TextError            TextKey = "error"
	TextDidntUnderstand  TextKey = "didnt_understand"
	TextModuleMissing    TextKey = "module_missing"
	TextNotImplemented   TextKey = "not_implemented"
	TextCommandNotFound  TextKey = "command_not_found"
	TextCommandTimedOut  TextKey = "command_timed_out"
	TextLanguageSwitched TextKey = "language_switched"
)

var texts = map[TextKey]map[Language]string{
	TextGreeting: {
		LangPT: "👋 Olá! Sou sua IA investigativa. Como posso ajudar hoje?",
		LangEN: "👋 Hi! I'm your investigative AI. How can I help you today?",
	},
	TextConfirmQuestion: {
		LangPT: "Deseja executar? ✅ Sim / ❌ Não",
		LangEN: "Do you want to run it? ✅ Yes / ❌ No",
	},
	TextCancelled: {
		LangPT: "❌ Ação cancelada.",
		LangEN: "❌ Action cancelled.",
	},
	TextRunning: {
		LangPT: "🚀 Executando…",
		LangEN: "🚀 Running…",
	},
	TextDone: {
		LangPT: "✔️ Concluído.",
		LangEN: "✔️ Done.",
	},
	TextError: {
		LangPT: "⚠️ Erro:",
		LangEN: "⚠️ Error:",
	},
	TextDidntUnderstand: {
		LangPT: "Não entendi, reformule?",
		LangEN: "Sorry, didn't get that.",
	},
	TextModuleMissing: {
		LangPT: "Módulo %s ausente.",
		LangEN: "Module %s missing.",
	},
	TextNotImplemented: {
		LangPT: "Ação não implementada.",
		LangEN: "Action not implemented.",
	},
	TextCommandNotFound: {
		LangPT: "Comando não encontrado: %s",
		LangEN: "Command not found: %s",
	},
	TextCommandTimedOut: {
		LangPT: "Tempo esgotado após %s: %s",
		LangEN: "Timed out after %s: %s",
	},
	TextLanguageSwitched: {
		LangPT: "Idioma alterado para %s.",
		LangEN: "Language set to %s.",
	},
}

// Text returns the localized message for key, falling back to the default locale.
func Text(key TextKey, lang Language) string {
	byLang, ok := texts[key]
	if !ok {
		return string(key)
	}
	if msg, ok := byLang[lang.OrDefault()]; ok {
		return msg
	}
	return byLang[DefaultLanguage]
}

var affirmativeTokens = map[Language][]string{
	LangPT: {"sim", "s", "✅"},
	LangEN: {"yes", "y", "✅"},
}

var negativeTokens = map[Language][]string{
	LangPT: {"não", "nao", "n", "❌"},
	LangEN: {"no", "n", "❌"},
}

// AffirmativeTokens lists the reply prefixes that approve a pending intent.
func AffirmativeTokens(lang Language) []string {
	return affirmativeTokens[lang.OrDefault()]
}

// NegativeTokens lists the reply prefixes that reject a pending intent.
func NegativeTokens(lang Language) []string {
	return negativeTokens[lang.OrDefault()]
}
