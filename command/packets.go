package command

import ns "github.com/go-mclib/mcserver/net_structures"

const (
	// IDCommands is the clientbound graph packet. spec.md §4.J fixes the
	// graph's own wire shape but not a packet id; this follows the id the
	// vanilla 1.21.x protocol itself uses for Commands.
	IDCommands ns.VarInt = 0x11

	// IDRequestCommandSuggestions is serverbound: a client asking for tab
	// completions for a partially typed command.
	IDRequestCommandSuggestions ns.VarInt = 0x0A

	// IDCommandSuggestionsResponse is "Command Suggestions Response",
	// spec.md §4.J's `0x0F`.
	IDCommandSuggestionsResponse ns.VarInt = 0x0F
)

// RequestCommandSuggestionsData is the serverbound suggestions request.
type RequestCommandSuggestionsData struct {
	TransactionID ns.VarInt
	Text          ns.String
}

// SuggestionEntry is one (match, tooltip?) pair of a suggestions response.
type SuggestionEntry struct {
	Match   ns.String
	Tooltip ns.PrefixedOptional[ns.NBT]
}

// CommandSuggestionsResponseData is "Command Suggestions Response" (0x0F).
type CommandSuggestionsResponseData struct {
	TransactionID ns.VarInt
	Start         ns.VarInt
	Length        ns.VarInt
	Count         ns.VarInt
	Entries       []SuggestionEntry
}

// NewSuggestionEntry builds an entry with no tooltip.
func NewSuggestionEntry(match string) SuggestionEntry {
	return SuggestionEntry{Match: ns.String(match)}
}

// NewSuggestionEntryWithTooltip builds an entry carrying an NBT string atom
// tooltip, per spec.md §4.J.
func NewSuggestionEntryWithTooltip(match, tooltip string) SuggestionEntry {
	return SuggestionEntry{
		Match:   ns.String(match),
		Tooltip: ns.PrefixedOptional[ns.NBT]{Present: true, Value: ns.NewNBT(tooltip)},
	}
}

// NewCommandSuggestionsResponse builds the response body for a request,
// deriving Count from len(entries).
func NewCommandSuggestionsResponse(transactionID int32, start, length int32, entries []SuggestionEntry) *CommandSuggestionsResponseData {
	return &CommandSuggestionsResponseData{
		TransactionID: ns.VarInt(transactionID),
		Start:         ns.VarInt(start),
		Length:        ns.VarInt(length),
		Count:         ns.VarInt(len(entries)),
		Entries:       entries,
	}
}
