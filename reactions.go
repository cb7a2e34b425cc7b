package main

import (
	"github.com/google/go-github/v74/github"
)

// reactionDescriptor pairs the display glyph with its icon resource.
type reactionDescriptor struct {
	Label string
	Icon  string
}

// reactionTable maps the 8 supported reaction contents to display data.
// Read-only after initialization.
var reactionTable = map[string]reactionDescriptor{
	"THUMBS_UP":   {Label: "👍", Icon: "resources/icons/reactions/thumbs_up.png"},
	"THUMBS_DOWN": {Label: "👎", Icon: "resources/icons/reactions/thumbs_down.png"},
	"LAUGH":       {Label: "😄", Icon: "resources/icons/reactions/laugh.png"},
	"HOORAY":      {Label: "🎉", Icon: "resources/icons/reactions/hooray.png"},
	"CONFUSED":    {Label: "😕", Icon: "resources/icons/reactions/confused.png"},
	"HEART":       {Label: "❤️", Icon: "resources/icons/reactions/heart.png"},
	"ROCKET":      {Label: "🚀", Icon: "resources/icons/reactions/rocket.png"},
	"EYES":        {Label: "👀", Icon: "resources/icons/reactions/eyes.png"},
}

// restReactionContent maps the REST content spellings to the canonical
// (GraphQL enum) spellings.
var restReactionContent = map[string]string{
	"+1":       "THUMBS_UP",
	"-1":       "THUMBS_DOWN",
	"laugh":    "LAUGH",
	"hooray":   "HOORAY",
	"confused": "CONFUSED",
	"heart":    "HEART",
	"rocket":   "ROCKET",
	"eyes":     "EYES",
}

// LookupReaction resolves a reaction content identifier (either spelling)
// to its display data. Anything outside the supported set is a
// *LookupError.
func LookupReaction(content string) (Reaction, error) {
	key := content
	if canonical, ok := restReactionContent[content]; ok {
		key = canonical
	}
	desc, ok := reactionTable[key]
	if !ok {
		return Reaction{}, &LookupError{Content: content}
	}
	return Reaction{Label: desc.Label, Icon: desc.Icon}, nil
}

// reactionCount is one upstream reaction-group tally.
type reactionCount struct {
	Content          string
	Count            int
	ViewerHasReacted bool
}

// summarizeReactions builds the canonical reaction list, keeping only
// groups someone actually reacted with. An unknown content fails the whole
// summary even at count zero.
func summarizeReactions(groups []reactionCount) ([]Reaction, error) {
	var out []Reaction
	for _, g := range groups {
		r, err := LookupReaction(g.Content)
		if err != nil {
			return nil, err
		}
		if g.Count == 0 {
			continue
		}
		r.Count = g.Count
		r.ViewerHasReacted = g.ViewerHasReacted
		out = append(out, r)
	}
	return out, nil
}

// restReactionOrder fixes the summary order for REST payloads, which carry
// per-content counters rather than a group list.
var restReactionOrder = []string{"+1", "-1", "laugh", "hooray", "confused", "heart", "rocket", "eyes"}

// SummarizeRESTReactions converts a REST reaction rollup. The REST summary
// does not say which reactions the viewer made.
func SummarizeRESTReactions(r *github.Reactions) []Reaction {
	if r == nil {
		return nil
	}
	counts := map[string]int{
		"+1":       r.GetPlusOne(),
		"-1":       r.GetMinusOne(),
		"laugh":    r.GetLaugh(),
		"hooray":   r.GetHooray(),
		"confused": r.GetConfused(),
		"heart":    r.GetHeart(),
		"rocket":   r.GetRocket(),
		"eyes":     r.GetEyes(),
	}
	var groups []reactionCount
	for _, content := range restReactionOrder {
		groups = append(groups, reactionCount{Content: content, Count: counts[content]})
	}
	// Contents above are all in the fixed set.
	out, _ := summarizeReactions(groups)
	return out
}
