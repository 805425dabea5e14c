package rewards

import (
	"sort"

	"golang.org/x/text/language"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
)

// DisplayInfo is a localized catalog entry.
type DisplayInfo struct {
	ID    string
	Name  string
	Emoji string
}

// Label renders the entry for display, e.g. "🚀 Space".
func (d DisplayInfo) Label() string {
	if d.Emoji == "" {
		return d.Name
	}
	return d.Emoji + " " + d.Name
}

// Kind separates reward presets from quiz themes.
type Kind string

const (
	KindReward Kind = "reward"
	KindTheme  Kind = "theme"
)

type catalogEntry struct {
	kind  Kind
	emoji string
	names []string // indexed like Catalog.tags
}

// Catalog is a read-only table of built-in rewards and themes with
// display names per locale.
type Catalog struct {
	tags    []language.Tag
	matcher language.Matcher
	entries map[string]catalogEntry
}

// DefaultCatalog returns the built-in catalog in English and Simplified
// Chinese. English is the fallback for every other locale.
func DefaultCatalog() *Catalog {
	tags := []language.Tag{language.English, language.SimplifiedChinese}
	return &Catalog{
		tags:    tags,
		matcher: language.NewMatcher(tags),
		entries: map[string]catalogEntry{
			"icecream": {KindReward, "🍦", []string{"Ice cream", "冰淇淋"}},
			"park":     {KindReward, "🛝", []string{"Trip to the park", "去公园玩"}},
			"cartoon":  {KindReward, "📺", []string{"Cartoon time", "看动画片"}},
			"sticker":  {KindReward, "⭐", []string{"Sticker", "贴纸"}},
			"story":    {KindReward, "📖", []string{"Bedtime story", "睡前故事"}},
			"toy":      {KindReward, "🧸", []string{"Small toy", "小玩具"}},

			"space":     {KindTheme, "🚀", []string{"Space", "太空"}},
			"animals":   {KindTheme, "🐼", []string{"Animals", "动物"}},
			"ocean":     {KindTheme, "🐠", []string{"Ocean", "海洋"}},
			"dinosaurs": {KindTheme, "🦕", []string{"Dinosaurs", "恐龙"}},
		},
	}
}

// Resolve returns the entry for id in the best matching locale.
func (c *Catalog) Resolve(id, locale string) (DisplayInfo, bool) {
	e, ok := c.entries[id]
	if !ok {
		return DisplayInfo{}, false
	}
	return DisplayInfo{ID: id, Name: e.names[c.index(locale)], Emoji: e.emoji}, true
}

// Tag returns the supported language tag that best matches locale.
func (c *Catalog) Tag(locale string) language.Tag {
	return c.tags[c.index(locale)]
}

// List returns all entries of a kind, sorted by ID.
func (c *Catalog) List(kind Kind, locale string) []DisplayInfo {
	idx := c.index(locale)
	var out []DisplayInfo
	for id, e := range c.entries {
		if e.kind == kind {
			out = append(out, DisplayInfo{ID: id, Name: e.names[idx], Emoji: e.emoji})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Kind reports the kind of a catalog entry.
func (c *Catalog) Kind(id string) (Kind, bool) {
	e, ok := c.entries[id]
	return e.kind, ok
}

// Reward builds a practice reward from a catalog preset.
func (c *Catalog) Reward(id, locale string) (practice.Reward, bool) {
	if k, ok := c.Kind(id); !ok || k != KindReward {
		return practice.Reward{}, false
	}
	info, _ := c.Resolve(id, locale)
	return practice.Reward{ID: id, Text: info.Name, Emoji: info.Emoji}, true
}

func (c *Catalog) index(locale string) int {
	_, idx := language.MatchStrings(c.matcher, locale)
	if idx < 0 || idx >= len(c.tags) {
		return 0
	}
	return idx
}
