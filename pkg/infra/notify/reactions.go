package notify

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/tnylea/failwhale/pkg/domain/model"
)

// Reaction is the visual rendering of a notification kind
type Reaction struct {
	Emoji    string `toml:"emoji"`
	ImageURL string `toml:"image_url"`
	Color    string `toml:"color"`
}

// DefaultReactions returns the built-in rendering table
func DefaultReactions() map[model.NotificationKind]Reaction {
	return map[model.NotificationKind]Reaction{
		model.NotificationStarted: {
			Emoji: ":hourglass_flowing_sand:",
			Color: "#439FE0",
		},
		model.NotificationSuccess: {
			Emoji: ":white_check_mark:",
			Color: "good",
		},
		model.NotificationFailure: {
			Emoji: ":whale:",
			Color: "danger",
		},
	}
}

// LoadReactions reads a TOML reaction table and merges it over the defaults.
// Kinds absent from the file keep their built-in rendering.
//
// Example:
//
//	[reactions.failure]
//	emoji = ":fire:"
//	image_url = "https://example.com/sad-whale.gif"
func LoadReactions(path string) (map[model.NotificationKind]Reaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read reaction table", goerr.V("path", path))
	}

	var doc struct {
		Reactions map[string]Reaction `toml:"reactions"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse reaction table", goerr.V("path", path))
	}

	reactions := DefaultReactions()
	for key, r := range doc.Reactions {
		kind := model.NotificationKind(key)
		if _, ok := reactions[kind]; !ok {
			return nil, goerr.New("unknown notification kind in reaction table",
				goerr.V("kind", key), goerr.V("path", path))
		}
		merged := reactions[kind]
		if r.Emoji != "" {
			merged.Emoji = r.Emoji
		}
		if r.ImageURL != "" {
			merged.ImageURL = r.ImageURL
		}
		if r.Color != "" {
			merged.Color = r.Color
		}
		reactions[kind] = merged
	}

	return reactions, nil
}
