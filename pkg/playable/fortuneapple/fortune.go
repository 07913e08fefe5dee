package fortuneapple

import "casino-server/internal/rng"

// FortuneTeller supplies the message shown when a round ends
type FortuneTeller interface {
	Fortune(g rng.Generator) string
}

// StaticFortunes picks a fortune from a fixed list
type StaticFortunes []string

// DefaultFortunes is used when no FortuneTeller is configured
var DefaultFortunes = StaticFortunes{
	"The apple never falls far from a lucky tree.",
	"Fortune favors the patient picker.",
	"A bold bite today is a sweet memory tomorrow.",
	"Not every shiny apple is worth the climb.",
	"Your next orchard holds more than it seems.",
	"Know when to climb and when to come down.",
}

// Fortune returns a random fortune
func (s StaticFortunes) Fortune(g rng.Generator) string {
	if len(s) == 0 {
		return ""
	}

	return s[g.Intn(len(s))]
}
