package util

import (
	"fmt"
	"math/rand"
	"time"
)

var adjectives = []string{
	"Lucky", "Bold", "Quick", "Steady", "Sly", "Cool", "Wild", "Sharp", "Happy", "Grand",
	"Red", "Blue", "Green", "Golden", "Silver", "Fuzzy", "Smiling", "Tall", "Prime", "Daring",
}

var animals = []string{
	"Dog", "Cat", "Otter", "Shark", "Hippo", "Giraffe", "Lion", "Tiger", "Bear", "Fox",
	"Wolf", "Panda", "Eagle", "Okapi", "Rhino", "Gerbil", "Lizard", "Dolphin", "Badger", "Heron",
}

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

// GetRandomName returns a guest name by combining an adjective with an animal
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
