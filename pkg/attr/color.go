package attr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/topicnet/pkg/topicgraph"
)

const (
	// ColorMultiplier spreads consecutive topic IDs across the RGB cube.
	ColorMultiplier = 5000000

	// NeutralGray is the color of entities with an unknown topic.
	NeutralGray = "#808080"
)

// ColorOf returns the display color for a topic ID.
//
// Integer IDs map to "#" followed by the lowercase, zero-padded hex of the
// low 24 bits of id*ColorMultiplier. Negative products use their
// two's-complement bits. The unknown sentinel, empty IDs and IDs that are not
// integers all map to [NeutralGray]. Distinct topics may collide.
func ColorOf(topicID string) string {
	s := strings.TrimSpace(topicID)
	if s == "" || s == topicgraph.UnknownTopic {
		return NeutralGray
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return NeutralGray
	}
	return fmt.Sprintf("#%06x", (n*ColorMultiplier)&0xFFFFFF)
}
