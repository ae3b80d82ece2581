package attempt

import (
	"fmt"

	"github.com/saulo-duarte/quizsolver/internal/discovery"
)

type Summary struct {
	Attempt int `json:"attempt"`
	Correct int `json:"correct"`
	Total   int `json:"total"`
	discovery.Stats
}

func (s Summary) String() string {
	return fmt.Sprintf("Attempt %d got %d/%d correct (seen %d, know %d, confirming %d)",
		s.Attempt, s.Correct, s.Total, s.Seen, s.Known, s.Confirming)
}
