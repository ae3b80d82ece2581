package canvas

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrMissingIdentifier = errors.New("quiz url is missing an identifier")

type QuizIdentifiers struct {
	Origin   string
	CourseID string
	QuizID   string
}

func (ids QuizIdentifiers) Validate() error {
	switch {
	case ids.Origin == "":
		return fmt.Errorf("%w: origin", ErrMissingIdentifier)
	case ids.CourseID == "":
		return fmt.Errorf("%w: course id", ErrMissingIdentifier)
	case ids.QuizID == "":
		return fmt.Errorf("%w: quiz id", ErrMissingIdentifier)
	}
	return nil
}

// ParseQuizURL pulls the origin, course id and quiz id out of a quiz URL such
// as https://canvas.example.edu/courses/123/quizzes/456. Identifiers that are
// not present come back empty.
func ParseQuizURL(raw string) (QuizIdentifiers, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return QuizIdentifiers{}, fmt.Errorf("parse quiz url: %w", err)
	}

	var ids QuizIdentifiers
	if u.Scheme != "" && u.Host != "" {
		ids.Origin = u.Scheme + "://" + u.Host
	}

	parts := strings.Split(u.Path, "/")
	for i := 0; i < len(parts)-1; i++ {
		switch parts[i] {
		case "courses":
			ids.CourseID = parts[i+1]
			i++
		case "quizzes":
			ids.QuizID = parts[i+1]
			i++
		}
	}
	return ids, nil
}
