package segmenter

import (
	"trade-reconciler/internal/classifier"
	"trade-reconciler/internal/model"
)

// Mode is the segmentation state. Automatic markers are appended by the
// game client after the event line they annotate, so automatic mode
// attaches each line's predecessor instead of the line itself.
type Mode int

const (
	ModeNone Mode = iota
	ModeManual
	ModeAutomatic
)

// syntheticClose terminates an automatic-mode session at end of input so
// downstream consumers see an explicit pagination close.
const syntheticClose = "f1/1"

// Segmenter partitions a transcript into per-coordinate trading sessions.
// It is single-use: build one per transcript.
type Segmenter struct {
	classifier *classifier.Classifier

	mode       Mode
	current    model.Coordinate
	hasCurrent bool

	order    []model.Coordinate
	sessions map[model.Coordinate]*model.TradeSession
}

func New(c *classifier.Classifier) *Segmenter {
	return &Segmenter{
		classifier: c,
		sessions:   make(map[model.Coordinate]*model.TradeSession),
	}
}

// Segment consumes the whole transcript and returns the sessions in
// first-seen coordinate order. Re-encountering a coordinate appends to its
// existing session. Lines seen before any marker are discarded.
func (s *Segmenter) Segment(lines []string) []model.TradeSession {
	for i, line := range lines {
		res := s.classifier.Classify(line)

		if res.Kind == classifier.KindCoordinateMarker {
			s.setCurrent(res.Marker.Coordinate)
			if res.Marker.Automatic {
				s.mode = ModeAutomatic
				// The marker annotates the line before it.
				if i > 0 {
					s.attachBehind(lines[i-1])
				}
			} else {
				s.mode = ModeManual
			}
			continue
		}

		switch s.mode {
		case ModeAutomatic:
			if i > 0 {
				s.attachBehind(lines[i-1])
			}
		case ModeManual:
			s.append(line)
		case ModeNone:
			// No session to attach to yet.
		}
	}

	// In automatic mode the final line has not been attached yet; the
	// synthetic page marker plays the role of the line after it.
	if s.mode == ModeAutomatic && len(lines) > 0 {
		s.attachBehind(lines[len(lines)-1])
		s.append(syntheticClose)
	}

	out := make([]model.TradeSession, 0, len(s.order))
	for _, coord := range s.order {
		out = append(out, *s.sessions[coord])
	}
	return out
}

func (s *Segmenter) setCurrent(coord model.Coordinate) {
	s.current = coord
	s.hasCurrent = true
	if _, ok := s.sessions[coord]; !ok {
		s.sessions[coord] = &model.TradeSession{Coordinate: coord}
		s.order = append(s.order, coord)
	}
}

// attachBehind attaches the look-behind payload, unless it is a pagination
// boundary rather than a trade line.
func (s *Segmenter) attachBehind(prev string) {
	if s.classifier.IsPage(prev) {
		return
	}
	s.append(prev)
}

func (s *Segmenter) append(line string) {
	if !s.hasCurrent {
		return
	}
	sess := s.sessions[s.current]
	sess.Lines = append(sess.Lines, line)
}
