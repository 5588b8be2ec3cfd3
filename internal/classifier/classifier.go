package classifier

import (
	"fmt"
	"regexp"
	"strconv"

	"trade-reconciler/internal/model"
)

// Kind discriminates what a transcript line turned out to be.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindItemEvent
	KindPageMarker
	KindCoordinateMarker
)

// Result carries the classification of one raw line. Only the field
// matching Kind is meaningful.
type Result struct {
	Kind   Kind
	Event  model.ItemEvent
	Page   model.PageMarker
	Marker model.CoordinateMarker
}

// Rules holds the textual patterns the classifier compiles. They form the
// wire-format contract with the game's container log and come from config.
type Rules struct {
	ActionColor string
	ActionPlain string
	Page        string
	Coordinate  string
	CoordSuffix string
}

// Classifier turns raw transcript lines into events and markers. It is a
// total function over strings: anything unmatched is Unrecognized, never
// an error.
type Classifier struct {
	actionColor *regexp.Regexp
	actionPlain *regexp.Regexp
	page        *regexp.Regexp
	coordManual *regexp.Regexp
	coordAuto   *regexp.Regexp
	colorCodes  *regexp.Regexp
}

func New(rules Rules) (*Classifier, error) {
	actionColor, err := regexp.Compile(rules.ActionColor)
	if err != nil {
		return nil, fmt.Errorf("invalid color action pattern: %w", err)
	}
	actionPlain, err := regexp.Compile(rules.ActionPlain)
	if err != nil {
		return nil, fmt.Errorf("invalid plain action pattern: %w", err)
	}
	page, err := regexp.Compile(rules.Page)
	if err != nil {
		return nil, fmt.Errorf("invalid page pattern: %w", err)
	}
	coordManual, err := regexp.Compile(rules.Coordinate)
	if err != nil {
		return nil, fmt.Errorf("invalid coordinate pattern: %w", err)
	}
	// The automatic marker is the manual shape followed by the fixed
	// location suffix the game client appends.
	coordAuto, err := regexp.Compile(rules.Coordinate + `\s*` + regexp.QuoteMeta(rules.CoordSuffix))
	if err != nil {
		return nil, fmt.Errorf("invalid automatic coordinate pattern: %w", err)
	}

	return &Classifier{
		actionColor: actionColor,
		actionPlain: actionPlain,
		page:        page,
		coordManual: coordManual,
		coordAuto:   coordAuto,
		colorCodes:  regexp.MustCompile(`§.`),
	}, nil
}

// StripColorCodes removes Minecraft §-escape formatting codes.
func (c *Classifier) StripColorCodes(line string) string {
	return c.colorCodes.ReplaceAllString(line, "")
}

// IsPage reports whether the line matches the page-marker pattern anywhere.
func (c *Classifier) IsPage(line string) bool {
	return c.page.MatchString(line)
}

// Classify maps one raw line to an item event, page marker, coordinate
// marker or Unrecognized.
func (c *Classifier) Classify(line string) Result {
	// Color-code template first, plain template on the stripped line after.
	if m := c.actionColor.FindStringSubmatch(line); m != nil {
		return itemEvent(m)
	}
	if m := c.actionPlain.FindStringSubmatch(c.StripColorCodes(line)); m != nil {
		return itemEvent(m)
	}

	if m := c.page.FindStringSubmatch(line); m != nil {
		current, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		return Result{Kind: KindPageMarker, Page: model.PageMarker{Current: current, Total: total}}
	}

	// Automatic form is a strict superset of the manual pattern, so it is
	// tried first.
	if m := c.coordAuto.FindStringSubmatch(line); m != nil {
		return coordinateMarker(m, true)
	}
	if m := c.coordManual.FindStringSubmatch(line); m != nil {
		return coordinateMarker(m, false)
	}

	return Result{Kind: KindUnrecognized}
}

func itemEvent(m []string) Result {
	// Groups: 1 relative time, 2 time unit, 3 player, 4 action, 5 count, 6 item.
	count, _ := strconv.Atoi(m[5])
	if m[4] == "removed" {
		count = -count
	}
	return Result{Kind: KindItemEvent, Event: model.ItemEvent{
		Player: m[3],
		Item:   m[6],
		Count:  count,
	}}
}

func coordinateMarker(m []string, automatic bool) Result {
	x, _ := strconv.Atoi(m[1])
	y, _ := strconv.Atoi(m[2])
	z, _ := strconv.Atoi(m[3])
	return Result{Kind: KindCoordinateMarker, Marker: model.CoordinateMarker{
		Coordinate: model.Coordinate{X: x, Y: y, Z: z},
		Automatic:  automatic,
	}}
}
