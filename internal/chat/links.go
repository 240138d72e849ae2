package chat

import (
	"fmt"
	"regexp"
)

// SegmentKind distinguishes plain text from hyperlinks in rendered output.
type SegmentKind int

const (
	PlainText SegmentKind = iota
	Hyperlink
)

// Segment is one span of message text. Concatenating the Values of all
// segments for a message reproduces the original text exactly.
type Segment struct {
	Kind  SegmentKind
	Value string
}

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Segments splits message text into plain-text and hyperlink spans in
// left-to-right order, with no gaps or overlaps. Non-string values are
// coerced to their textual representation and returned as a single
// plain-text segment; nil yields an empty plain-text segment.
func Segments(v any) []Segment {
	text, ok := v.(string)
	if !ok {
		if v == nil {
			return []Segment{{Kind: PlainText, Value: ""}}
		}
		return []Segment{{Kind: PlainText, Value: fmt.Sprint(v)}}
	}

	var segs []Segment
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segs = append(segs, Segment{Kind: PlainText, Value: text[last:loc[0]]})
		}
		segs = append(segs, Segment{Kind: Hyperlink, Value: text[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(text) || len(segs) == 0 {
		segs = append(segs, Segment{Kind: PlainText, Value: text[last:]})
	}
	return segs
}
