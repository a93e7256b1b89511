package timeline

import (
	"regexp"
	"strings"
)

// SegmentKind tags the display treatment of a piece of message content.
type SegmentKind int

const (
	// SegmentText is plain prose rendered as markdown.
	SegmentText SegmentKind = iota
	// SegmentCode is a fenced code block with an optional language.
	SegmentCode
	// SegmentReasoning is the assistant's thinking, shown collapsed.
	SegmentReasoning
)

// Segment is one tagged piece of a finalized message.
type Segment struct {
	Kind     SegmentKind
	Text     string
	Language string
}

var (
	// Matches a <think>…</think> span; an unterminated open tag captures to
	// the end of the content so partial reasoning is still tagged correctly.
	reasoningRegexp = regexp.MustCompile(`(?s)<think>(.*?)(?:</think>|\z)`)

	// Matches fenced code blocks with capture groups for language and body.
	codeBlockRegexp = regexp.MustCompile("(?sm)^```([a-zA-Z]*)\\n(.*?)^```")
)

// ParseSegments splits message content into tagged segments. It runs once at
// ingestion time (history load or stream finalization), never on render.
func ParseSegments(content string) []Segment {
	var result []Segment

	matches := reasoningRegexp.FindAllStringSubmatchIndex(content, -1)
	lastEnd := 0
	for _, match := range matches {
		fullStart, fullEnd := match[0], match[1]
		bodyStart, bodyEnd := match[2], match[3]

		result = append(result, parseProse(content[lastEnd:fullStart])...)
		if body := strings.TrimSpace(content[bodyStart:bodyEnd]); body != "" {
			result = append(result, Segment{Kind: SegmentReasoning, Text: body})
		}
		lastEnd = fullEnd
	}
	result = append(result, parseProse(content[lastEnd:])...)

	return result
}

// parseProse splits reasoning-free content into text and code segments.
func parseProse(content string) []Segment {
	var result []Segment

	matches := codeBlockRegexp.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		if content != "" {
			result = append(result, Segment{Kind: SegmentText, Text: content})
		}
		return result
	}

	lastEnd := 0
	for _, match := range matches {
		fullStart, fullEnd := match[0], match[1]
		langStart, langEnd := match[2], match[3]
		codeStart, codeEnd := match[4], match[5]

		if fullStart > lastEnd {
			if text := content[lastEnd:fullStart]; text != "" {
				result = append(result, Segment{Kind: SegmentText, Text: text})
			}
		}

		language := ""
		if langStart >= 0 && langEnd >= 0 {
			language = content[langStart:langEnd]
		}
		if language == "" {
			language = "text"
		}

		code := ""
		if codeStart >= 0 && codeEnd >= 0 {
			code = content[codeStart:codeEnd]
		}

		result = append(result, Segment{
			Kind:     SegmentCode,
			Text:     strings.Trim(code, "\n"),
			Language: language,
		})

		lastEnd = fullEnd
	}

	if lastEnd < len(content) {
		if text := content[lastEnd:]; text != "" {
			result = append(result, Segment{Kind: SegmentText, Text: text})
		}
	}

	return result
}
