package trip

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	"github.com/Sebo-the-tramp/travelsync/internal/timeline"
)

var customStyle = getCustomStyle()

// renderer handles markdown rendering with syntax highlighting
type renderer struct {
	glamour *glamour.TermRenderer
	width   int
	cache   map[string]string
}

// newRenderer creates a new markdown renderer
func newRenderer(width int) (*renderer, error) {
	gr, err := glamour.NewTermRenderer(
		glamour.WithStyles(customStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return &renderer{
		glamour: gr,
		width:   width,
		cache:   map[string]string{},
	}, nil
}

// message renders a finalized message from its segments, or the raw text for
// a message still streaming. Reasoning segments render only when requested.
func (r *renderer) message(msg *timeline.Message, showReasoning bool) string {
	if !msg.Final {
		// Plain text while streaming; markdown waits for the final parse.
		return msg.Text
	}

	cacheKey := msg.ID + reasoningCacheSuffix(showReasoning)
	if rendered, ok := r.cache[cacheKey]; ok {
		return rendered
	}

	var b strings.Builder
	for _, segment := range msg.Segments {
		switch segment.Kind {
		case timeline.SegmentReasoning:
			if !showReasoning {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(thoughtLabelStyle.Render("Thinking:"))
			b.WriteString("\n")
			b.WriteString(thoughtStyle.Render(strings.TrimSpace(segment.Text)))

		case timeline.SegmentCode:
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			fenced := "```" + segment.Language + "\n" + segment.Text + "\n```"
			b.WriteString(r.markdown(fenced))

		case timeline.SegmentText:
			text := strings.TrimSpace(segment.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(r.markdown(text))
		}
	}

	rendered := b.String()
	r.cache[cacheKey] = rendered
	return rendered
}

// markdown renders markdown content with syntax highlighting
func (r *renderer) markdown(content string) string {
	rendered, err := r.glamour.Render(content)
	if err != nil {
		// Fall back to plain text on error
		return content
	}
	return strings.Trim(rendered, "\n")
}

// SetWidth rebuilds the renderer at a new wrap width.
func (r *renderer) SetWidth(width int) error {
	if r.width == width {
		return nil
	}
	rebuilt, err := newRenderer(width)
	if err != nil {
		return err
	}
	*r = *rebuilt
	return nil
}

func reasoningCacheSuffix(showReasoning bool) string {
	if showReasoning {
		return "/reasoning"
	}
	return ""
}

func getCustomStyle() ansi.StyleConfig {
	// Start with dark style and modify
	style := styles.DraculaStyleConfig
	zero := uint(0)
	style.Document.Margin = &zero
	style.CodeBlock.Margin = &zero
	style.CodeBlock.Indent = &zero
	style.CodeBlock.Prefix = ""
	style.CodeBlock.BlockPrefix = ""

	style.Code.Margin = &zero
	style.Code.Indent = &zero
	style.Code.Prefix = ""
	style.Code.Suffix = ""

	// Remove paragraph block prefix/suffix that adds newlines
	style.Paragraph.BlockPrefix = ""
	style.Paragraph.BlockSuffix = ""

	return style
}
