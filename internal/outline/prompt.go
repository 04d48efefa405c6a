// Package outline owns the text contract between the generation pipeline
// and the language model: building the instruction prompt and parsing the
// model's response back into a validated deck.Outline.
package outline

import (
	"fmt"
	"strings"

	"github.com/slidewise/deckgen/internal/deck"
)

// styleGuidance maps each presentation style to the editorial instruction
// embedded in the prompt.
var styleGuidance = map[deck.Style]string{
	deck.StyleProfessional: "Use formal language, data-driven insights, and business terminology.",
	deck.StyleCasual:       "Use a conversational tone, relatable examples, and friendly language.",
	deck.StyleAcademic:     "Use scholarly language, precise terminology, and research-based content.",
}

// SystemPrompt returns the fixed system message for chat-style providers.
func SystemPrompt() string {
	return "You are an expert presentation content creator. " +
		"You specialize in well-structured, engaging, and informative slide content. " +
		"Always respond in exactly the plain-text format requested, with no commentary " +
		"before or after it."
}

// BuildPrompt renders a validated request into the generation instruction.
// It is a pure function: identical requests produce identical prompts.
// The output format it mandates is the grammar Parse expects.
func BuildPrompt(req deck.GenerationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a comprehensive presentation about %q with exactly %d slides.\n\n",
		req.Topic, req.SlideCount)

	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Language: %s\n", req.Language)
	fmt.Fprintf(&b, "- Style: %s\n", styleGuidance[req.Style])
	b.WriteString("- Each slide must have a clear title and 3-5 bullet points\n")
	b.WriteString("- Content should be informative, well-structured, and engaging\n")
	b.WriteString("- The first slide should introduce the topic and the last slide should conclude it\n")
	if req.IncludeImages {
		b.WriteString("- End every slide block with one Image: line describing a supporting image\n")
	}

	b.WriteString("\nReturn ONLY the presentation in exactly this plain-text format:\n\n")
	b.WriteString("# <presentation title>\n")
	b.WriteString("> <two or three sentence summary of the presentation>\n\n")
	b.WriteString("## Slide 1\n")
	b.WriteString("Title: <short slide title>\n")
	b.WriteString("- <bullet point>\n")
	b.WriteString("- <bullet point>\n")
	b.WriteString("- <bullet point>\n")
	if req.IncludeImages {
		b.WriteString("Image: <one-line description of a supporting image>\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Repeat the \"## Slide N\" block for every slide, numbered 1 through %d. ",
		req.SlideCount)
	b.WriteString("Keep the field order exactly as shown. Do not wrap the output in code fences ")
	b.WriteString("and do not add any text outside the format.")

	return b.String()
}
