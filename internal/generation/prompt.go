package generation

import (
	"fmt"
	"strings"
)

// fixed style instruction applied to every generation
const ghibliStyle = "Studio Ghibli anime style, soft watercolor background, warm and muted color palette, " +
	"gentle thin outlines, peaceful atmosphere, hand-drawn aesthetic with a vintage paper texture."

// steers the text provider away from known failure modes (duplicated
// subjects, deformation artifacts)
const negativePrompt = "multiple women, multiple men, multiple people, duplicated characters, twins, " +
	"two people, three people, ugly, deformed, noisy, blurry, low-contrast, grainy"

// composes the instruction for the image-conditioned path: redraw the
// reference in the house style, keeping subject and composition
func buildImagePrompt(userPrompt string) string {
	guidance := strings.TrimSpace(userPrompt)
	if guidance == "" {
		guidance = "the subject in the image"
	}

	return fmt.Sprintf(
		"Redraw the entire image in the style of %s Maintain the original subject, colors, and composition. User guidance: '%s'.",
		ghibliStyle, guidance,
	)
}

// composes the prompt for the text-conditioned path
func buildTextPrompt(userPrompt string) string {
	return fmt.Sprintf("%s, %s", strings.TrimSpace(userPrompt), ghibliStyle)
}
