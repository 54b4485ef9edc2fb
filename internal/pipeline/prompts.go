package pipeline

// Fixed instruction templates. Model behavior (monochrome line art,
// photorealism) is guaranteed only by this wording, never verified locally.

const enhanceInstruction = "Expand this room description into 1-2 short sentences with key details. " +
	"Be very brief (under 20 words).\n\nRoom: "

const sketchInstruction = "Create a clean black-and-white architectural line drawing sketch. " +
	"Pure black lines on white background. No shading, no color, no grayscale. " +
	"Show perspective, layout, and all furniture/objects clearly.\n\nRoom: "

const renderInstruction = "Transform this into a high-end 3D render. " +
	"Style: photorealistic architectural visualization (archviz). " +
	"Ultra-high resolution textures, ray-traced lighting, soft shadows, volumetric light, " +
	"realistic reflections, micro-surface details, natural color grading, and lens effects."

func enhancePrompt(briefText string) string {
	return enhanceInstruction + Truncate(briefText, MaxPromptChars)
}

func sketchPrompt(enhanced string) string {
	return sketchInstruction + enhanced
}
