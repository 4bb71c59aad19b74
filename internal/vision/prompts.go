package vision

// VisionInstructions is the system prompt for artwork image analysis.
const VisionInstructions = `You are an expert art analyst. Examine the artwork image and describe what is literally visible: objects, colors, setting, light, human presence, composition, and mood. Name only what you can see; when the image gives no evidence for a field, answer "ambiguous" ("none" for season). Respond with JSON matching the provided schema and nothing else.`

// VisionPromptTemplate is the user prompt; the argument is the artwork
// title, which may be empty.
const VisionPromptTemplate = `Analyze this artwork: %s`
