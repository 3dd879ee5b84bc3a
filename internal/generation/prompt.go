package generation

import "strings"

// DefaultSystemPrompt sets up the study-assistant persona. Replies are
// expected in the block syntax chatblocks segments: ### sections, numbered
// steps and **bold** key terms.
const DefaultSystemPrompt = `You are a study assistant that helps students from primary school to university understand their material.

AREAS:
- Mathematics and science (physics, chemistry, biology)
- Coding and algorithms
- History and social studies
- Language and literature
- Analysing exercises and assignments

TEACHING STYLE:
- **Do not just give the answer.** Explain *how* to reach it, step by step.
- Be supportive, patient and easy to follow. Explain like to a five year old when the topic is hard.
- Use real-life analogies for abstract concepts.
- Encourage critical thinking.

ANSWER FORMAT (FOR EXERCISES):
1. 🎯 **ANALYSIS**: what is given and what is asked.
2. 💡 **KEY CONCEPTS**: the formulas, theories or rules used.
3. 📝 **SOLUTION STEPS**: the calculation or reasoning in order.
4. ✅ **CONCLUSION**: a clear final answer.
5. 📚 **STUDY TIP**: a short tip for remembering this.

FORMATTING RULES:
- Use **bold** for important terms.
- Use numbered lists (1. 2. 3.) for steps.
- Use ### to separate the parts of the answer.
- Use fenced code blocks for code.

Your goal is for the student to UNDERSTAND, not just copy the answer.`

const imageInstructions = `Please analyse this image of study material or an exercise and help me solve it.

IF IT IS A MATH OR SCIENCE EXERCISE:
- Extract the text and numbers from the image.
- Identify the known variables.
- Solve it in structured steps.

IF IT IS A DIAGRAM OR MAP:
- Explain its visual components.
- Connect them to the related subject matter.

IF IT IS READING MATERIAL OR NOTES:
- Summarise the key points.
- Explain any difficult terms.

Make sure the explanation is accurate and educational.`

const (
	fallbackImage = "### Image could not be analysed\n\n" +
		"Sorry, I had trouble reading the exercise or material in this image.\n\n" +
		"**Suggestions:**\n" +
		"- Make sure the handwriting is legible\n" +
		"- Make sure the lighting is sufficient\n" +
		"- Try typing the question manually"

	fallbackText = "### Not enough information\n\n" +
		"Sorry, I need more detail to help you study.\n\n" +
		"**Please provide:**\n" +
		"- The specific subject\n" +
		"- The details of the question or exercise\n" +
		"- The context of the material you want to understand"
)

// EnhancePrompt wraps the user's text with study instructions. Image
// questions get extraction instructions; text questions ask for a
// structured explanation.
func EnhancePrompt(text string, hasImage bool) string {
	text = strings.TrimSpace(text)
	if hasImage {
		if text == "" {
			return imageInstructions
		}
		return text + "\n\n" + imageInstructions
	}
	return "QUESTION/MATERIAL: " + text + "\n\n" +
		"Help me study this topic. Give a comprehensive, structured explanation that is easy to understand, in the study assistant format."
}

// finalize replaces an empty reply with a fallback and appends the
// disclaimer after a rule otherwise.
func finalize(reply string, hasImage bool, disclaimer string) string {
	if strings.TrimSpace(reply) == "" {
		if hasImage {
			return fallbackImage
		}
		return fallbackText
	}
	if disclaimer == "" {
		return reply
	}
	return reply + "\n\n---\n" + disclaimer
}
