package explain

import (
	"fmt"
	"strings"

	"github.com/lauralie13/Spy-Academy/internal/catalog"
)

const systemPrompt = `You are an instructor at a cybersecurity academy for beginners. You explain defensive security concepts clearly and accurately. Never give instructions for attacking systems the learner does not own.`

var modeInstructions = map[catalog.ExplanationMode]string{
	catalog.ModeAnalogy: "Explain it with one everyday analogy, then map the analogy back to the concept.",
	catalog.ModePicture: "Describe it as a small ASCII diagram or a word picture the learner can visualize.",
	catalog.ModeSteps:   "Explain it as 3-5 short numbered steps.",
	catalog.ModeStory:   "Tell a very short story (3-4 sentences) where a defender runs into this exact situation.",
	catalog.ModeTable:   "Present it as a plain-text table comparing the correct option with the most tempting wrong one.",
	catalog.ModeCLI:     "Show a short, harmless command-line example (read-only commands only) and what its output tells the learner.",
}

func buildUserMessage(q catalog.Question, mode catalog.ExplanationMode) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Domain: %s\n", q.Domain)
	fmt.Fprintf(&b, "Question: %s\n", q.Stem)
	b.WriteString("Options:\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", q.CorrectOption())
	if q.Rationale != "" {
		fmt.Fprintf(&b, "Existing rationale: %s\n", q.Rationale)
	}

	instr, ok := modeInstructions[mode]
	if !ok {
		instr = "Explain it in a different way from the existing rationale."
	}
	fmt.Fprintf(&b, "\nStyle (%s): %s\n", mode, instr)
	b.WriteString(`
Instructions:
1. Explain why the correct answer is right. Do not just restate it.
2. Use plain ASCII text. No Markdown headings.
3. Keep it under 120 words.
4. Set "mode" to the requested style.`)

	return b.String()
}
