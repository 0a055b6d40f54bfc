package persona

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Profile is the grounding material the agent answers from. The resume is
// consumed as plain text: extracting it from a PDF export is up to whatever
// produced the file.
type Profile struct {
	Name    string
	Summary string
	Resume  string
}

// LoadProfile reads the summary and resume files. The summary is required,
// the resume is optional.
func LoadProfile(name, summaryFile, resumeFile string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("persona name is required")
	}

	summary, err := os.ReadFile(summaryFile)
	if err != nil {
		return nil, fmt.Errorf("reading summary file: %w", err)
	}

	profile := &Profile{
		Name:    name,
		Summary: strings.TrimSpace(string(summary)),
	}

	if resumeFile != "" {
		resume, err := os.ReadFile(resumeFile)
		if err != nil {
			return nil, fmt.Errorf("reading resume file: %w", err)
		}
		profile.Resume = strings.TrimSpace(string(resume))
	}

	return profile, nil
}

// SystemPrompt builds the instruction keeping the model in character and
// telling it when to reach for the two tools.
func (p *Profile) SystemPrompt() string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are acting as %s. You are answering questions on %s's website, "+
		"particularly questions related to %s's career, background, skills and experience. "+
		"Your responsibility is to represent %s for interactions on the website as faithfully as possible. "+
		"You are given a summary of %s's background and resume which you can use to answer questions. "+
		"Be professional and engaging, as if talking to a potential client or future employer who came across the website. "+
		"If you don't know the answer to any question, use your record_unknown_question tool to record the question that you couldn't answer, "+
		"even if it's about something trivial or unrelated to career. "+
		"If the user is engaging in discussion, try to steer them towards getting in touch via email; "+
		"ask for their email and record it using your record_user_details tool. ",
		p.Name, p.Name, p.Name, p.Name, p.Name)

	fmt.Fprintf(&b, "\n\n## Summary:\n%s\n\n## Resume:\n%s\n\n", p.Summary, p.Resume)
	fmt.Fprintf(&b, "With this context, please chat with the user, always staying in character as %s.", p.Name)

	return b.String()
}
