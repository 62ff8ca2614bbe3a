package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/educhanakya/campus-api/model"
	"github.com/educhanakya/campus-api/utils"
)

// assistantInstruction is the system prompt for the campus chat assistant
const assistantInstruction = "You are EduChanakya, a helpful AI assistant for a Virtual College platform. " +
	"When asked for learning resources, ALWAYS recommend specific, high-quality external resources " +
	"(Coursera, edX, YouTube channels like FreeCodeCamp, official documentation) from around the world. " +
	"Do not limit your answers to internal data. Be concise and encouraging."

// ProjectAnalysis is the AI-inferred metadata for an uploaded project file
type ProjectAnalysis struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Complexity  int      `json:"complexity"`
	Tags        []string `json:"tags"`
}

// IdeaAnalysis is the AI-suggested skill/role breakdown for an idea
type IdeaAnalysis struct {
	Skills []string `json:"skills"`
	Roles  []string `json:"roles"`
}

// AnalyzeProjectFile infers title, description, complexity and tags for an
// uploaded project file. contentPreview may be empty; when present (e.g.
// text extracted from a PDF) it is included in the prompt.
func (c *Client) AnalyzeProjectFile(ctx context.Context, filename string, sizeBytes int64, contentPreview string) (*ProjectAnalysis, error) {
	prompt := fmt.Sprintf(
		"Analyze a hypothetical code project file with name %q and size %d bytes.\n"+
			"Infer a professional Title, a short Description (max 2 sentences), a Complexity Score (0-100), and 3-5 technical Tags.\n"+
			"Return JSON.", filename, sizeBytes)
	if contentPreview != "" {
		prompt += fmt.Sprintf("\nAn excerpt of the file contents:\n%s", truncate(contentPreview, 4000))
	}

	text, err := c.generateContent(ctx, generateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &Schema{
				Type: "object",
				Properties: map[string]Schema{
					"title":       {Type: "string"},
					"description": {Type: "string"},
					"complexity":  {Type: "integer"},
					"tags":        {Type: "array", Items: &Schema{Type: "string"}},
				},
				Required: []string{"title", "description", "complexity", "tags"},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var analysis ProjectAnalysis
	if err := utils.ExtractJSONTo(text, &analysis); err != nil {
		return nil, fmt.Errorf("project analysis: %w", err)
	}
	return &analysis, nil
}

// GenerateCurriculum creates a 4-step learning curriculum for a goal
func (c *Client) GenerateCurriculum(ctx context.Context, goal string) ([]model.LearningPathStep, error) {
	prompt := fmt.Sprintf("Create a 4-step learning curriculum for a student wanting to: %q. Return JSON.", goal)

	text, err := c.generateContent(ctx, generateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &Schema{
				Type: "array",
				Items: &Schema{
					Type: "object",
					Properties: map[string]Schema{
						"title":          {Type: "string"},
						"description":    {Type: "string"},
						"estimatedHours": {Type: "integer"},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var steps []model.LearningPathStep
	if err := utils.ExtractJSONTo(text, &steps); err != nil {
		return nil, fmt.Errorf("curriculum: %w", err)
	}
	return steps, nil
}

// CritiqueProject performs a deep review of a project
func (c *Client) CritiqueProject(ctx context.Context, project model.Project) (*model.ProjectCritique, error) {
	prompt := fmt.Sprintf(
		"Perform a deep code review of this project:\n"+
			"Title: %s\nDescription: %s\nTags: %s\n\n"+
			"1. Provide a Summary.\n"+
			"2. List 3 key Weaknesses.\n"+
			"3. Suggest a clear Next Step.\n"+
			"4. Provide 2 specific \"Refactoring Suggestions\" including hypothetical code snippets (based on the project tags) that would fix the weaknesses.\n"+
			"5. Estimate a \"Revised Complexity\" score if these changes were made (0-100).\n\n"+
			"Return JSON.",
		project.Title, project.Description, strings.Join(project.Tags, ", "))

	text, err := c.generateContent(ctx, generateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &Schema{
				Type: "object",
				Properties: map[string]Schema{
					"summary":    {Type: "string"},
					"weaknesses": {Type: "array", Items: &Schema{Type: "string"}},
					"nextSteps":  {Type: "string"},
					"refactoringSuggestions": {
						Type: "array",
						Items: &Schema{
							Type: "object",
							Properties: map[string]Schema{
								"file":          {Type: "string"},
								"issue":         {Type: "string"},
								"suggestedCode": {Type: "string"},
							},
						},
					},
					"revisedComplexity": {Type: "integer"},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var critique model.ProjectCritique
	if err := utils.ExtractJSONTo(text, &critique); err != nil {
		return nil, fmt.Errorf("critique: %w", err)
	}
	return &critique, nil
}

// GenerateCandidateBio writes a short recruiter bio for a candidate
func (c *Client) GenerateCandidateBio(ctx context.Context, name string, skills []string) (string, error) {
	prompt := fmt.Sprintf("Write a short, professional single-paragraph recruiter bio for %s who is skilled in %s.",
		name, strings.Join(skills, ", "))

	return c.generateContent(ctx, generateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
	})
}

// AnalyzeIdeaSkills suggests required skills and team roles for an idea
func (c *Client) AnalyzeIdeaSkills(ctx context.Context, description string) (*IdeaAnalysis, error) {
	prompt := fmt.Sprintf(
		"Analyze this project idea: %q.\n"+
			"1. List 4 required technical skills.\n"+
			"2. List 3 specific Team Roles needed (e.g., \"Frontend Engineer\", \"Data Scientist\").\n"+
			"Return JSON.", description)

	text, err := c.generateContent(ctx, generateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
		GenerationConfig: &GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &Schema{
				Type: "object",
				Properties: map[string]Schema{
					"skills": {Type: "array", Items: &Schema{Type: "string"}},
					"roles":  {Type: "array", Items: &Schema{Type: "string"}},
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	var analysis IdeaAnalysis
	if err := utils.ExtractJSONTo(text, &analysis); err != nil {
		return nil, fmt.Errorf("idea analysis: %w", err)
	}
	return &analysis, nil
}

// ChatMessage is one turn of assistant chat history
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// Chat sends a message to the campus assistant with prior history
func (c *Client) Chat(ctx context.Context, message string, history []ChatMessage) (string, error) {
	contents := make([]Content, 0, len(history)+1)
	for _, h := range history {
		role := h.Role
		if role != "model" {
			role = "user"
		}
		contents = append(contents, Content{Role: role, Parts: []Part{{Text: h.Text}}})
	}
	contents = append(contents, Content{Role: "user", Parts: []Part{{Text: message}}})

	return c.generateContent(ctx, generateRequest{
		Contents:          contents,
		SystemInstruction: &Content{Parts: []Part{{Text: assistantInstruction}}},
	})
}
