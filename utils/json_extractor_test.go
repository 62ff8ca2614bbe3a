package utils

import (
	"errors"
	"testing"
)

func TestExtractJSONPlain(t *testing.T) {
	got, err := ExtractJSON(`{"title":"Drone Swarm","complexity":72}`)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	if got != `{"title":"Drone Swarm","complexity":72}` {
		t.Errorf("unexpected result: %s", got)
	}
}

func TestExtractJSONFromMarkdownFence(t *testing.T) {
	response := "```json\n{\"skills\": [\"Go\", \"React\"]}\n```"
	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	if got != `{"skills": ["Go", "React"]}` {
		t.Errorf("unexpected result: %s", got)
	}
}

func TestExtractJSONWithSurroundingProse(t *testing.T) {
	response := `Here is the analysis you asked for: {"summary": "solid work"} Hope that helps!`
	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	if got != `{"summary": "solid work"}` {
		t.Errorf("unexpected result: %s", got)
	}
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	response := `Result: {"code": "if x { return \"}\" }", "ok": true} trailing`
	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	if got != `{"code": "if x { return \"}\" }", "ok": true}` {
		t.Errorf("unexpected result: %s", got)
	}
}

func TestExtractJSONArray(t *testing.T) {
	response := "The steps are:\n[{\"title\": \"Basics\"}, {\"title\": \"Advanced\"}]"
	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("ExtractJSON failed: %v", err)
	}
	if got != `[{"title": "Basics"}, {"title": "Advanced"}]` {
		t.Errorf("unexpected result: %s", got)
	}
}

func TestExtractJSONNoJSON(t *testing.T) {
	for _, response := range []string{"", "no structured data here", "{broken"} {
		if _, err := ExtractJSON(response); !errors.Is(err, ErrNoJSONFound) {
			t.Errorf("ExtractJSON(%q): expected ErrNoJSONFound, got %v", response, err)
		}
	}
}

func TestExtractJSONTo(t *testing.T) {
	var target struct {
		Title      string `json:"title"`
		Complexity int    `json:"complexity"`
	}
	response := "```json\n{\"title\": \"Swarm\", \"complexity\": 55}\n```"
	if err := ExtractJSONTo(response, &target); err != nil {
		t.Fatalf("ExtractJSONTo failed: %v", err)
	}
	if target.Title != "Swarm" || target.Complexity != 55 {
		t.Errorf("unexpected decode: %+v", target)
	}
}
