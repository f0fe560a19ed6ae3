package formatting_test

import (
	"errors"
	"testing"

	"github.com/talentgate/talentgate/pkg/formatting"
)

type decision struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func TestParseDirect(t *testing.T) {
	result, err := formatting.Parse[decision](`{"success": true, "message": "ok"}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !result.Success || result.Message != "ok" {
		t.Errorf("got %+v", result)
	}
}

func TestParseCodeFence(t *testing.T) {
	content := "```json\n{\"success\": false, \"message\": \"nope\"}\n```"

	result, err := formatting.Parse[decision](content)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if result.Success || result.Message != "nope" {
		t.Errorf("got %+v", result)
	}
}

func TestParseFailure(t *testing.T) {
	_, err := formatting.Parse[decision]("not json at all")
	if !errors.Is(err, formatting.ErrParseFailed) {
		t.Errorf("expected ErrParseFailed, got %v", err)
	}
}

func TestExtractEmbeddedObject(t *testing.T) {
	content := `Sure! Here is my assessment: {"success": true, "message": "certificate matches"} Let me know if you need more.`

	result, err := formatting.Extract[decision](content)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !result.Success {
		t.Error("expected success")
	}
	if result.Message != "certificate matches" {
		t.Errorf("got message %q", result.Message)
	}
}

func TestExtractNestedBraces(t *testing.T) {
	content := `prefix {"success": false, "message": "missing {required} fields"} suffix`

	result, err := formatting.Extract[decision](content)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if result.Message != "missing {required} fields" {
		t.Errorf("got message %q", result.Message)
	}
}

func TestExtractArray(t *testing.T) {
	content := `the values are [1, 2, 3] as requested`

	result, err := formatting.Extract[[]int](content)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(result) != 3 || result[2] != 3 {
		t.Errorf("got %v", result)
	}
}

func TestExtractNoStructure(t *testing.T) {
	_, err := formatting.Extract[decision]("the evidence looks legitimate to me")
	if !errors.Is(err, formatting.ErrNoStructure) {
		t.Errorf("expected ErrNoStructure, got %v", err)
	}
}

func TestExtractUnclosedObject(t *testing.T) {
	_, err := formatting.Extract[decision](`{"success": true`)
	if !errors.Is(err, formatting.ErrNoStructure) {
		t.Errorf("expected ErrNoStructure, got %v", err)
	}
}

func TestExtractMalformedPayload(t *testing.T) {
	_, err := formatting.Extract[decision](`{"success": definitely}`)
	if !errors.Is(err, formatting.ErrParseFailed) {
		t.Errorf("expected ErrParseFailed, got %v", err)
	}
}
