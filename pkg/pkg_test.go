package pkg

import (
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "glass" {
		t.Errorf("expected Name to be %q, got %q", "glass", Name)
	}
}

func TestDescription(t *testing.T) {
	if Description == "" {
		t.Error("expected a non-empty Description")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("expected Version to be %q, got %q", content, Version)
	}

	if !regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`).MatchString(Version) {
		t.Errorf("expected a semantic version, got %q", Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && strings.Contains(a.Email, "@")
	}) {
		t.Errorf("expected Author to list ardnew, got %v", Author)
	}
}
