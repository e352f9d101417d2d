package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const postingHTML = `<html><head><title>Job</title><script>var python = 1;</script></head>
<body>
<nav>Java jobs menu</nav>
<div class="job-description">
  <h2>Requirements</h2>
  <ul><li>Python</li><li>SQL</li><li>Machine Learning</li></ul>
</div>
<footer>React newsletter</footer>
</body></html>`

func TestExtractText(t *testing.T) {
	text, err := ExtractText(postingHTML, JobPostingSelectors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Requirements", "Python", "SQL", "Machine Learning"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in extracted text: %q", want, text)
		}
	}
	for _, noise := range []string{"Java jobs", "React newsletter", "var python"} {
		if strings.Contains(text, noise) {
			t.Fatalf("did not expect %q in extracted text: %q", noise, text)
		}
	}
	if strings.Contains(text, "PythonSQL") {
		t.Fatalf("expected list items to be separated: %q", text)
	}
}

func TestExtractTextFallsBackToBody(t *testing.T) {
	text, err := ExtractText("<html><body><p>Leadership and communication</p></body></html>", []string{".missing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Leadership and communication" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestJobDescriptionHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Encoding", "gzip")

		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, _ = gz.Write([]byte(postingHTML))
		_ = gz.Close()
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	client := New(zap.NewNop())
	text, err := client.JobDescription(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Machine Learning") {
		t.Fatalf("expected posting text, got %q", text)
	}
}

func TestJobDescriptionPlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("  Java and SQL  \n"))
	}))
	defer server.Close()

	text, err := New(nil).JobDescription(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Java and SQL" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestJobDescriptionBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(nil).JobDescription(context.Background(), server.URL)
	if err == nil || !strings.Contains(err.Error(), "bad status") {
		t.Fatalf("expected bad status error, got %v", err)
	}
}
