package handler_test

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/interview-room/internal/domain"
)

type commentEnv struct {
	*testEnv
	interview   *domain.Interview
	reviewer    *http.Client
	candidate   *http.Client
	commentsURL string
	dialogURL   string
}

func newCommentEnv(t *testing.T) commentEnv {
	t.Helper()
	env := newTestEnv(t, "", "")
	interviewer := env.register(t, "rev@example.com", "Rita Reviewer", domain.RoleInterviewer)
	candidate := env.register(t, "cand@example.com", "Carl Candidate", domain.RoleCandidate)
	iv := env.schedule(t, interviewer, candidate)

	return commentEnv{
		testEnv:     env,
		interview:   iv,
		reviewer:    env.client(t, "rev@example.com"),
		candidate:   env.client(t, "cand@example.com"),
		commentsURL: fmt.Sprintf("%s/api/interviews/%d/comments", env.srv.URL, iv.ID),
		dialogURL:   fmt.Sprintf("%s/interviews/%d/comments/dialog", env.srv.URL, iv.ID),
	}
}

func TestComments_CreateAndList(t *testing.T) {
	env := newCommentEnv(t)

	resp := postJSON(t, env.reviewer, env.commentsURL, map[string]any{"content": "  Great system design  ", "rating": 5})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.StatusCode, readBody(t, resp))
	}
	resp.Body.Close()

	var list struct {
		Comments []struct {
			Content       string `json:"content"`
			Rating        int    `json:"rating"`
			InterviewerID string `json:"interviewerId"`
		} `json:"comments"`
	}
	decodeJSON(t, get(t, env.reviewer, env.commentsURL), &list)
	if len(list.Comments) != 1 || list.Comments[0].Content != "Great system design" || list.Comments[0].Rating != 5 {
		t.Fatalf("unexpected comments %+v", list.Comments)
	}
}

func TestComments_CreateErrors(t *testing.T) {
	env := newCommentEnv(t)

	tests := []struct {
		name   string
		client *http.Client
		url    string
		body   map[string]any
		want   int
	}{
		{"empty content", env.reviewer, env.commentsURL, map[string]any{"content": "   ", "rating": 3}, http.StatusUnprocessableEntity},
		{"bad rating", env.reviewer, env.commentsURL, map[string]any{"content": "ok", "rating": 9}, http.StatusUnprocessableEntity},
		{"candidate", env.candidate, env.commentsURL, map[string]any{"content": "me!", "rating": 5}, http.StatusForbidden},
		{"anonymous", http.DefaultClient, env.commentsURL, map[string]any{"content": "hi", "rating": 3}, http.StatusUnauthorized},
		{"unknown interview", env.reviewer, env.srv.URL + "/api/interviews/999/comments", map[string]any{"content": "hi", "rating": 3}, http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, tc.client, tc.url, tc.body)
			resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestCommentDialog_OpenAndSubmit(t *testing.T) {
	env := newCommentEnv(t)
	ctx := context.Background()
	if _, err := env.comments.Add(ctx, &domain.Identity{ID: "user_missing"}, env.interview.ID, "Earlier note", 2); err != nil {
		t.Fatalf("Add: %v", err)
	}

	body := readBody(t, get(t, env.reviewer, env.dialogURL))
	for _, want := range []string{"Interview Comment", "1 Comment", "Earlier note", "Unknown Interviewer"} {
		if !strings.Contains(body, want) {
			t.Errorf("dialog missing %q:\n%s", want, body)
		}
	}

	// Empty draft: warning, nothing stored.
	body = readBody(t, postJSON(t, env.reviewer, env.dialogURL, map[string]any{"comment": "  ", "rating": "4"}))
	if !strings.Contains(body, "Please enter comment") {
		t.Errorf("expected empty-comment warning:\n%s", body)
	}

	// Valid draft: stored and signals reset.
	body = readBody(t, postJSON(t, env.reviewer, env.dialogURL, map[string]any{"comment": "Clear communicator", "rating": "4"}))
	if !strings.Contains(body, "Comment submitted") {
		t.Errorf("expected success toast:\n%s", body)
	}
	if !strings.Contains(body, `"rating":"3"`) || !strings.Contains(body, `"comment":""`) {
		t.Errorf("expected signals reset:\n%s", body)
	}

	comments, err := env.comments.List(ctx, env.interview.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(comments) != 2 || comments[1].Content != "Clear communicator" || comments[1].Rating != 4 {
		t.Fatalf("unexpected stored comments %+v", comments)
	}
}

func TestCommentDialog_ReopenKeepsDraft(t *testing.T) {
	env := newCommentEnv(t)

	tests := []struct {
		name      string
		signals   string
		wantDraft string
		wantRate  string
	}{
		{"after cancel", `{"open":false,"comment":"half written","rating":"5"}`, ">half written</textarea>", `value="5" selected`},
		{"invalid rating", `{"open":false,"comment":"kept","rating":"9"}`, ">kept</textarea>", `value="3" selected`},
		{"first open", "", "></textarea>", `value="3" selected`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := env.dialogURL
			if tc.signals != "" {
				u += "?datastar=" + url.QueryEscape(tc.signals)
			}
			resp := get(t, env.reviewer, u)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}
			body := readBody(t, resp)
			if !strings.Contains(body, tc.wantDraft) {
				t.Errorf("expected draft %q:\n%s", tc.wantDraft, body)
			}
			if !strings.Contains(body, tc.wantRate) {
				t.Errorf("expected rating %q:\n%s", tc.wantRate, body)
			}
		})
	}
}

func TestComments_RejectionsShareReasonLabels(t *testing.T) {
	env := newCommentEnv(t)

	postJSON(t, env.reviewer, env.commentsURL, map[string]any{"content": "   ", "rating": 3}).Body.Close()
	postJSON(t, env.reviewer, env.dialogURL, map[string]any{"comment": "  ", "rating": "4"}).Body.Close()
	postJSON(t, env.reviewer, env.dialogURL, map[string]any{"comment": "ok", "rating": "0"}).Body.Close()

	got := env.counterValues(t, "interview_room_comments_rejected_total", "reason")
	if got["invalid"] != 3 {
		t.Errorf("invalid rejections = %v, want 3 (all: %v)", got["invalid"], got)
	}
	for _, reason := range []string{"warning", "success"} {
		if _, ok := got[reason]; ok {
			t.Errorf("unexpected reason label %q in %v", reason, got)
		}
	}
}

func TestCommentDialog_Forbidden(t *testing.T) {
	env := newCommentEnv(t)

	resp := get(t, env.candidate, env.dialogURL)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for candidate, got %d", resp.StatusCode)
	}
}

func TestCommentLive_StreamsUpdates(t *testing.T) {
	env := newCommentEnv(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	liveURL := fmt.Sprintf("%s/interviews/%d/comments/live", env.srv.URL, env.interview.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, liveURL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := env.reviewer.Do(req)
	if err != nil {
		t.Fatalf("GET live: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	waitFor := func(substr string) {
		t.Helper()
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					t.Fatalf("stream ended before %q", substr)
				}
				if strings.Contains(line, substr) {
					return
				}
			case <-ctx.Done():
				t.Fatalf("timed out waiting for %q", substr)
			}
		}
	}

	waitFor("live-comments")

	r := postJSON(t, env.reviewer, env.commentsURL, map[string]any{"content": "Live update", "rating": 4})
	r.Body.Close()

	waitFor("Live update")
}
