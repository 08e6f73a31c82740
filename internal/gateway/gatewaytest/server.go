// Package gatewaytest provides an in-memory backend that speaks the same
// HTTP surface as the real action item service.
package gatewaytest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"

	"github.com/csheth/minutes/internal/meeting"
)

// Request is a recorded call against the fake backend.
type Request struct {
	Method string
	Path   string
	Body   string
}

// Server is an httptest.Server with an in-memory transcript store.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	transcripts []meeting.Transcript
	nextID      int
	bareArray   bool
	failures    map[string]int
	requests    []Request
}

// New starts a fake backend. Call Close when done.
func New() *Server {
	s := &Server{failures: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transcripts", s.handleList)
	mux.HandleFunc("POST /api/transcripts", s.handleExtract)
	mux.HandleFunc("DELETE /api/transcripts/{id}", s.handleDeleteTranscript)
	mux.HandleFunc("POST /api/items", s.handleCreateItem)
	mux.HandleFunc("PUT /api/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)
	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// Seed replaces the stored transcripts.
func (s *Server) Seed(transcripts ...meeting.Transcript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts = nil
	for _, t := range transcripts {
		t.Items = meeting.CloneItems(t.Items)
		if t.Items == nil {
			t.Items = []meeting.ActionItem{}
		}
		s.transcripts = append(s.transcripts, t)
	}
}

// Transcripts returns a copy of the stored transcripts.
func (s *Server) Transcripts() []meeting.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]meeting.Transcript, 0, len(s.transcripts))
	for _, t := range s.transcripts {
		t.Items = meeting.CloneItems(t.Items)
		out = append(out, t)
	}
	return out
}

// RespondWithBareArray makes extraction answer with only the item array.
func (s *Server) RespondWithBareArray(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bareArray = enabled
}

// Fail makes every request matching route ("PUT /api/items") answer with
// status until Recover is called.
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// Recover clears an injected failure.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Requests returns the calls seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// CountRequests counts calls whose method and path start with route.
func (s *Server) CountRequests(route string) int {
	count := 0
	for _, r := range s.Requests() {
		if strings.HasPrefix(r.Method+" "+r.Path, route) {
			count++
		}
	}
	return count
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		status := 0
		for route, code := range s.failures {
			if strings.HasPrefix(r.Method+" "+r.URL.Path, route) {
				status = code
				break
			}
		}
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, "injected failure", status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Transcripts())
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || strings.TrimSpace(payload.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	transcript := meeting.Transcript{ID: s.newID("t"), Text: payload.Text}
	for _, item := range ExtractItems(payload.Text) {
		item.ID = s.newID("i")
		transcript.Items = append(transcript.Items, item)
	}
	if transcript.Items == nil {
		transcript.Items = []meeting.ActionItem{}
	}
	s.transcripts = append([]meeting.Transcript{transcript}, s.transcripts...)
	bare := s.bareArray
	s.mu.Unlock()

	if bare {
		writeJSON(w, http.StatusCreated, transcript.Items)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"transcriptId": transcript.ID,
		"items":        transcript.Items,
	})
}

func (s *Server) handleDeleteTranscript(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transcripts {
		if t.ID == id {
			s.transcripts = append(s.transcripts[:i], s.transcripts[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "transcript not found", http.StatusNotFound)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Task         string  `json:"task"`
		TranscriptID string  `json:"transcriptId"`
		Owner        *string `json:"owner"`
		DueDate      *string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || strings.TrimSpace(payload.Task) == "" {
		http.Error(w, "task is required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transcripts {
		if s.transcripts[i].ID != payload.TranscriptID {
			continue
		}
		item := meeting.ActionItem{
			ID:      s.newID("i"),
			Task:    strings.TrimSpace(payload.Task),
			Owner:   payload.Owner,
			DueDate: payload.DueDate,
			Tags:    []string{},
		}
		s.transcripts[i].Items = append(s.transcripts[i].Items, item)
		writeJSON(w, http.StatusCreated, item)
		return
	}
	http.Error(w, "transcript not found", http.StatusNotFound)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Tags      *[]string `json:"tags"`
		Completed *bool     `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.findItem(r.PathValue("id"))
	if item == nil {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	if patch.Tags != nil {
		tags := make([]string, 0, len(*patch.Tags))
		for _, tag := range *patch.Tags {
			tag = meeting.NormalizeTag(tag)
			if tag == "" || containsString(tags, tag) {
				continue
			}
			tags = append(tags, tag)
		}
		item.Tags = tags
	}
	if patch.Completed != nil {
		item.Completed = *patch.Completed
	}
	writeJSON(w, http.StatusOK, item.Clone())
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for ti := range s.transcripts {
		items := s.transcripts[ti].Items
		for i := range items {
			if items[i].ID == id {
				s.transcripts[ti].Items = append(items[:i], items[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
	}
	http.Error(w, "item not found", http.StatusNotFound)
}

func (s *Server) findItem(id string) *meeting.ActionItem {
	for ti := range s.transcripts {
		for i := range s.transcripts[ti].Items {
			if s.transcripts[ti].Items[i].ID == id {
				return &s.transcripts[ti].Items[i]
			}
		}
	}
	return nil
}

func (s *Server) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+(\s+|$)`)
	willPattern   = regexp.MustCompile(`^([A-Z][\w'-]*) (?:will|should|needs to|to) (.+)$`)
	duePattern    = regexp.MustCompile(`\b(?:by|before|on) ([A-Z][\w-]*(?: \d{1,2})?)$`)
)

// ExtractItems is the fake backend's extractor: each "<Name> will <task>"
// sentence becomes one item. Other sentences are ignored.
func ExtractItems(text string) []meeting.ActionItem {
	var items []meeting.ActionItem
	for _, sentence := range sentenceSplit.Split(text, -1) {
		sentence = strings.Join(strings.Fields(sentence), " ")
		if sentence == "" {
			continue
		}
		match := willPattern.FindStringSubmatch(sentence)
		if match == nil {
			continue
		}
		item := meeting.ActionItem{
			Task:  match[2],
			Owner: meeting.StringPtr(match[1]),
			Tags:  []string{},
		}
		if due := duePattern.FindStringSubmatch(match[2]); due != nil {
			item.DueDate = meeting.StringPtr(due[1])
		}
		items = append(items, item)
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func containsString(haystack []string, needle string) bool {
	for _, existing := range haystack {
		if existing == needle {
			return true
		}
	}
	return false
}
