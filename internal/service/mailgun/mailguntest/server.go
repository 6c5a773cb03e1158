// Package mailguntest provides an in-memory Mailgun mailing list API for tests.
package mailguntest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
)

type Server struct {
	*httptest.Server
	APIKey string

	mu      sync.Mutex
	lists   []domain.MailingList
	members map[string][]domain.ListMember
	calls   map[string]int
}

func NewServer(apiKey string) *Server {
	s := &Server{
		APIKey:  apiKey,
		members: make(map[string][]domain.ListMember),
		calls:   make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/lists/pages", s.getLists)
	mux.HandleFunc("GET /v3/lists/{list}/members/pages", s.getMembers)
	mux.HandleFunc("POST /v3/lists/{list}/members", s.addMember)
	mux.HandleFunc("DELETE /v3/lists/{list}/members/{member}", s.deleteMember)

	s.Server = httptest.NewServer(s.auth(mux))
	return s
}

// BaseURL is what a client should be configured with.
func (s *Server) BaseURL() string {
	return s.URL + "/v3"
}

func (s *Server) AddList(address string, members ...domain.ListMember) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists = append(s.lists, domain.MailingList{Address: address, MemberCount: len(members)})
	s.members[address] = append(s.members[address], members...)
}

func (s *Server) Members(list string) []domain.ListMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.members[list])
}

// Calls counts requests by "METHOD pattern".
func (s *Server) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "api" || pass != s.APIKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid private key"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getLists(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["GET lists"]++

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	items := s.lists
	if items == nil {
		items = []domain.MailingList{}
	}
	if len(items) > limit {
		items = items[:limit]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"paging": domain.Paging{First: s.URL + "/v3/lists/pages?page=first", Last: s.URL + "/v3/lists/pages?page=last"},
	})
}

func (s *Server) getMembers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["GET members"]++

	list := r.PathValue("list")
	members, ok := s.members[list]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Mailing list " + list + " not found"})
		return
	}
	if members == nil {
		members = []domain.ListMember{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": members, "paging": domain.Paging{}})
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["POST members"]++

	list := r.PathValue("list")
	if _, ok := s.members[list]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Mailing list " + list + " not found"})
		return
	}

	address := r.URL.Query().Get("address")
	upsert := r.URL.Query().Get("upsert") == "yes"
	for i, m := range s.members[list] {
		if m.Address != address {
			continue
		}
		if !upsert {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Address already exists '" + address + "'"})
			return
		}
		s.members[list][i].Subscribed = true
		writeJSON(w, http.StatusOK, map[string]any{"member": s.members[list][i], "message": "Mailing list member has been updated"})
		return
	}

	member := domain.ListMember{Address: address, Subscribed: true}
	s.members[list] = append(s.members[list], member)
	writeJSON(w, http.StatusOK, map[string]any{"member": member, "message": "Mailing list member has been created"})
}

func (s *Server) deleteMember(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["DELETE members"]++

	list, address := r.PathValue("list"), r.PathValue("member")
	idx := slices.IndexFunc(s.members[list], func(m domain.ListMember) bool { return m.Address == address })
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Member " + address + " of mailing list " + list + " not found"})
		return
	}

	s.members[list] = slices.Delete(s.members[list], idx, idx+1)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Mailing list member has been deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
