package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryPendingPaginates(t *testing.T) {
	var cursors []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/databases/db1/query" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}

		var body struct {
			StartCursor string `json:"start_cursor"`
			Filter      struct {
				Property string `json:"property"`
				Checkbox struct {
					Equals bool `json:"equals"`
				} `json:"checkbox"`
			} `json:"filter"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if body.Filter.Property != "수집요청" || !body.Filter.Checkbox.Equals {
			t.Errorf("filter = %+v, want checkbox equals true on 수집요청", body.Filter)
		}
		cursors = append(cursors, body.StartCursor)

		if body.StartCursor == "" {
			fmt.Fprint(w, `{"results":[{"id":"page-1"}],"has_more":true,"next_cursor":"c2"}`)
		} else {
			fmt.Fprint(w, `{"results":[{"id":"page-2"}],"has_more":false}`)
		}
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	pages, err := c.QueryPending(context.Background(), "db1", "수집요청")
	if err != nil {
		t.Fatalf("QueryPending returned error: %v", err)
	}
	if len(pages) != 2 || pages[0].ID != "page-1" || pages[1].ID != "page-2" {
		t.Errorf("pages = %+v, want page-1 then page-2", pages)
	}
	if len(cursors) != 2 || cursors[0] != "" || cursors[1] != "c2" {
		t.Errorf("cursors = %v, want [\"\" c2]", cursors)
	}
}

func TestAuthHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != apiVersion {
			t.Errorf("Notion-Version = %q", got)
		}
		fmt.Fprint(w, `{"id":"page-1","properties":{}}`)
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	if _, err := c.RetrievePage(context.Background(), "page-1"); err != nil {
		t.Fatalf("RetrievePage returned error: %v", err)
	}
}

func TestEnsureSelectOption(t *testing.T) {
	tests := []struct {
		name      string
		schema    string
		wantPatch bool
	}{
		{
			name:      "option missing, appended",
			schema:    `{"id":"db1","properties":{"상태":{"type":"select","select":{"options":[{"name":"읽는 중"}]}}}}`,
			wantPatch: true,
		},
		{
			name:      "option already present",
			schema:    `{"id":"db1","properties":{"상태":{"type":"select","select":{"options":[{"name":"시작 전"}]}}}}`,
			wantPatch: false,
		},
		{
			name:      "property is not a select",
			schema:    `{"id":"db1","properties":{"상태":{"type":"status"}}}`,
			wantPatch: false,
		},
		{
			name:      "property absent",
			schema:    `{"id":"db1","properties":{}}`,
			wantPatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patched := false
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.Method {
				case http.MethodGet:
					fmt.Fprint(w, tt.schema)
				case http.MethodPatch:
					patched = true
					var body struct {
						Properties map[string]struct {
							Select struct {
								Options []SelectOption `json:"options"`
							} `json:"select"`
						} `json:"properties"`
					}
					if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
						t.Fatalf("bad patch body: %v", err)
					}
					opts := body.Properties["상태"].Select.Options
					if opts[len(opts)-1].Name != "시작 전" {
						t.Errorf("appended option = %q, want 시작 전", opts[len(opts)-1].Name)
					}
					fmt.Fprint(w, `{}`)
				}
			}))
			defer srv.Close()

			c := NewClient("secret")
			c.BaseURL = srv.URL

			if err := c.EnsureSelectOption(context.Background(), "db1", "상태", "시작 전"); err != nil {
				t.Fatalf("EnsureSelectOption returned error: %v", err)
			}
			if patched != tt.wantPatch {
				t.Errorf("patched = %v, want %v", patched, tt.wantPatch)
			}
		})
	}
}

func TestErrorStatusSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"API token is invalid."}`)
	}))
	defer srv.Close()

	c := NewClient("bad-token")
	c.BaseURL = srv.URL

	_, err := c.QueryPending(context.Background(), "db1", "수집요청")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
}
