package wordpress

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookizm/autopress/app_config"
	"github.com/lookizm/autopress/model"
	"github.com/lookizm/autopress/tracker"
)

// fakeWordPress is an in-memory stand-in for the WordPress REST API, serving
// just the endpoints the client touches.
type fakeWordPress struct {
	t *testing.T

	mu         sync.Mutex
	nextID     int
	categories []remoteTerm
	tags       []remoteTerm
	posts      map[int]map[string]interface{}

	failTags       bool
	failCategories bool

	lastPostPayload map[string]interface{}
}

func newFakeWordPress(t *testing.T) (*fakeWordPress, *httptest.Server) {
	t.Helper()
	wp := &fakeWordPress{
		t:      t,
		nextID: 100,
		posts:  map[int]map[string]interface{}{},
	}
	server := httptest.NewServer(http.HandlerFunc(wp.handle))
	t.Cleanup(server.Close)
	return wp, server
}

func (wp *fakeWordPress) allocID() int {
	wp.nextID++
	return wp.nextID
}

func (wp *fakeWordPress) handle(w http.ResponseWriter, r *http.Request) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/wp-json/wp/v2")
	switch {
	case path == "/" && r.Method == "GET":
		w.WriteHeader(http.StatusOK)

	case path == "/users/me":
		json.NewEncoder(w).Encode(map[string]string{"name": "editor"})

	case path == "/categories" && r.Method == "GET":
		if wp.failCategories {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(wp.categories)

	case path == "/categories" && r.Method == "POST":
		if wp.failCategories {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		var payload map[string]string
		require.NoError(wp.t, json.NewDecoder(r.Body).Decode(&payload))
		term := remoteTerm{ID: wp.allocID(), Name: payload["name"]}
		wp.categories = append(wp.categories, term)
		json.NewEncoder(w).Encode(term)

	case path == "/tags" && r.Method == "GET":
		if wp.failTags {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		search := r.URL.Query().Get("search")
		var found []remoteTerm
		for _, tag := range wp.tags {
			if strings.EqualFold(tag.Name, search) {
				found = append(found, tag)
			}
		}
		json.NewEncoder(w).Encode(found)

	case path == "/tags" && r.Method == "POST":
		if wp.failTags {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		var payload map[string]string
		require.NoError(wp.t, json.NewDecoder(r.Body).Decode(&payload))
		term := remoteTerm{ID: wp.allocID(), Name: payload["name"]}
		wp.tags = append(wp.tags, term)
		json.NewEncoder(w).Encode(term)

	case path == "/posts" && r.Method == "GET":
		var listed []map[string]interface{}
		for id, post := range wp.posts {
			listed = append(listed, map[string]interface{}{"id": id, "link": post["link"]})
		}
		json.NewEncoder(w).Encode(listed)

	case path == "/posts" && r.Method == "POST":
		var payload map[string]interface{}
		require.NoError(wp.t, json.NewDecoder(r.Body).Decode(&payload))
		wp.lastPostPayload = payload
		id := wp.allocID()
		payload["link"] = "https://lookizm.com/?p=" + strconv.Itoa(id)
		wp.posts[id] = payload
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     id,
			"link":   payload["link"],
			"status": payload["status"],
		})

	case strings.HasPrefix(path, "/posts/") && r.Method == "DELETE":
		id, _ := strconv.Atoi(strings.TrimPrefix(path, "/posts/"))
		if _, ok := wp.posts[id]; !ok {
			http.NotFound(w, r)
			return
		}
		delete(wp.posts, id)
		json.NewEncoder(w).Encode(map[string]interface{}{"deleted": true})

	case strings.HasPrefix(path, "/posts/") && r.Method == "POST":
		id, _ := strconv.Atoi(strings.TrimPrefix(path, "/posts/"))
		post, ok := wp.posts[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		var payload map[string]interface{}
		require.NoError(wp.t, json.NewDecoder(r.Body).Decode(&payload))
		for key, value := range payload {
			post[key] = value
		}
		wp.lastPostPayload = payload
		json.NewEncoder(w).Encode(map[string]interface{}{"id": id})

	default:
		http.NotFound(w, r)
	}
}


func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	cfg := &app_config.Config{
		WordPressURL:      server.URL,
		Username:          "editor",
		AppPassword:       "app secret",
		DefaultCategoryID: 1,
		AuthorID:          1,
		PostStatus:        "publish",
	}
	postTracker := tracker.New(filepath.Join(t.TempDir(), "published_posts.json"))
	client, err := New(cfg, postTracker, nil)
	require.NoError(t, err)
	return client
}

func validDraft() *model.DraftPost {
	return &model.DraftPost{
		Title:    "Complete Guide to Jawline Definition",
		Content:  strings.Repeat("Solid practical advice on improving facial structure. ", 10),
		Excerpt:  "A short teaser.",
		Tags:     []string{"looksmaxing", "jawline"},
		Topic:    "jawline definition",
		Category: model.CategoryFacialAesthetics,
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(&app_config.Config{WordPressURL: "https://lookizm.com"}, nil, nil)
	assert.Error(t, err)

	_, err = New(&app_config.Config{Username: "editor", AppPassword: "secret"}, nil, nil)
	assert.Error(t, err)
}

func TestDetectAPIURLStandardPath(t *testing.T) {
	_, server := newFakeWordPress(t)
	client := newTestClient(t, server)
	assert.Equal(t, server.URL+"/wp-json/wp/v2", client.apiURL)
}

func TestDetectAPIURLFallsBackToRestRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if route := r.URL.Query().Get("rest_route"); strings.HasPrefix(route, "/wp/v2") {
			if strings.Contains(route, "/categories") {
				json.NewEncoder(w).Encode([]remoteTerm{})
				return
			}
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	assert.Equal(t, server.URL+"/?rest_route=/wp/v2", client.apiURL)
}

// fakeRestRouteWordPress serves the ?rest_route= convention only, recording
// every rest_route value it is asked for.
func fakeRestRouteWordPress(t *testing.T, routes *[]string) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	nextID := 500
	posts := map[int]bool{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Query().Get("rest_route")
		if route == "" {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		*routes = append(*routes, route)
		mu.Unlock()

		path := strings.TrimPrefix(strings.TrimSuffix(route, "/"), "/wp/v2")
		switch {
		case path == "":
			w.WriteHeader(http.StatusOK)
		case path == "/categories" && r.Method == "GET":
			json.NewEncoder(w).Encode([]remoteTerm{{ID: 3, Name: model.CategoryFacialAesthetics}})
		case path == "/tags" && r.Method == "GET":
			assert.Equal(t, "1", r.URL.Query().Get("per_page"))
			assert.NotEmpty(t, r.URL.Query().Get("search"))
			json.NewEncoder(w).Encode([]remoteTerm{})
		case path == "/tags" && r.Method == "POST":
			nextID++
			json.NewEncoder(w).Encode(remoteTerm{ID: nextID, Name: "created"})
		case path == "/posts" && r.Method == "GET":
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			assert.Equal(t, "any", r.URL.Query().Get("status"))
			listed := []map[string]interface{}{}
			for id := range posts {
				listed = append(listed, map[string]interface{}{"id": id})
			}
			json.NewEncoder(w).Encode(listed)
		case path == "/posts" && r.Method == "POST":
			nextID++
			posts[nextID] = true
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": nextID, "link": "https://lookizm.com/?p=" + strconv.Itoa(nextID), "status": "publish",
			})
		case strings.HasPrefix(path, "/posts/") && r.Method == "DELETE":
			assert.Equal(t, "true", r.URL.Query().Get("force"))
			id, _ := strconv.Atoi(strings.TrimPrefix(path, "/posts/"))
			if !posts[id] {
				http.NotFound(w, r)
				return
			}
			delete(posts, id)
			json.NewEncoder(w).Encode(map[string]interface{}{"deleted": true})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// Under the rest_route convention the API base already carries a query
// string; endpoint parameters must arrive as separate query values, never
// swallowed into the rest_route path.
func TestRestRouteModeKeepsQueryParamsSeparate(t *testing.T) {
	var routes []string
	server := fakeRestRouteWordPress(t, &routes)
	client := newTestClient(t, server)
	require.Equal(t, server.URL+"/?rest_route=/wp/v2", client.apiURL)

	result, err := client.PublishPost(validDraft())
	require.NoError(t, err)
	assert.Greater(t, result.PostID, 0)

	deleted, err := client.DeleteAllPosts()
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	require.NotEmpty(t, routes)
	for _, route := range routes {
		assert.NotContains(t, route, "?", "rest_route must stay a clean path: %s", route)
	}
}

func TestConnectionReportsUser(t *testing.T) {
	_, server := newFakeWordPress(t)
	client := newTestClient(t, server)
	assert.NoError(t, client.TestConnection())
}

func TestPreloadCategoryCache(t *testing.T) {
	wp, server := newFakeWordPress(t)
	wp.categories = []remoteTerm{
		{ID: 7, Name: model.CategoryLifestyle},
		{ID: 8, Name: "Uncategorized"},
	}

	client := newTestClient(t, server)
	id, err := client.CategoryID(model.CategoryLifestyle)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NotContains(t, client.categoryCache, "Uncategorized")
}

func TestCategoryIDCreatesMissingCategory(t *testing.T) {
	_, server := newFakeWordPress(t)
	client := newTestClient(t, server)

	id, err := client.CategoryID(model.CategorySurgery)
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	// second lookup is served from the cache
	again, err := client.CategoryID(model.CategorySurgery)
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestPublishRejectsEmptyTitle(t *testing.T) {
	_, server := newFakeWordPress(t)
	client := newTestClient(t, server)

	draft := validDraft()
	draft.Title = "   "
	_, err := client.PublishPost(draft)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPublishContentLengthBoundary(t *testing.T) {
	_, server := newFakeWordPress(t)
	client := newTestClient(t, server)

	draft := validDraft()
	draft.Content = strings.Repeat("a", 100)
	_, err := client.PublishPost(draft)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	draft.Content = strings.Repeat("a", 101)
	result, err := client.PublishPost(draft)
	require.NoError(t, err)
	assert.Greater(t, result.PostID, 0)
}

func TestPublishPostFullFlow(t *testing.T) {
	wp, server := newFakeWordPress(t)
	client := newTestClient(t, server)

	result, err := client.PublishPost(validDraft())
	require.NoError(t, err)
	assert.Greater(t, result.PostID, 0)
	assert.Equal(t, "publish", result.Status)
	assert.NotEmpty(t, result.URL)

	payload := wp.lastPostPayload
	assert.Equal(t, "Complete Guide to Jawline Definition", payload["title"])
	assert.Equal(t, "publish", payload["status"])
	assert.Len(t, payload["tags"], 2)
	assert.Len(t, payload["categories"], 1)

	// the live post is recorded for future related-post linking
	require.Equal(t, 1, client.tracker.Count())
	record := client.tracker.All()[0]
	assert.Equal(t, result.PostID, record.ID)
	assert.Equal(t, result.URL, record.URL)
	assert.Equal(t, "jawline definition", record.Topic)
	assert.NotEmpty(t, record.PublishedDate)
}

func TestPublishDropsUnresolvableTags(t *testing.T) {
	wp, server := newFakeWordPress(t)
	client := newTestClient(t, server)
	wp.mu.Lock()
	wp.failTags = true
	wp.mu.Unlock()

	result, err := client.PublishPost(validDraft())
	require.NoError(t, err)
	assert.Greater(t, result.PostID, 0)
	// the REST schema wants an array; dropping every tag must yield [], not null
	require.NotNil(t, wp.lastPostPayload["tags"])
	assert.Empty(t, wp.lastPostPayload["tags"])
}

func TestPublishWithNoTagsSendsEmptyArray(t *testing.T) {
	wp, server := newFakeWordPress(t)
	client := newTestClient(t, server)

	draft := validDraft()
	draft.Tags = nil
	_, err := client.PublishPost(draft)
	require.NoError(t, err)
	require.NotNil(t, wp.lastPostPayload["tags"])
	assert.Empty(t, wp.lastPostPayload["tags"])
}

func TestPublishFallsBackToDefaultCategory(t *testing.T) {
	wp, server := newFakeWordPress(t)
	client := newTestClient(t, server)
	wp.mu.Lock()
	wp.failCategories = true
	wp.mu.Unlock()

	result, err := client.PublishPost(validDraft())
	require.NoError(t, err)
	assert.Greater(t, result.PostID, 0)

	categories, ok := wp.lastPostPayload["categories"].([]interface{})
	require.True(t, ok)
	require.Len(t, categories, 1)
	assert.EqualValues(t, 1, categories[0])
}

func TestPublishErrorOnRemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wp-json/wp/v2/" || r.URL.Path == "/wp-json/wp/v2/categories" {
			if r.Method == "GET" && r.URL.Path != "/wp-json/wp/v2/categories" {
				w.WriteHeader(http.StatusOK)
				return
			}
			json.NewEncoder(w).Encode([]remoteTerm{{ID: 3, Name: model.CategoryFacialAesthetics}})
			return
		}
		if strings.Contains(r.URL.Path, "/tags") {
			json.NewEncoder(w).Encode([]remoteTerm{{ID: 4, Name: "looksmaxing"}, {ID: 5, Name: "jawline"}})
			return
		}
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	draft := validDraft()
	draft.Tags = nil
	_, err := client.PublishPost(draft)

	var perr *PublishError
	assert.ErrorAs(t, err, &perr)
}

func TestDeleteAllPostsIsIdempotent(t *testing.T) {
	_, server := newFakeWordPress(t)
	client := newTestClient(t, server)

	for i := 0; i < 3; i++ {
		_, err := client.PublishPost(validDraft())
		require.NoError(t, err)
	}

	deleted, err := client.DeleteAllPosts()
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	deleted, err = client.DeleteAllPosts()
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

func TestUpdatePostSendsOnlySetFields(t *testing.T) {
	wp, server := newFakeWordPress(t)
	client := newTestClient(t, server)

	result, err := client.PublishPost(validDraft())
	require.NoError(t, err)

	title := "Revised Title"
	require.NoError(t, client.UpdatePost(result.PostID, &PostUpdate{Title: &title}))

	payload := wp.lastPostPayload
	assert.Equal(t, "Revised Title", payload["title"])
	assert.NotContains(t, payload, "content")
	assert.NotContains(t, payload, "excerpt")

	// nothing set, nothing sent
	require.NoError(t, client.UpdatePost(result.PostID, &PostUpdate{}))
	assert.Equal(t, "Revised Title", wp.lastPostPayload["title"])
}
