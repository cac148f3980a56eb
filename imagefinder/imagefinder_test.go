package imagefinder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookizm/autopress/model"
)

func TestGenerateSearchTermsTranslatesJargon(t *testing.T) {
	terms := generateSearchTerms("Mewing: The Ultimate Jawline Enhancement Guide", "mewing", model.CategoryFacialAesthetics)
	require.NotEmpty(t, terms)
	assert.LessOrEqual(t, len(terms), 3)
	for _, term := range terms {
		assert.NotContains(t, term, "mewing", "jargon must not leak into image queries")
	}
}

func TestGenerateSearchTermsPadsWithCategoryDefaults(t *testing.T) {
	terms := generateSearchTerms("", "", model.CategorySurgery)
	assert.GreaterOrEqual(t, len(terms), 2)
	assert.Contains(t, terms, "medical procedure")
}

func TestDedupeSubsumedKeepsLongerPhrase(t *testing.T) {
	assert.Equal(t, []string{"strong jawline male"},
		dedupeSubsumed([]string{"strong jawline male", "jawline male"}))
	// longer phrase arriving later replaces the shorter one
	assert.Equal(t, []string{"strong jawline male"},
		dedupeSubsumed([]string{"jawline male", "strong jawline male"}))
	// exact duplicates collapse
	assert.Equal(t, []string{"fitness"},
		dedupeSubsumed([]string{"fitness", "Fitness"}))
}

func TestFindViaPexelsPrefersHighestResolution(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode(pexelsSearchResponse{Photos: []pexelsPhoto{{
			Src: map[string]string{
				"medium": "https://images.pexels.com/photo/medium.jpg",
				"large":  "https://images.pexels.com/photo/large.jpg",
			},
		}}})
	}))
	defer server.Close()

	f := New("test-key")
	f.pexelsAPIURL = server.URL

	imageURL, err := f.findViaPexels("athletic male")
	require.NoError(t, err)
	assert.Equal(t, "https://images.pexels.com/photo/large.jpg", imageURL)
}

func TestFindViaPexelsNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pexelsSearchResponse{})
	}))
	defer server.Close()

	f := New("test-key")
	f.pexelsAPIURL = server.URL

	imageURL, err := f.findViaPexels("nothing")
	require.NoError(t, err)
	assert.Empty(t, imageURL)
}

func TestFindViaUnsplashSource(t *testing.T) {
	f := New("")
	imageURL, err := f.findViaUnsplashSource("athletic male")
	require.NoError(t, err)
	assert.Equal(t, "https://source.unsplash.com/1200x630/?athletic+male", imageURL)
}

func TestFindImageURLFallsBackThroughProviders(t *testing.T) {
	// pexels errors out, unsplash (deterministic) takes over
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := New("test-key")
	f.pexelsAPIURL = server.URL

	imageURL := f.FindImageURL("Posture Correction for Better Appearance", "posture", model.CategoryBodyAesthetics)
	assert.Contains(t, imageURL, "source.unsplash.com/1200x630/?")
}

func TestPlaceholderForUnknownCategory(t *testing.T) {
	assert.Equal(t, defaultFallback, placeholderFor("No Such Category"))
	assert.Equal(t, placeholderFallbacks[model.CategorySurgery], placeholderFor(model.CategorySurgery))
}

func TestDownloadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	f := New("")
	data, filename, err := f.DownloadImage(server.URL + "/image.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Regexp(t, `^thumbnail_[0-9a-f]{8}\.jpg$`, filename)
}

func TestDownloadImageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := New("")
	_, _, err := f.DownloadImage(server.URL + "/missing.jpg")
	assert.Error(t, err)
}
