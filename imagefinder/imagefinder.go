// Package imagefinder resolves a post's title, topic and category to an
// illustrative image. Providers are tried in a fixed order: a keyed Pexels
// search, the keyless Unsplash Source redirect, then a category placeholder.
package imagefinder

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lookizm/autopress/model"
	"github.com/lookizm/autopress/utils"
	Logger "github.com/lookizm/autopress/utils/log"
)

const (
	defaultPexelsAPIURL      = "https://api.pexels.com/v1"
	defaultUnsplashSourceURL = "https://source.unsplash.com"

	lookupTimeout   = 10 * time.Second
	downloadTimeout = 10 * time.Second
)

// Every category has a direct placeholder image as the last resort; unknown
// categories get the generic one.
var placeholderFallbacks = map[string]string{
	model.CategoryFacialAesthetics: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=1200&h=630&fit=crop",
	model.CategoryBodyAesthetics:   "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=1200&h=630&fit=crop",
	model.CategoryLifestyle:        "https://images.unsplash.com/photo-1490645935967-10de6ba17061?w=1200&h=630&fit=crop",
	model.CategoryGrooming:         "https://images.unsplash.com/photo-1521590832167-7bcbfaa6381f?w=1200&h=630&fit=crop",
	model.CategorySurgery:          "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?w=1200&h=630&fit=crop",
}

const defaultFallback = "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=1200&h=630&fit=crop"

type ImageFinder struct {
	pexelsAPIKey      string
	pexelsAPIURL      string
	unsplashSourceURL string

	client *http.Client
}

func New(pexelsAPIKey string) *ImageFinder {
	return &ImageFinder{
		pexelsAPIKey:      pexelsAPIKey,
		pexelsAPIURL:      defaultPexelsAPIURL,
		unsplashSourceURL: defaultUnsplashSourceURL,
		client:            &http.Client{Timeout: lookupTimeout},
	}
}

// searchStrategy is one provider in the fallback chain: a pure function of
// the query that either yields an image URL or reports a miss.
type searchStrategy struct {
	name string
	find func(query string) (string, error)
}

// FindImageURL resolves one image reference for a post. It never fails: when
// every provider misses, the category placeholder is returned.
func (f *ImageFinder) FindImageURL(title, topic, category string) string {
	searchTerms := generateSearchTerms(title, topic, category)

	query := "self improvement male fitness"
	if len(searchTerms) > 0 {
		query = strings.Join(searchTerms, " ")
	}

	strategies := []searchStrategy{
		{name: "pexels", find: f.findViaPexels},
		{name: "unsplash", find: f.findViaUnsplashSource},
	}

	for _, strategy := range strategies {
		imageURL, err := strategy.find(query)
		if err != nil {
			Logger.Log.WithFields(logrus.Fields{"provider": strategy.name}).
				Warnln("image provider error:", err)
			continue
		}
		if imageURL != "" {
			Logger.Log.WithFields(logrus.Fields{"provider": strategy.name, "query": query}).
				Infoln("found image")
			return imageURL
		}
	}

	Logger.Log.WithFields(logrus.Fields{"category": category}).Infoln("using fallback image")
	return placeholderFor(category)
}

func placeholderFor(category string) string {
	if fallback, ok := placeholderFallbacks[category]; ok {
		return fallback
	}
	return defaultFallback
}

type pexelsPhoto struct {
	Src map[string]string `json:"src"`
}

type pexelsSearchResponse struct {
	Photos []pexelsPhoto `json:"photos"`
}

// findViaPexels queries the Pexels search API and picks the highest
// resolution variant available.
func (f *ImageFinder) findViaPexels(query string) (string, error) {
	req, err := http.NewRequest("GET", f.pexelsAPIURL+"/search", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", f.pexelsAPIKey)

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")
	params.Set("size", "large")
	req.URL.RawQuery = params.Encode()

	res, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return "", fmt.Errorf("non-200 http code: %d", res.StatusCode)
	}

	var parsed pexelsSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Photos) == 0 {
		return "", nil
	}

	src := parsed.Photos[0].Src
	for _, size := range []string{"original", "large", "medium", "small"} {
		if imageURL := src[size]; imageURL != "" {
			return imageURL, nil
		}
	}
	return "", nil
}

// findViaUnsplashSource builds a deterministic Unsplash Source redirect URL.
// No request is made; the service resolves the query on fetch.
func (f *ImageFinder) findViaUnsplashSource(query string) (string, error) {
	return fmt.Sprintf("%s/1200x630/?%s", f.unsplashSourceURL, url.QueryEscape(query)), nil
}

// DownloadImage fetches the image bytes and derives a stable filename from
// the URL. Callers are expected to proceed without a thumbnail on failure.
func (f *ImageFinder) DownloadImage(imageURL string) ([]byte, string, error) {
	client := &http.Client{Timeout: downloadTimeout}
	res, err := client.Get(imageURL)
	if err != nil {
		return nil, "", errors.Wrap(err, "error downloading image")
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, "", fmt.Errorf("error downloading image: non-200 http code: %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "error reading image body")
	}

	hash, err := utils.TextToMd5Hash(imageURL)
	if err != nil {
		return nil, "", err
	}
	filename := "thumbnail_" + hash[:8] + ".jpg"
	return data, filename, nil
}
