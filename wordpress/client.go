// Package wordpress wraps the WordPress REST API: taxonomy
// resolution-or-creation, media upload, post lifecycle, and the publish flow
// that ties generation output to the live blog.
package wordpress

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/lookizm/autopress/app_config"
	"github.com/lookizm/autopress/imagefinder"
	"github.com/lookizm/autopress/tracker"
	Logger "github.com/lookizm/autopress/utils/log"
)

const (
	probeTimeout = 5 * time.Second
	// metadata lookups are quick; post creation and media upload are not
	shortTimeout = 10 * time.Second
	longTimeout  = 30 * time.Second
)

// Client is a WordPress REST API client bound to one blog. The category-id
// cache is owned by the instance and populated lazily; no cross-instance
// sharing is assumed.
type Client struct {
	baseURL   string
	apiURL    string
	apiURLAlt string

	authHeader string

	shortClient *http.Client
	longClient  *http.Client

	defaultCategoryID int
	authorID          int
	postStatus        string

	categoryCache map[string]int

	tracker     *tracker.PostTracker
	imageFinder *imagefinder.ImageFinder
}

// New builds a client, auto-detects the working REST path and preloads the
// category cache. Missing credentials are a configuration error.
func New(cfg *app_config.Config, postTracker *tracker.PostTracker, finder *imagefinder.ImageFinder) (*Client, error) {
	if cfg.WordPressURL == "" {
		return nil, errors.New("WORDPRESS_URL not set in config")
	}
	if cfg.Username == "" || cfg.AppPassword == "" {
		return nil, errors.New("WordPress credentials not set, please set WORDPRESS_USERNAME and WORDPRESS_APP_PASSWORD")
	}

	token := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.AppPassword))
	c := &Client{
		baseURL: cfg.WordPressURL,
		// standard REST path first, query-string form as compat fallback
		apiURL:            cfg.WordPressURL + "/wp-json/wp/v2",
		apiURLAlt:         cfg.WordPressURL + "/?rest_route=/wp/v2",
		authHeader:        "Basic " + token,
		shortClient:       &http.Client{Timeout: shortTimeout},
		longClient:        &http.Client{Timeout: longTimeout},
		defaultCategoryID: cfg.DefaultCategoryID,
		authorID:          cfg.AuthorID,
		postStatus:        cfg.PostStatus,
		categoryCache:     map[string]int{},
		tracker:           postTracker,
		imageFinder:       finder,
	}

	c.detectAPIURL()
	c.preloadCategoryCache()

	return c, nil
}

// detectAPIURL probes the standard REST path, then the query-string form. If
// neither answers, the standard path is kept and later calls fail explicitly.
func (c *Client) detectAPIURL() {
	probe := &http.Client{Timeout: probeTimeout}

	for _, candidate := range []string{c.apiURL, c.apiURLAlt} {
		req, err := http.NewRequest("GET", candidate+"/", nil)
		if err != nil {
			continue
		}
		req.Header.Set("Authorization", c.authHeader)
		res, err := probe.Do(req)
		if err != nil {
			continue
		}
		res.Body.Close()
		if res.StatusCode == http.StatusOK {
			if candidate != c.apiURL {
				c.apiURL = candidate
				Logger.Log.Infoln("using alternative REST API path:", c.apiURL)
			}
			return
		}
	}

	Logger.Log.Warnln("could not verify REST API endpoint, using:", c.apiURL)
}

// preloadCategoryCache seeds the cache with the ids of the known categories.
// Failure is logged and ignored; ids resolve lazily later.
func (c *Client) preloadCategoryCache() {
	categories, err := c.GetCategories()
	if err != nil {
		Logger.Log.Warnln("could not load category ids:", err)
		return
	}
	for _, cat := range categories {
		if _, known := categoryNames[cat.Name]; known {
			c.categoryCache[cat.Name] = cat.ID
		}
	}
}

// apiEndpoint joins a REST path and query parameters onto the detected API
// base. Under the ?rest_route= convention the base already carries a query
// string, so parameters must join with & rather than a second ?.
func (c *Client) apiEndpoint(path string, params url.Values) string {
	endpoint := c.apiURL + path
	if len(params) == 0 {
		return endpoint
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + params.Encode()
}

// doJSON performs one authenticated request with an optional JSON payload,
// decoding the response into out when given. Non-2xx responses are returned
// as errors with the response body logged.
func (c *Client) doJSON(client *http.Client, method, url string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, readErr := io.ReadAll(res.Body)
	if res.StatusCode >= 300 {
		if readErr == nil {
			Logger.Log.Errorln("response body is: ", string(resBody))
		}
		return fmt.Errorf("non-200 http code: %d", res.StatusCode)
	}

	if out != nil {
		if readErr != nil {
			return readErr
		}
		return json.Unmarshal(resBody, out)
	}
	return nil
}

// TestConnection verifies the credentials against the users endpoint.
func (c *Client) TestConnection() error {
	var user struct {
		Name string `json:"name"`
	}
	if err := c.doJSON(c.shortClient, "GET", c.apiURL+"/users/me", nil, &user); err != nil {
		return errors.Wrap(err, "connection failed")
	}
	Logger.Log.Infoln("connected to WordPress as:", user.Name)
	return nil
}
