package wordpress

import (
	"net/url"
	"strings"

	"github.com/gosimple/slug"

	"github.com/lookizm/autopress/model"
	Logger "github.com/lookizm/autopress/utils/log"
)

// categoryNames is the closed set of categories the blog publishes under.
var categoryNames = func() map[string]bool {
	names := map[string]bool{}
	for _, name := range model.Categories {
		names[name] = true
	}
	return names
}()

// remoteTerm is the wire shape shared by categories and tags.
type remoteTerm struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GetCategories lists the remote categories.
func (c *Client) GetCategories() ([]remoteTerm, error) {
	var categories []remoteTerm
	if err := c.doJSON(c.shortClient, "GET", c.apiURL+"/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryID resolves a category name to its remote id, creating the
// category when it does not exist. Resolved ids are cached on the client for
// the process lifetime.
func (c *Client) CategoryID(name string) (int, error) {
	if id, ok := c.categoryCache[name]; ok {
		return id, nil
	}

	if categories, err := c.GetCategories(); err == nil {
		for _, cat := range categories {
			if strings.EqualFold(cat.Name, name) {
				c.categoryCache[name] = cat.ID
				return cat.ID, nil
			}
		}
	}

	id, err := c.CreateCategory(name, "", model.CategoryDescriptions[name])
	if err != nil {
		return 0, err
	}
	c.categoryCache[name] = id
	return id, nil
}

// CreateCategory creates a category unless one with the same name already
// exists, returning the category id either way.
func (c *Client) CreateCategory(name, categorySlug, description string) (int, error) {
	if categorySlug == "" {
		categorySlug = slug.Make(name)
	}

	searchURL := c.apiEndpoint("/categories", url.Values{
		"search":   {name},
		"per_page": {"1"},
	})
	var found []remoteTerm
	if err := c.doJSON(c.shortClient, "GET", searchURL, nil, &found); err != nil {
		return 0, err
	}
	for _, cat := range found {
		if strings.EqualFold(cat.Name, name) {
			return cat.ID, nil
		}
	}

	payload := map[string]string{
		"name": name,
		"slug": categorySlug,
	}
	if description != "" {
		payload["description"] = description
	}

	var created remoteTerm
	if err := c.doJSON(c.shortClient, "POST", c.apiURL+"/categories", payload, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// TagID resolves a tag name to its remote id, creating the tag when it does
// not exist.
func (c *Client) TagID(name string) (int, error) {
	searchURL := c.apiEndpoint("/tags", url.Values{
		"search":   {name},
		"per_page": {"1"},
	})
	var found []remoteTerm
	if err := c.doJSON(c.shortClient, "GET", searchURL, nil, &found); err != nil {
		return 0, err
	}
	if len(found) > 0 && strings.EqualFold(found[0].Name, name) {
		return found[0].ID, nil
	}

	var created remoteTerm
	if err := c.doJSON(c.shortClient, "POST", c.apiURL+"/tags", map[string]string{"name": name}, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// resolveTagIDs maps tag names to remote ids; a tag that fails to resolve is
// dropped from the post, not fatal. The result is never nil: the REST schema
// wants an array, not null, even when every tag dropped.
func (c *Client) resolveTagIDs(tags []string) []int {
	ids := []int{}
	for _, tag := range tags {
		id, err := c.TagID(tag)
		if err != nil {
			Logger.Log.Warnf("error creating tag %q: %v", tag, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
