package wordpress

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lookizm/autopress/model"
	Logger "github.com/lookizm/autopress/utils/log"
)

// minPublishableContent is the shortest body accepted for publication, in
// characters after trimming. A body of exactly this length is rejected.
const minPublishableContent = 100

// ValidationError marks a draft rejected before any remote call was made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid draft: " + e.Reason
}

// PublishError wraps a failure from the remote post creation itself.
type PublishError struct {
	Err error
}

func (e *PublishError) Error() string {
	return "publish failed: " + e.Err.Error()
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// PublishResult reports the live post created by PublishPost.
type PublishResult struct {
	PostID int
	URL    string
	Status string
}

// remotePost is the wire shape of a created or listed post.
type remotePost struct {
	ID     int    `json:"id"`
	Link   string `json:"link"`
	Status string `json:"status"`
	Title  struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
}

func validateDraft(draft *model.DraftPost) error {
	err := validation.ValidateStruct(draft,
		validation.Field(&draft.Title, validation.By(titlePresent)),
		validation.Field(&draft.Content, validation.By(contentPublishable)),
	)
	if err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	return nil
}

func titlePresent(value interface{}) error {
	title, _ := value.(string)
	if strings.TrimSpace(title) == "" {
		return errors.New("is empty")
	}
	return nil
}

func contentPublishable(value interface{}) error {
	content, _ := value.(string)
	if len(strings.TrimSpace(content)) <= minPublishableContent {
		return errors.New("is too short to publish")
	}
	return nil
}

// PublishPost validates a draft, resolves its taxonomy, creates the post and
// attaches a featured image. Post creation failure is fatal; every step after
// the post exists is best effort.
func (c *Client) PublishPost(draft *model.DraftPost) (*PublishResult, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	tagIDs := c.resolveTagIDs(draft.Tags)

	categoryID, err := c.CategoryID(draft.Category)
	if err != nil {
		Logger.Log.Warnf("could not resolve category %q, using default: %v", draft.Category, err)
		categoryID = c.defaultCategoryID
	}

	payload := map[string]interface{}{
		"title":      draft.Title,
		"content":    draft.Content,
		"excerpt":    draft.Excerpt,
		"status":     c.postStatus,
		"categories": []int{categoryID},
		"tags":       tagIDs,
		"author":     c.authorID,
	}

	var created remotePost
	if err := c.doJSON(c.longClient, "POST", c.apiURL+"/posts", payload, &created); err != nil {
		return nil, &PublishError{Err: err}
	}
	Logger.Log.Infof("published post %d: %s", created.ID, created.Link)

	c.attachThumbnail(created.ID, draft)

	if c.tracker != nil {
		c.tracker.AddOrReplace(model.PostRecord{
			ID:            created.ID,
			Title:         draft.Title,
			URL:           created.Link,
			Topic:         draft.Topic,
			Tags:          draft.Tags,
			PublishedDate: time.Now().Format(time.RFC3339),
		})
	}

	return &PublishResult{
		PostID: created.ID,
		URL:    created.Link,
		Status: created.Status,
	}, nil
}

// attachThumbnail finds, downloads and uploads a featured image for a live
// post. The post stands with or without it, so every failure is swallowed.
func (c *Client) attachThumbnail(postID int, draft *model.DraftPost) {
	if c.imageFinder == nil {
		return
	}

	imageURL := c.imageFinder.FindImageURL(draft.Title, draft.Topic, draft.Category)
	if imageURL == "" {
		Logger.Log.Warnln("no thumbnail found for post", postID)
		return
	}

	imageData, filename, err := c.imageFinder.DownloadImage(imageURL)
	if err != nil {
		Logger.Log.Warnf("thumbnail download failed for post %d: %v", postID, err)
		return
	}

	mediaID, err := c.UploadMedia(imageData, filename, "Featured image for: "+draft.Title)
	if err != nil {
		Logger.Log.Warnf("thumbnail upload failed for post %d: %v", postID, err)
		return
	}

	if err := c.SetFeaturedImage(postID, mediaID); err != nil {
		Logger.Log.Warnf("could not set featured image on post %d: %v", postID, err)
	}
}

// DeletePost permanently removes a post, skipping the trash.
func (c *Client) DeletePost(postID int) error {
	deleteURL := c.apiEndpoint(fmt.Sprintf("/posts/%d", postID), url.Values{"force": {"true"}})
	if err := c.doJSON(c.shortClient, "DELETE", deleteURL, nil, nil); err != nil {
		return err
	}
	Logger.Log.Infoln("deleted post:", postID)
	return nil
}

// DeleteAllPosts removes every post on the blog regardless of status and
// returns how many were deleted. Individual failures are logged and skipped,
// so a rerun picks up the stragglers.
func (c *Client) DeleteAllPosts() (int, error) {
	listURL := c.apiEndpoint("/posts", url.Values{
		"per_page": {"100"},
		"status":   {"any"},
	})

	var posts []remotePost
	if err := c.doJSON(c.shortClient, "GET", listURL, nil, &posts); err != nil {
		return 0, err
	}

	deleted := 0
	for _, post := range posts {
		if err := c.DeletePost(post.ID); err != nil {
			Logger.Log.Warnf("could not delete post %d: %v", post.ID, err)
			continue
		}
		deleted++
	}
	Logger.Log.Infof("deleted %d of %d posts", deleted, len(posts))
	return deleted, nil
}

// PostUpdate is a partial update; nil fields are left untouched on the
// remote post.
type PostUpdate struct {
	Title   *string
	Content *string
	Excerpt *string
}

// UpdatePost patches an existing post with the fields set in update.
func (c *Client) UpdatePost(postID int, update *PostUpdate) error {
	payload := map[string]interface{}{}
	if update.Title != nil {
		payload["title"] = *update.Title
	}
	if update.Content != nil {
		payload["content"] = *update.Content
	}
	if update.Excerpt != nil {
		payload["excerpt"] = *update.Excerpt
	}
	if len(payload) == 0 {
		return nil
	}

	postURL := c.apiURL + "/posts/" + strconv.Itoa(postID)
	if err := c.doJSON(c.shortClient, "POST", postURL, payload, nil); err != nil {
		return err
	}
	Logger.Log.Infoln("updated post:", postID)
	return nil
}
