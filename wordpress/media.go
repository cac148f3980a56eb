package wordpress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	Logger "github.com/lookizm/autopress/utils/log"
)

// UploadMedia pushes image bytes into the media library and returns the
// media id.
func (c *Client) UploadMedia(imageData []byte, filename, title string) (int, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return 0, err
	}
	if _, err := part.Write(imageData); err != nil {
		return 0, err
	}
	if title != "" {
		if err := writer.WriteField("title", title); err != nil {
			return 0, err
		}
	}
	if err := writer.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequest("POST", c.apiURL+"/media", &body)
	if err != nil {
		return 0, err
	}
	// the multipart writer supplies the boundary; only auth goes on top
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := c.longClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	resBody, readErr := io.ReadAll(res.Body)
	if res.StatusCode >= 300 {
		if readErr == nil {
			Logger.Log.Errorln("response body is: ", string(resBody))
		}
		return 0, fmt.Errorf("non-200 http code: %d", res.StatusCode)
	}

	if readErr != nil {
		return 0, readErr
	}
	var media struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(resBody, &media); err != nil {
		return 0, err
	}

	Logger.Log.Infof("uploaded thumbnail: %s (media id: %d)", filename, media.ID)
	return media.ID, nil
}

// SetFeaturedImage associates an uploaded media item as a post's featured
// image.
func (c *Client) SetFeaturedImage(postID, mediaID int) error {
	postURL := c.apiURL + "/posts/" + strconv.Itoa(postID)
	if err := c.doJSON(c.shortClient, "POST", postURL, map[string]int{"featured_media": mediaID}, nil); err != nil {
		return err
	}
	Logger.Log.Infof("set featured image (media id: %d)", mediaID)
	return nil
}
