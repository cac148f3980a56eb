// Package tracker keeps the durable record of every published post and ranks
// prior posts for internal linking. The collection lives in a single JSON
// file that is loaded once and rewritten in full after every mutation. The
// design assumes a single active publisher process; concurrent writers race
// and the last write wins.
package tracker

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lookizm/autopress/model"
	Logger "github.com/lookizm/autopress/utils/log"
)

const DefaultTrackerFile = "published_posts.json"

type PostTracker struct {
	trackerFile string
	posts       []model.PostRecord
}

// New loads the tracked posts from trackerFile. A missing or unreadable file
// yields an empty collection, never an error.
func New(trackerFile string) *PostTracker {
	if trackerFile == "" {
		trackerFile = DefaultTrackerFile
	}
	t := &PostTracker{trackerFile: trackerFile}
	t.posts = t.loadPosts()
	return t
}

func (t *PostTracker) loadPosts() []model.PostRecord {
	data, err := os.ReadFile(t.trackerFile)
	if err != nil {
		if !os.IsNotExist(err) {
			Logger.Log.WithFields(logrus.Fields{"file": t.trackerFile}).
				Errorln("error loading post tracker:", err)
		}
		return []model.PostRecord{}
	}

	var posts []model.PostRecord
	if err := json.Unmarshal(data, &posts); err != nil {
		Logger.Log.WithFields(logrus.Fields{"file": t.trackerFile}).
			Errorln("error parsing post tracker:", err)
		return []model.PostRecord{}
	}
	return posts
}

func (t *PostTracker) savePosts() {
	data, err := json.MarshalIndent(t.posts, "", "  ")
	if err != nil {
		Logger.Log.Errorln("error encoding post tracker:", err)
		return
	}
	if err := os.WriteFile(t.trackerFile, data, 0644); err != nil {
		Logger.Log.WithFields(logrus.Fields{"file": t.trackerFile}).
			Errorln("error saving post tracker:", err)
	}
}

// AddOrReplace upserts a record by id. An existing id is replaced in place,
// preserving position; a new id is appended. The full collection is persisted
// afterward.
func (t *PostTracker) AddOrReplace(record model.PostRecord) {
	if record.Topic == "" {
		record.Topic = "auto-selected"
	}
	if record.Tags == nil {
		record.Tags = []string{}
	}

	replaced := false
	for i := range t.posts {
		if t.posts[i].ID == record.ID {
			t.posts[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		t.posts = append(t.posts, record)
	}

	t.savePosts()
	Logger.Log.WithFields(logrus.Fields{"post_id": record.ID}).
		Infoln("post tracked:", record.Title)
}

// Relevant returns up to limit prior posts ranked by relevance to the given
// topic and title, best first. The post whose title equals title
// (case-insensitive) is excluded. Scoring weights are fixed for parity with
// the established ranking behavior.
func (t *PostTracker) Relevant(topic, title string, limit int) []model.PostRecord {
	if len(t.posts) == 0 {
		return nil
	}

	topicLower := strings.ToLower(topic)
	titleLower := strings.ToLower(title)

	keywords := map[string]bool{}
	for _, w := range strings.Fields(topicLower) {
		keywords[w] = true
	}
	for _, w := range strings.Fields(titleLower) {
		keywords[w] = true
	}

	type scoredPost struct {
		score int
		post  model.PostRecord
	}
	var scored []scoredPost

	for _, post := range t.posts {
		if strings.ToLower(post.Title) == titleLower {
			continue
		}

		score := 0
		postTopic := strings.ToLower(post.Topic)
		postTitle := strings.ToLower(post.Title)

		if topicLower != "" && strings.Contains(postTopic, topicLower) {
			score += 10
		}
		if topicLower != "" && strings.Contains(topicLower, postTopic) {
			score += 10
		}

		for keyword := range keywords {
			if len(keyword) <= 3 {
				continue
			}
			if strings.Contains(postTitle, keyword) {
				score += 5
			}
			if strings.Contains(postTopic, keyword) {
				score += 3
			}
		}

		for keyword := range keywords {
			if len(keyword) <= 3 {
				continue
			}
			for _, tag := range post.Tags {
				tagLower := strings.ToLower(tag)
				if strings.Contains(tagLower, keyword) || strings.Contains(keyword, tagLower) {
					score += 2
				}
			}
		}

		if score > 0 {
			scored = append(scored, scoredPost{score: score, post: post})
		}
	}

	// ties keep encounter order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if limit > len(scored) {
		limit = len(scored)
	}
	relevant := make([]model.PostRecord, 0, limit)
	for _, sp := range scored[:limit] {
		relevant = append(relevant, sp.post)
	}
	return relevant
}

// All returns every tracked post in storage order.
func (t *PostTracker) All() []model.PostRecord {
	return t.posts
}

// Count returns the number of tracked posts.
func (t *PostTracker) Count() int {
	return len(t.posts)
}

// Clear drops every tracked post and persists the empty collection. Used by
// the delete-all utility.
func (t *PostTracker) Clear() {
	t.posts = []model.PostRecord{}
	t.savePosts()
}
