// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package news_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfyalova/granfondo/internal/news"
	"github.com/gfyalova/granfondo/internal/platform/apperr"
)

// # Test Fakes

// fakePostRepository is an in-memory PostRepository.
type fakePostRepository struct {
	posts map[string]*news.Post
}

func newFakePostRepository() *fakePostRepository {
	return &fakePostRepository{posts: map[string]*news.Post{}}
}

func (repository *fakePostRepository) Create(_ context.Context, post *news.Post) error {
	for _, existing := range repository.posts {
		if existing.Slug == post.Slug {
			return apperr.Conflict("A post with this slug already exists")
		}
	}
	stored := *post
	repository.posts[post.ID] = &stored
	return nil
}

func (repository *fakePostRepository) FindByID(_ context.Context, id string) (*news.Post, error) {
	post, ok := repository.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	found := *post
	return &found, nil
}

func (repository *fakePostRepository) FindBySlug(_ context.Context, slug string) (*news.Post, error) {
	for _, post := range repository.posts {
		if post.Slug == slug {
			found := *post
			return &found, nil
		}
	}
	return nil, apperr.NotFound("Post")
}

func (repository *fakePostRepository) List(_ context.Context, status news.Status, _, _ int) ([]*news.Post, int, error) {
	var page []*news.Post
	for _, post := range repository.posts {
		if status != "" && post.Status != status {
			continue
		}
		found := *post
		page = append(page, &found)
	}
	return page, len(page), nil
}

func (repository *fakePostRepository) Update(_ context.Context, post *news.Post) error {
	if _, ok := repository.posts[post.ID]; !ok {
		return apperr.NotFound("Post")
	}
	stored := *post
	repository.posts[post.ID] = &stored
	return nil
}

func (repository *fakePostRepository) Delete(_ context.Context, id string) error {
	if _, ok := repository.posts[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(repository.posts, id)
	return nil
}

// # Helpers

func newTestService(t *testing.T) (*news.Service, *fakePostRepository) {
	t.Helper()

	repository := newFakePostRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return news.NewService(repository, logger), repository
}

func validInput() news.PostInput {
	return news.PostInput{
		Title:   "Yol Kapanmaları Duyurusu",
		Summary: "Yarış günü kapanacak güzergahlar.",
		Body:    "<p>Sahil yolu 07:00–14:00 arası <strong>kapalı</strong> olacaktır.</p>",
		Status:  string(news.StatusPublished),
	}
}

// # Create & Update

/*
TestService_Create covers validation, slug derivation, the single
write-time sanitization pass, and first-publish stamping.
*/
func TestService_Create(t *testing.T) {
	t.Run("derives slug and stamps publish time", func(t *testing.T) {
		service, repository := newTestService(t)

		post, err := service.Create(context.Background(), validInput())
		require.NoError(t, err)

		stored := repository.posts[post.ID]
		require.NotNil(t, stored)
		assert.Equal(t, "yol-kapanmalar-duyurusu", stored.Slug)
		require.NotNil(t, stored.PublishedAt)
	})

	t.Run("sanitizes body at write time", func(t *testing.T) {
		service, repository := newTestService(t)

		input := validInput()
		input.Body = `<p>Duyuru</p><script>alert(1)</script>`

		post, err := service.Create(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "<p>Duyuru</p>", repository.posts[post.ID].Body)
	})

	t.Run("draft carries no publish time", func(t *testing.T) {
		service, _ := newTestService(t)

		input := validInput()
		input.Status = string(news.StatusDraft)

		post, err := service.Create(context.Background(), input)
		require.NoError(t, err)
		assert.Nil(t, post.PublishedAt)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Create(context.Background(), validInput())
		require.NoError(t, err)

		_, err = service.Create(context.Background(), validInput())
		assert.EqualError(t, err, "A post with this slug already exists")
	})

	t.Run("validation failures", func(t *testing.T) {
		service, repository := newTestService(t)

		tests := []struct {
			name   string
			mutate func(*news.PostInput)
		}{
			{"missing title", func(input *news.PostInput) { input.Title = "" }},
			{"missing body", func(input *news.PostInput) { input.Body = "" }},
			{"malformed slug", func(input *news.PostInput) { input.Slug = "Büyük Harf!" }},
			{"unknown status", func(input *news.PostInput) { input.Status = "pinned" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := validInput()
				tt.mutate(&input)

				post, err := service.Create(context.Background(), input)

				assert.Nil(t, post)
				require.Error(t, err)
				assert.True(t, apperr.IsAppError(err))
			})
		}

		assert.Empty(t, repository.posts)
	})
}

/*
TestService_Update verifies first-publish stamping happens exactly once.
*/
func TestService_Update(t *testing.T) {
	service, repository := newTestService(t)

	input := validInput()
	input.Status = string(news.StatusDraft)
	created, err := service.Create(context.Background(), input)
	require.NoError(t, err)
	require.Nil(t, created.PublishedAt)

	// First transition into published stamps the time.
	input.Status = string(news.StatusPublished)
	published, err := service.Update(context.Background(), created.ID, input)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstPublished := *published.PublishedAt

	// A later edit keeps the original stamp.
	input.Summary = "Güncellenmiş özet."
	edited, err := service.Update(context.Background(), created.ID, input)
	require.NoError(t, err)
	require.NotNil(t, edited.PublishedAt)
	assert.Equal(t, firstPublished, *edited.PublishedAt)
	assert.Equal(t, "Güncellenmiş özet.", repository.posts[created.ID].Summary)

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.Update(context.Background(), "missing", validInput())
		assert.EqualError(t, err, "Post not found")
	})
}

// # Public Reads

/*
TestService_GetPublishedBySlug verifies drafts stay invisible on the
public surface.
*/
func TestService_GetPublishedBySlug(t *testing.T) {
	service, _ := newTestService(t)

	published, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	draftInput := validInput()
	draftInput.Title = "Taslak Duyuru"
	draftInput.Status = string(news.StatusDraft)
	draft, err := service.Create(context.Background(), draftInput)
	require.NoError(t, err)

	post, err := service.GetPublishedBySlug(context.Background(), published.Slug)
	require.NoError(t, err)
	assert.Equal(t, published.ID, post.ID)

	_, err = service.GetPublishedBySlug(context.Background(), draft.Slug)
	assert.EqualError(t, err, "Post not found")

	_, err = service.GetPublishedBySlug(context.Background(), "no-such-slug")
	assert.EqualError(t, err, "Post not found")
}
