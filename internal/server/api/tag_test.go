package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstepanenko/storefront/internal/common"
	"github.com/dstepanenko/storefront/internal/server/models"
)

type fakeTagService struct {
	listOut []*models.Tag
	listErr error

	createOut *models.Tag
	createErr error
	gotName   string

	deleteErr error
	gotID     int64
}

func (f *fakeTagService) List(ctx context.Context) ([]*models.Tag, error) {
	return f.listOut, f.listErr
}
func (f *fakeTagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	f.gotName = name
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeTagService) Delete(ctx context.Context, id int64) error {
	f.gotID = id
	return f.deleteErr
}

func TestListTagsRoute(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := newTestServer(t, authedUsers(), nil, &fakeTagService{}, nil)

		resp, err := s.app.Test(jsonRequest(http.MethodGet, "/tags", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, float64(0), got["count"])
	})

	t.Run("all tags", func(t *testing.T) {
		tags := &fakeTagService{listOut: []*models.Tag{
			{ID: 1, Name: "seafood"}, {ID: 2, Name: "fruit"}, {ID: 3, Name: "solid food"},
		}}
		s := newTestServer(t, authedUsers(), nil, tags, nil)

		resp, err := s.app.Test(jsonRequest(http.MethodGet, "/tags", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			Count int           `json:"count"`
			Tags  []*models.Tag `json:"tags"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 3, got.Count)
		assert.Equal(t, tags.listOut, got.Tags)
	})
}

func TestCreateTagRoute_OK(t *testing.T) {
	tags := &fakeTagService{createOut: &models.Tag{ID: 4, Name: "a non-existent tag"}}
	s := newTestServer(t, authedUsers(), nil, tags, nil)

	resp, err := s.app.Test(loggedIn(jsonRequest(http.MethodPost, "/tags",
		map[string]any{"name": "a non-existent tag"})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, msgOK, decodeMessage(t, resp))
	assert.Equal(t, "a non-existent tag", tags.gotName)
}

func TestCreateTagRoute_WrongFormat(t *testing.T) {
	s := newTestServer(t, authedUsers(), nil, &fakeTagService{}, nil)

	for _, body := range []map[string]any{nil, {"should be name": "xxx"}} {
		resp, err := s.app.Test(loggedIn(jsonRequest(http.MethodPost, "/tags", body)))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, msgWrongDataFormat, decodeMessage(t, resp))
	}
}

func TestCreateTagRoute_WrongValueType(t *testing.T) {
	s := newTestServer(t, authedUsers(), nil, &fakeTagService{}, nil)

	resp, err := s.app.Test(loggedIn(jsonRequest(http.MethodPost, "/tags", map[string]any{"name": 0})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, msgInvalidData, decodeMessage(t, resp))
}

func TestCreateTagRoute_Duplicate(t *testing.T) {
	s := newTestServer(t, authedUsers(), nil, &fakeTagService{createErr: common.ErrorDuplicateTag}, nil)

	resp, err := s.app.Test(loggedIn(jsonRequest(http.MethodPost, "/tags",
		map[string]any{"name": "black magic"})))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, msgDuplicateTag, decodeMessage(t, resp))
}

func TestDeleteTagRoute(t *testing.T) {
	tags := &fakeTagService{}
	s := newTestServer(t, authedUsers(), nil, tags, nil)

	resp, err := s.app.Test(loggedIn(jsonRequest(http.MethodDelete, "/tags/3", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, msgOK, decodeMessage(t, resp))
	assert.Equal(t, int64(3), tags.gotID)

	sNF := newTestServer(t, authedUsers(), nil, &fakeTagService{deleteErr: common.ErrorNotFound}, nil)
	resp, err = sNF.app.Test(loggedIn(jsonRequest(http.MethodDelete, "/tags/404", nil)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, msgAbsentTag, decodeMessage(t, resp))
}
