package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/profilehub/profilehub-client/internal/api"
	"github.com/profilehub/profilehub-client/internal/models"
	apperrors "github.com/profilehub/profilehub-client/pkg/errors"
	"github.com/profilehub/profilehub-client/pkg/identifier"
	"github.com/profilehub/profilehub-client/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://api.example.test"

func init() {
	logger.Initialize(logger.Config{Level: "info", Environment: "test"})
}

type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	args := m.Called(url, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Get(url string) (*http.Response, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestGetProfile(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet &&
			req.URL.String() == baseURL+"/profiles/7"
	})).Return(jsonResponse(http.StatusOK, `{"id":7,"name":"Sam"}`), nil).Once()

	client := api.NewClientWithHTTP(baseURL, hc)
	profile, err := client.GetProfile(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, identifier.Persisted(7), profile.ID)
	assert.Equal(t, "Sam", profile.Name)
	hc.AssertExpectations(t)
}

func TestGetProfile_NotFound(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.Anything).Return(jsonResponse(http.StatusNotFound, `{}`), nil).Once()

	client := api.NewClientWithHTTP(baseURL, hc)
	_, err := client.GetProfile(context.Background(), 99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetProfile_ServerError(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.Anything).Return(jsonResponse(http.StatusInternalServerError, `{}`), nil).Once()

	client := api.NewClientWithHTTP(baseURL, hc)
	_, err := client.GetProfile(context.Background(), 7)

	assert.ErrorIs(t, err, apperrors.ErrRemote)
}

func TestGetMasterProfile(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == baseURL+"/users/1/profiles/master"
	})).Return(jsonResponse(http.StatusOK, `{"id":7,"name":"Master Profile","masterProfile":true}`), nil).Once()

	client := api.NewClientWithHTTP(baseURL, hc)
	profile, err := client.GetMasterProfile(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, profile.MasterProfile)
	hc.AssertExpectations(t)
}

func TestUpdateProfile_WirePayload(t *testing.T) {
	var sent []byte
	hc := new(MockHTTPClient)
	hc.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPut &&
			req.URL.String() == baseURL+"/profiles/7" &&
			req.Header.Get("Content-Type") == "application/json"
	})).Run(func(args mock.Arguments) {
		req := args.Get(0).(*http.Request)
		var err error
		sent, err = io.ReadAll(req.Body)
		require.NoError(t, err)
	}).Return(jsonResponse(http.StatusOK, `{"id":7,"name":"Sam"}`), nil).Once()

	draft := models.EmptyProfile()
	draft.ID = identifier.Persisted(7)
	draft.Name = "Sam"
	draft.Skills = []models.Entry{
		{ID: identifier.Persisted(3), Text: "Docs"},
		{Text: "Go"},
	}

	client := api.NewClientWithHTTP(baseURL, hc)
	_, err := client.UpdateProfile(context.Background(), 7, draft)
	require.NoError(t, err)

	// Unsaved entries go over the wire with a null id so the server assigns one.
	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(sent, &payload))
	assert.JSONEq(t, `[{"id":3,"text":"Docs"},{"id":null,"text":"Go"}]`, string(payload["skills"]))
	assert.JSONEq(t, `7`, string(payload["id"]))
	hc.AssertExpectations(t)
}

func TestCreateProfile(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost &&
			req.URL.String() == baseURL+"/users/1/profiles"
	})).Return(jsonResponse(http.StatusOK, `{"id":42,"name":"Fresh"}`), nil).Once()

	draft := models.EmptyProfile()
	draft.Name = "Fresh"

	client := api.NewClientWithHTTP(baseURL, hc)
	saved, err := client.CreateProfile(context.Background(), 1, draft)

	require.NoError(t, err)
	assert.Equal(t, identifier.Persisted(42), saved.ID)
	hc.AssertExpectations(t)
}

func TestDeleteProfile(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodDelete &&
			req.URL.String() == baseURL+"/profiles/7"
	})).Return(jsonResponse(http.StatusOK, ``), nil).Once()

	client := api.NewClientWithHTTP(baseURL, hc)
	require.NoError(t, client.DeleteProfile(context.Background(), 7))
	hc.AssertExpectations(t)
}

func TestSearchProfiles_QueryParameters(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		q := req.URL.Query()
		return req.URL.Path == "/users/1/profiles/page" &&
			q.Get("name") == "smith" &&
			q.Get("skill") == "go" &&
			q.Get("pageNumber") == "2" &&
			q.Get("pageSize") == "20" &&
			!q.Has("bio")
	})).Return(jsonResponse(http.StatusOK, `{"profiles":[{"id":7,"name":"Sam"}],"lastPage":3,"totalResults":55}`), nil).Once()

	filters := models.FilterSet{
		models.FilterName:  "smith",
		models.FilterSkill: "go",
		models.FilterBio:   "",
	}

	client := api.NewClientWithHTTP(baseURL, hc)
	page, err := client.SearchProfiles(context.Background(), 1, filters, models.PageRequest{PageNumber: 2, PageSize: 20})

	require.NoError(t, err)
	assert.Len(t, page.Profiles, 1)
	assert.Equal(t, 3, page.LastPage)
	assert.Equal(t, 55, page.TotalResults)
	hc.AssertExpectations(t)
}

func TestCloneMasterProfile(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost &&
			req.URL.String() == baseURL+"/users/1/profiles/master/clone"
	})).Return(jsonResponse(http.StatusOK, `42`), nil).Once()

	client := api.NewClientWithHTTP(baseURL, hc)
	id, err := client.CloneMasterProfile(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	hc.AssertExpectations(t)
}

func TestGetUserInfo(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == baseURL+"/users/1/info"
	})).Return(jsonResponse(http.StatusOK, `{"id":1,"name":"Sam","email":"sam@example.com"}`), nil).Once()

	client := api.NewClientWithHTTP(baseURL, hc)
	user, err := client.GetUserInfo(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "sam@example.com", user.Email)
	hc.AssertExpectations(t)
}

func TestPDFURL(t *testing.T) {
	client := api.NewClientWithHTTP(baseURL, new(MockHTTPClient))

	assert.Equal(t, baseURL+"/profiles/7/pdf", client.PDFURL(7, false))
	assert.Equal(t, baseURL+"/profiles/7/pdf?secondary=true", client.PDFURL(7, true))
}

func TestTransportErrorIsWrapped(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.Anything).Return(nil, assert.AnError).Once()

	client := api.NewClientWithHTTP(baseURL, hc)
	_, err := client.GetProfile(context.Background(), 7)

	assert.ErrorIs(t, err, assert.AnError)
}
