package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/linkedin-lookup/internal/model"
	"github.com/sells-group/linkedin-lookup/pkg/apollo"
	"github.com/sells-group/linkedin-lookup/pkg/github"
	"github.com/sells-group/linkedin-lookup/pkg/gravatar"
)

type mockApollo struct{ mock.Mock }

func (m *mockApollo) MatchPerson(ctx context.Context, req apollo.MatchRequest) (*apollo.MatchResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*apollo.MatchResponse)
	return resp, args.Error(1)
}

type mockGitHub struct{ mock.Mock }

func (m *mockGitHub) SearchUsers(ctx context.Context, query string) (*github.SearchUsersResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*github.SearchUsersResponse)
	return resp, args.Error(1)
}

func (m *mockGitHub) GetUser(ctx context.Context, login string) (*github.User, error) {
	args := m.Called(ctx, login)
	user, _ := args.Get(0).(*github.User)
	return user, args.Error(1)
}

type mockGravatar struct{ mock.Mock }

func (m *mockGravatar) Profile(ctx context.Context, email string) (*gravatar.Entry, error) {
	args := m.Called(ctx, email)
	entry, _ := args.Get(0).(*gravatar.Entry)
	return entry, args.Error(1)
}

func TestApollo_DisabledWithoutClient(t *testing.T) {
	p := NewApollo(nil)
	assert.False(t, p.Enabled())
	assert.Equal(t, StageSequential, p.Stage())
	assert.Equal(t, "apollo", p.Name())
}

func TestApollo_Found(t *testing.T) {
	client := &mockApollo{}
	client.On("MatchPerson", mock.Anything, apollo.MatchRequest{
		Email:     "jane@acme.com",
		FirstName: "Jane",
		LastName:  "van Doe",
	}).Return(&apollo.MatchResponse{Person: &apollo.Person{
		Name:         "Jane van Doe",
		Title:        "CTO",
		LinkedInURL:  "https://www.linkedin.com/in/janevandoe",
		Organization: &apollo.Organization{Name: "Acme"},
	}}, nil)

	got, err := NewApollo(client).Lookup(context.Background(), model.Query{Email: "jane@acme.com", Name: "Jane  van Doe"})

	require.NoError(t, err)
	assert.Equal(t, &model.PartialIdentity{
		Source:      "apollo",
		Name:        "Jane van Doe",
		Title:       "CTO",
		Company:     "Acme",
		LinkedInURL: "https://www.linkedin.com/in/janevandoe",
	}, got)
	client.AssertExpectations(t)
}

func TestApollo_NoPerson(t *testing.T) {
	client := &mockApollo{}
	client.On("MatchPerson", mock.Anything, apollo.MatchRequest{Email: "x@y.io"}).
		Return(&apollo.MatchResponse{}, nil)

	got, err := NewApollo(client).Lookup(context.Background(), model.Query{Email: "x@y.io"})

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestApollo_Error(t *testing.T) {
	client := &mockApollo{}
	client.On("MatchPerson", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	got, err := NewApollo(client).Lookup(context.Background(), model.Query{Email: "x@y.io"})

	require.Error(t, err)
	assert.Nil(t, got)
}

func TestMatchRequest_NameSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want apollo.MatchRequest
	}{
		{"none", "", apollo.MatchRequest{Email: "e@x.io"}},
		{"single token", "Jane", apollo.MatchRequest{Email: "e@x.io", Name: "Jane"}},
		{"two tokens", "Jane Doe", apollo.MatchRequest{Email: "e@x.io", FirstName: "Jane", LastName: "Doe"}},
		{"three tokens", "Mary Jane Doe", apollo.MatchRequest{Email: "e@x.io", FirstName: "Mary", LastName: "Jane Doe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchRequest(model.Query{Email: "e@x.io", Name: tt.in}))
		})
	}
}

func TestGitHub_Found(t *testing.T) {
	client := &mockGitHub{}
	client.On("SearchUsers", mock.Anything, "jane@acme.com in:email").
		Return(&github.SearchUsersResponse{Items: []github.UserResult{{Login: "janedoe"}, {Login: "other"}}}, nil)
	client.On("GetUser", mock.Anything, "janedoe").Return(&github.User{
		Login:    "janedoe",
		Name:     "Jane Doe",
		Company:  "@acme",
		Location: "Berlin",
		Bio:      "Platform engineer",
		Blog:     "https://linkedin.com/in/jane-doe/",
	}, nil)

	got, err := NewGitHub(client).Lookup(context.Background(), model.Query{Email: "jane@acme.com"})

	require.NoError(t, err)
	assert.Equal(t, "github", got.Source)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "acme", got.Company)
	assert.Equal(t, "Berlin", got.Location)
	assert.Equal(t, "https://linkedin.com/in/jane-doe/", got.LinkedInURL)
	assert.Equal(t, "Platform engineer", got.Bio)
	client.AssertExpectations(t)
}

func TestGitHub_BioLinkWinsOverBlog(t *testing.T) {
	client := &mockGitHub{}
	client.On("SearchUsers", mock.Anything, mock.Anything).
		Return(&github.SearchUsersResponse{Items: []github.UserResult{{Login: "jd"}}}, nil)
	client.On("GetUser", mock.Anything, "jd").Return(&github.User{
		Bio:  "find me at https://www.linkedin.com/in/from-bio",
		Blog: "https://www.linkedin.com/in/from-blog",
	}, nil)

	got, err := NewGitHub(client).Lookup(context.Background(), model.Query{Email: "jd@x.io"})

	require.NoError(t, err)
	assert.Equal(t, "https://www.linkedin.com/in/from-bio", got.LinkedInURL)
}

func TestGitHub_NoUsers(t *testing.T) {
	client := &mockGitHub{}
	client.On("SearchUsers", mock.Anything, mock.Anything).Return(&github.SearchUsersResponse{}, nil)

	got, err := NewGitHub(client).Lookup(context.Background(), model.Query{Email: "jd@x.io"})

	require.NoError(t, err)
	assert.Nil(t, got)
	client.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestGitHub_SearchBudgetSpentIsNoRecord(t *testing.T) {
	client := &mockGitHub{}
	client.On("SearchUsers", mock.Anything, mock.Anything).Return(nil, github.ErrRateLimited)

	got, err := NewGitHub(client).Lookup(context.Background(), model.Query{Email: "jd@x.io"})

	require.NoError(t, err)
	assert.Nil(t, got)
	client.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestGitHub_ProfileError(t *testing.T) {
	client := &mockGitHub{}
	client.On("SearchUsers", mock.Anything, mock.Anything).
		Return(&github.SearchUsersResponse{Items: []github.UserResult{{Login: "jd"}}}, nil)
	client.On("GetUser", mock.Anything, "jd").Return(nil, errors.New("status 500"))

	got, err := NewGitHub(client).Lookup(context.Background(), model.Query{Email: "jd@x.io"})

	require.Error(t, err)
	assert.Nil(t, got)
}

func TestGravatar_AccountLink(t *testing.T) {
	client := &mockGravatar{}
	client.On("Profile", mock.Anything, "jane@acme.com").Return(&gravatar.Entry{
		DisplayName:     "Jane D",
		Name:            gravatar.Name{Formatted: "Jane Doe"},
		AboutMe:         "hi",
		CurrentLocation: "Lisbon",
		Accounts: []gravatar.Account{
			{Shortname: "twitter", URL: "https://twitter.com/jd"},
			{Shortname: "linkedin", URL: "https://www.linkedin.com/in/jd"},
		},
		URLs: []gravatar.URL{{Value: "https://linkedin.com/in/other"}},
	}, nil)

	got, err := NewGravatar(client).Lookup(context.Background(), model.Query{Email: "jane@acme.com"})

	require.NoError(t, err)
	assert.Equal(t, &model.PartialIdentity{
		Source:      "gravatar",
		Name:        "Jane D",
		Location:    "Lisbon",
		LinkedInURL: "https://www.linkedin.com/in/jd",
		Bio:         "hi",
	}, got)
}

func TestGravatar_URLScanAndFormattedName(t *testing.T) {
	client := &mockGravatar{}
	client.On("Profile", mock.Anything, mock.Anything).Return(&gravatar.Entry{
		Name: gravatar.Name{Formatted: "Jane Doe"},
		URLs: []gravatar.URL{
			{Value: "https://janedoe.dev"},
			{Value: "https://LinkedIn.com/in/JaneDoe/"},
		},
	}, nil)

	got, err := NewGravatar(client).Lookup(context.Background(), model.Query{Email: "jane@acme.com"})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "https://LinkedIn.com/in/JaneDoe/", got.LinkedInURL)
	assert.Empty(t, got.Company)
}

func TestGravatar_NotFound(t *testing.T) {
	client := &mockGravatar{}
	client.On("Profile", mock.Anything, mock.Anything).Return(nil, gravatar.ErrNotFound)

	got, err := NewGravatar(client).Lookup(context.Background(), model.Query{Email: "x@y.io"})

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGravatar_Error(t *testing.T) {
	client := &mockGravatar{}
	client.On("Profile", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: timeout"))

	_, err := NewGravatar(client).Lookup(context.Background(), model.Query{Email: "x@y.io"})

	require.Error(t, err)
}
