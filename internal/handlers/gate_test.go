package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"post-service/internal/models"
	"post-service/internal/telemetry"
)

func TestNonMembersAreForbiddenEverywhere(t *testing.T) {
	postInGroup := func(f *postFixture) {
		f.posts.On("GroupForPost", mock.Anything, int64(12)).Return(int64(7), nil).Once()
	}
	postFetched := func(f *postFixture) {
		f.posts.On("GetPost", mock.Anything, int64(12)).Return(models.Post{ID: 12, GroupID: 7}, nil).Once()
	}
	commentOnPost := func(f *postFixture) {
		f.comments.On("GetComment", mock.Anything, int64(5)).Return(models.Comment{ID: 5, PostID: 12}, nil).Once()
		postInGroup(f)
	}

	cases := map[string]struct {
		method string
		path   string
		body   string
		setup  func(f *postFixture)
	}{
		"getpost":       {method: http.MethodGet, path: "/post_getpost?post_id=12", setup: postFetched},
		"getposts":      {method: http.MethodGet, path: "/post_getposts?group_id=7&offset=0&amount=5"},
		"getpostupdate": {method: http.MethodGet, path: "/post_getpostupdate?group_id=7&last_update=3"},
		"countposts":    {method: http.MethodGet, path: "/post_countposts?group_id=7"},
		"submitpost":    {method: http.MethodPost, path: "/post_submitpost", body: `{"group_id":7,"content":"hi"}`},
		"editpost":      {method: http.MethodPost, path: "/post_editpost", body: `{"post_id":12,"content":"x"}`, setup: postInGroup},
		"deletepost":    {method: http.MethodPost, path: "/post_deletepost", body: `{"post_id":12}`, setup: postInGroup},
		"getcomments":   {method: http.MethodGet, path: "/post_getcomments?post_id=12&offset=0&amount=5", setup: postInGroup},
		"submitcomment": {method: http.MethodPost, path: "/post_submitcomment", body: `{"post_id":12,"content":"hi"}`, setup: postInGroup},
		"editcomment":   {method: http.MethodPost, path: "/post_editcomment", body: `{"comment_id":5,"content":"x"}`, setup: commentOnPost},
		"deletecomment": {method: http.MethodPost, path: "/post_deletecomment", body: `{"comment_id":5}`, setup: commentOnPost},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			if tc.setup != nil {
				tc.setup(f)
			}
			f.members.On("IsMember", mock.Anything, int64(7), testUserID).Return(false, nil).Once()

			var rec *httptest.ResponseRecorder
			if tc.method == http.MethodPost {
				rec = f.postJSON(tc.path, tc.body)
			} else {
				rec = f.get(tc.path)
			}

			require.Equal(t, http.StatusForbidden, rec.Code)
			env := decode(t, rec)
			require.False(t, env.Success)
			require.Equal(t, msgNotMember, env.ErrorMsg)
			require.Contains(t, f.audits("ERROR"), telemetry.AuditPayload{Level: "ERROR", Text: "not a member of group"})
			for _, event := range []string{telemetry.PostCreated, telemetry.PostEdited, telemetry.PostDeleted,
				telemetry.CommentCreated, telemetry.CommentEdited, telemetry.CommentDeleted} {
				require.Empty(t, f.events(event))
			}
		})
	}
}
