package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/butiken/storefront/internal/session"
	"github.com/butiken/storefront/internal/session/memory"
)

type ManagerSuite struct {
	suite.Suite
	store   *memory.Store
	manager *session.Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.store = memory.New()
	s.manager = session.NewManager(s.store, false)
	s.ctx = context.Background()
}

func (s *ManagerSuite) TestLoadCreatesSessionAndSetsCookie() {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	sess, err := s.manager.Load(s.ctx, w, r)
	s.Require().NoError(err)
	s.NotEmpty(sess.ID)

	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal(session.CookieName, cookies[0].Name)
	s.Equal(sess.ID, cookies[0].Value)
	s.True(cookies[0].HttpOnly)
}

func (s *ManagerSuite) TestLoadReturnsExistingSession() {
	existing := &session.Session{ID: "abc", Captcha: "zzzzzz"}
	s.Require().NoError(s.store.Save(s.ctx, existing))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "abc"})

	sess, err := s.manager.Load(s.ctx, w, r)
	s.Require().NoError(err)
	s.Equal("abc", sess.ID)
	s.Equal("zzzzzz", sess.Captcha)
	// No new cookie issued
	s.Empty(w.Result().Cookies())
}

func (s *ManagerSuite) TestLoadUnknownCookieCreatesFreshSession() {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: session.CookieName, Value: "expired"})

	sess, err := s.manager.Load(s.ctx, w, r)
	s.Require().NoError(err)
	s.NotEqual("expired", sess.ID)
	s.Require().Len(w.Result().Cookies(), 1)
}

func (s *ManagerSuite) TestRotateDiscardsOldSession() {
	old := &session.Session{ID: "old", User: &session.User{Username: "alice"}}
	s.Require().NoError(s.store.Save(s.ctx, old))

	w := httptest.NewRecorder()
	fresh, err := s.manager.Rotate(s.ctx, w, old)
	s.Require().NoError(err)
	s.NotEqual("old", fresh.ID)
	s.Nil(fresh.User)

	_, err = s.store.Get(s.ctx, "old")
	s.Error(err)

	cookies := w.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal(fresh.ID, cookies[0].Value)
}
