package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/kart-laptimes/internal/adapter/http/handler"
	"github.com/Temutjin2k/kart-laptimes/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/kart-laptimes/internal/adapter/http/view"
	"github.com/Temutjin2k/kart-laptimes/internal/adapter/memory"
	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/internal/service/laps"
	"github.com/Temutjin2k/kart-laptimes/internal/service/session"
	"github.com/Temutjin2k/kart-laptimes/internal/service/users"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
)

const cookieName = "laptimes_session"

type testEnv struct {
	srv    *httptest.Server
	client *http.Client
	store  *memory.SessionStore
}

func newTestEnv(t *testing.T, renderer handler.Renderer) *testEnv {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "test", logger.LevelError)

	if renderer == nil {
		r, err := view.New()
		require.NoError(t, err)
		renderer = r
	}

	store := memory.NewSessionStore()
	sessions := session.NewManager(store, session.NewTokenService("test-secret", time.Hour), time.Hour, log)
	lapSvc := laps.NewService(log)
	userSvc := users.NewService(log)
	cookie := handler.CookieOptions{Name: cookieName}

	pages := handler.NewPages(lapSvc, userSvc, types.IdentifierEmail, log)
	site := handler.NewSite(pages.Router(), sessions, renderer, cookie,
		handler.SiteInfo{AppName: "kart", Identifier: types.IdentifierEmail}, log)
	api := handler.NewAPI(lapSvc, sessions, cookie, log)

	mux := http.NewServeMux()
	mux.Handle("/", site)
	mux.HandleFunc("GET /api/laps", api.ListLaps)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testEnv{srv: srv, client: client, store: store}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.Get(e.srv.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := e.client.PostForm(e.srv.URL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (e *testEnv) laps(t *testing.T, order string) dto.LapsResponse {
	t.Helper()
	path := "/api/laps"
	if order != "" {
		path += "?order=" + order
	}
	resp, body := e.get(t, path)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LapsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func (e *testEnv) submitLap(t *testing.T, s1, s2, s3 string) string {
	t.Helper()
	_, body := e.post(t, "/?page=lapTimeForm", url.Values{
		"sector1": {s1},
		"sector2": {s2},
		"sector3": {s3},
	})
	return body
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestSite_HomeIsDefault(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range []string{"/", "/?page=home", "/?page=doesNotExist", "/index.php"} {
		resp, body := env.get(t, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Contains(t, body, "Welcome!", path)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	}
}

func TestSite_ReadOnlyPagesCreateNoSession(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, _ := env.get(t, "/?page=leaderboard")
	assert.Empty(t, resp.Cookies())

	env.laps(t, "")
	assert.Zero(t, env.store.Len())
}

func TestSite_SubmitLap(t *testing.T) {
	env := newTestEnv(t, nil)

	body := env.submitLap(t, "30.1", "29.8", "31.0")
	assert.Contains(t, body, dto.MsgLapAdded)
	assert.Contains(t, body, "1:30.900")

	got := env.laps(t, "")
	require.Len(t, got.Laps, 1)
	assert.InDelta(t, 90.9, got.Laps[0].TotalTime, 1e-9)
	assert.InDelta(t, 30.1, got.Laps[0].Sector1, 1e-9)
	assert.True(t, got.Laps[0].Fastest)

	_, board := env.get(t, "/?page=leaderboard")
	assert.Contains(t, board, "1:30.900")
	assert.NotContains(t, board, "No laps recorded yet.")
}

func TestSite_SubmitLapValidation(t *testing.T) {
	tests := []struct {
		name       string
		s1, s2, s3 string
		want       string
	}{
		{"missing field", "30.1", "29.8", "", dto.MsgFillAllFields},
		{"zero counts as empty", "0", "29.8", "31.0", dto.MsgFillAllFields},
		{"not a number", "abc", "29.8", "31.0", dto.MsgPositiveSectors},
		{"negative", "-1", "29.8", "31.0", dto.MsgPositiveSectors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.submitLap(t, "30", "30", "30")

			body := env.submitLap(t, tt.s1, tt.s2, tt.s3)
			assert.Contains(t, body, tt.want)
			assert.NotContains(t, body, dto.MsgLapAdded)

			assert.Len(t, env.laps(t, "").Laps, 1)
		})
	}
}

func TestSite_LapFormGet(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.get(t, "/?page=lapTimeForm")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="sector1"`)
	assert.NotContains(t, body, dto.MsgFillAllFields)
}

func TestSite_RegisterAndProfile(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, _ := env.post(t, "/?page=addUser", url.Values{
		"name":  {"Max"},
		"class": {"A"},
		"email": {"max@example.com"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?page=user-created", resp.Header.Get("Location"))

	_, created := env.get(t, "/?page=user-created")
	assert.Contains(t, created, "Driver Max (A) registered as Driver.")

	_, home := env.get(t, "/")
	assert.Contains(t, home, "Welcome back, Max!")

	_, profile := env.get(t, "/?page=userProfile")
	assert.Contains(t, profile, `value="Max"`)
	assert.Contains(t, profile, `value="max@example.com"`)

	resp, _ = env.post(t, "/?page=userProfile", url.Values{
		"name":  {"  Maxine "},
		"class": {"B"},
		"email": {"maxine@example.com"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?page=userProfile", resp.Header.Get("Location"))

	_, profile = env.get(t, "/?page=userProfile")
	assert.Contains(t, profile, `value="Maxine"`)
	assert.Contains(t, profile, `value="B"`)
}

func TestSite_AddUserFormGet(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, body := env.get(t, "/?page=addUser")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="email"`)
	assert.Empty(t, resp.Cookies())
}

func TestSite_DeleteLap(t *testing.T) {
	env := newTestEnv(t, nil)

	env.submitLap(t, "30", "30", "30")
	env.submitLap(t, "31", "31", "31")
	env.submitLap(t, "32", "32", "32")

	resp, body := env.post(t, "/?page=deleteLap", url.Values{"lapIndex": {"1"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Leaderboard")

	got := env.laps(t, "")
	require.Len(t, got.Laps, 2)
	assert.InDelta(t, 90.0, got.Laps[0].TotalTime, 1e-9)
	assert.InDelta(t, 96.0, got.Laps[1].TotalTime, 1e-9)

	for _, idx := range []string{"7", "-1", "x", ""} {
		env.post(t, "/?page=deleteLap", url.Values{"lapIndex": {idx}})
		assert.Len(t, env.laps(t, "").Laps, 2, idx)
	}
}

func TestSite_FastestOrder(t *testing.T) {
	env := newTestEnv(t, nil)

	env.submitLap(t, "32", "32", "32")
	env.submitLap(t, "30", "30", "30")
	env.submitLap(t, "31", "31", "31")

	got := env.laps(t, "fastest")
	require.Len(t, got.Laps, 3)
	assert.Equal(t, []int{1, 2, 0}, []int{got.Laps[0].Index, got.Laps[1].Index, got.Laps[2].Index})
	assert.True(t, got.Laps[0].Fastest)

	inserted := env.laps(t, "")
	assert.Equal(t, 0, inserted.Laps[0].Index)
}

func TestSite_Logout(t *testing.T) {
	env := newTestEnv(t, nil)

	env.post(t, "/?page=addUser", url.Values{"name": {"Max"}, "class": {"A"}, "email": {"m@x"}})
	env.submitLap(t, "30", "30", "30")
	require.Equal(t, 1, env.store.Len())

	resp, body := env.get(t, "/?page=logout")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Logged out")

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == cookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie should be cleared")
	assert.Zero(t, env.store.Len())

	_, home := env.get(t, "/")
	assert.Contains(t, home, "Welcome!")
	assert.Empty(t, env.laps(t, "").Laps)
}

func TestSite_SessionsAreIsolated(t *testing.T) {
	env := newTestEnv(t, nil)
	env.submitLap(t, "30", "30", "30")

	other := &http.Client{}
	resp, err := other.Get(env.srv.URL + "/api/laps")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.JSONEq(t, `{"laps":[]}`, body)
}

func TestSite_TamperedCookieStartsFresh(t *testing.T) {
	env := newTestEnv(t, nil)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "not-a-token"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Welcome!")
}

type failingRenderer struct{}

func (failingRenderer) Render(io.Writer, types.Template, map[string]any) error {
	return errors.New("template exploded")
}

func TestSite_RenderFailure(t *testing.T) {
	env := newTestEnv(t, failingRenderer{})

	resp, body := env.get(t, "/")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, strings.Contains(body, "exploded"))
}

func TestSite_BodyTooLarge(t *testing.T) {
	env := newTestEnv(t, nil)

	big := strings.Repeat("a", 128<<10)
	resp, _ := env.post(t, "/?page=lapTimeForm", url.Values{"sector1": {big}})
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}
