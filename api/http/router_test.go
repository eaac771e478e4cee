package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/artem13815/microbridge/api/http/handlers"
	"github.com/artem13815/microbridge/pkg/gamification"
	"github.com/artem13815/microbridge/pkg/health"
	"github.com/artem13815/microbridge/pkg/onboarding"
	"github.com/artem13815/microbridge/pkg/profile"
	"github.com/artem13815/microbridge/pkg/repository/memory"
	"github.com/artem13815/microbridge/pkg/resume"
	"github.com/artem13815/microbridge/pkg/security/jwt"
	"github.com/artem13815/microbridge/pkg/settings"
	"github.com/artem13815/microbridge/pkg/wizard"
)

const testSecret = "test-secret"

type testServer struct {
	app        *fiber.App
	dispatcher *gamification.Dispatcher
	token      string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()

	resumes := resume.NewService(memory.NewResumeRepository(), t.TempDir(), log)
	game := gamification.NewService(memory.NewGamificationRepository(), log)
	dispatcher := gamification.NewDispatcher(game, 64, log)
	wiz := onboarding.NewService(memory.NewSessionStore(time.Hour), memory.NewProfileRepository(), resumes, dispatcher, log)
	prefs := settings.NewService(memory.NewSettingsRepository(), time.Millisecond, log)
	t.Cleanup(func() {
		_ = dispatcher.Close(context.Background())
		_ = prefs.Flush(context.Background())
	})

	app := fiber.New()
	app.Use(AccessLog(log))
	Register(app, Handlers{
		Health:     handlers.NewHealthHandler(health.NewService()),
		Registry:   handlers.NewRegistryHandler(),
		Onboarding: handlers.NewOnboardingHandler(wiz),
		Profile:    handlers.NewProfileHandler(wiz),
		Resumes:    handlers.NewResumesHandler(resumes),
		Settings:   handlers.NewSettingsHandler(prefs),
		Progress:   handlers.NewProgressHandler(game),
	}, jwt.NewAuthMiddleware(testSecret, "microbridge"))

	token, err := jwt.NewGenerator(testSecret, "microbridge", time.Hour).Generate(context.Background(), uuid.New(), "")
	require.NoError(t, err)
	return &testServer{app: app, dispatcher: dispatcher, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			rdr = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t)

	status, body := s.send(t, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	status, body = s.send(t, httptest.NewRequest(http.MethodGet, "/api/v1/registry/currency", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"EUR"`)

	status, _ = s.send(t, httptest.NewRequest(http.MethodGet, "/api/v1/registry/favouriteColour", nil))
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.send(t, httptest.NewRequest(http.MethodGet, "/api/v1/steps", nil))
	require.Equal(t, http.StatusOK, status)
	steps := decode[[]wizard.Definition](t, body)
	assert.Len(t, steps, wizard.TotalSteps)

	status, _ = s.send(t, httptest.NewRequest(http.MethodGet, "/api/v1/onboarding", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOnboardingFlow(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/api/v1/onboarding", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := s.do(t, http.MethodPost, "/api/v1/onboarding", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, profile.StepIdentity, decode[onboarding.View](t, body).Step)

	status, body = s.do(t, http.MethodPost, "/api/v1/onboarding/next", nil)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(body), `"firstName":"First name is required"`)

	inputs := []string{
		`{"step":1,"patch":{"firstName":"Ada","lastName":"Lovelace","preferredName":"Ada","email":"ada@example.com"}}`,
		`{"step":2,"patch":{"educationLevel":"bachelor","major":"mathematics"}}`,
		`{"step":3,"patch":{"careerGoal":"internship","industry":"technology"}}`,
	}
	for _, in := range inputs {
		status, body = s.do(t, http.MethodPatch, "/api/v1/onboarding/record", in)
		require.Equal(t, http.StatusOK, status, string(body))
		status, body = s.do(t, http.MethodPost, "/api/v1/onboarding/next", nil)
		require.Equal(t, http.StatusOK, status, string(body))
	}

	status, body = s.do(t, http.MethodPatch, "/api/v1/onboarding/record", `{"step":3,"patch":{"industry":"finance"}}`)
	assert.Equal(t, http.StatusConflict, status, string(body))

	status, body = s.do(t, http.MethodPost, "/api/v1/onboarding/skills", map[string]any{"skill": "Go", "proficiency": 9})
	assert.Equal(t, http.StatusUnprocessableEntity, status, string(body))
	status, body = s.do(t, http.MethodPost, "/api/v1/onboarding/skills", map[string]any{"skill": "Go"})
	require.Equal(t, http.StatusOK, status, string(body))
	v := decode[onboarding.View](t, body)
	require.Len(t, v.Record.Skills, 1)
	assert.Equal(t, 3, v.Record.Skills[0].Proficiency)

	status, body = s.do(t, http.MethodPatch, "/api/v1/onboarding/skills/0", map[string]any{"field": "proficiency", "value": 5})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 5, decode[onboarding.View](t, body).Record.Skills[0].Proficiency)

	status, body = s.do(t, http.MethodPost, "/api/v1/onboarding/next", nil)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = s.do(t, http.MethodPatch, "/api/v1/onboarding/record", `{"step":5,"patch":{"availability":"weekends","projectDuration":"ongoing"}}`)
	require.Equal(t, http.StatusOK, status, string(body))
	status, _ = s.do(t, http.MethodPost, "/api/v1/onboarding/next", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodPatch, "/api/v1/onboarding/record", `{"step":6,"patch":{"paymentType":"bitcoin"}}`)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, string(body), `"paymentType"`)

	status, body = s.do(t, http.MethodPatch, "/api/v1/onboarding/record", `{"step":6,"patch":{"paymentType":"project_based","salaryRange":"custom","customAmount":"750"}}`)
	require.Equal(t, http.StatusOK, status, string(body))
	status, body = s.do(t, http.MethodPatch, "/api/v1/onboarding/record", `{"step":6,"patch":{"paymentType":"hourly"}}`)
	require.Equal(t, http.StatusOK, status, string(body))
	v = decode[onboarding.View](t, body)
	assert.Empty(t, v.Record.SalaryRange)
	assert.Empty(t, v.Record.CustomAmount)

	status, _ = s.do(t, http.MethodPost, "/api/v1/onboarding/next", nil)
	require.Equal(t, http.StatusOK, status)

	// media type parameters on the part header are ignored
	status, body = s.upload(t, "cv.pdf", wizard.MimePDF+"; name=cv.pdf", []byte("%PDF-1.4 not really"))
	require.Equal(t, http.StatusOK, status, string(body))
	v = decode[onboarding.View](t, body)
	require.Equal(t, wizard.UploadSuccess, v.Upload.Status)
	require.NotNil(t, v.Record.Resume)

	status, body = s.upload(t, "cv.png", "image/png", []byte("png"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, wizard.UploadRejected, decode[onboarding.View](t, body).Upload.Status)

	status, body = s.do(t, http.MethodGet, "/api/v1/resumes", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]resume.Resume](t, body), 1)

	status, body = s.do(t, http.MethodGet, v.Record.Resume.URL, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "%PDF-1.4 not really", string(body))

	// the text of a broken pdf cannot be read, so nothing is suggested
	status, body = s.do(t, http.MethodGet, "/api/v1/resumes/"+v.Record.Resume.ID+"/skills", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = s.do(t, http.MethodPost, "/api/v1/onboarding/complete", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	out := decode[onboarding.Outcome](t, body)
	assert.Equal(t, onboarding.DashboardPath, out.RedirectTo)
	assert.Equal(t, 100, out.View.Completion)

	status, body = s.do(t, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, status)
	type pageBody struct {
		Completed bool           `json:"completed"`
		Record    profile.Record `json:"record"`
	}
	page := decode[pageBody](t, body)
	assert.True(t, page.Completed)
	assert.Equal(t, "hourly", page.Record.PaymentType)

	status, body = s.do(t, http.MethodPut, "/api/v1/profile/sections/3", `{"industry":"healthcare"}`)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "healthcare", decode[pageBody](t, body).Record.Industry)

	// drain the event queue before reading progress
	require.NoError(t, s.dispatcher.Close(context.Background()))
	status, body = s.do(t, http.MethodGet, "/api/v1/progress", nil)
	require.Equal(t, http.StatusOK, status)
	progress := decode[gamification.Progress](t, body)
	assert.Equal(t, 50*5+75+wizard.CompletionXP, progress.XP)
	assert.Equal(t, 2, progress.Level)
}

func (s *testServer) upload(t *testing.T, name, mimeType string, data []byte) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	return s.send(t, req)
}

func TestSettingsRoutes(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "system", decode[settings.Settings](t, body).Preferences.Theme)

	status, body = s.do(t, http.MethodPut, "/api/v1/settings", `{"preferences":{"theme":"dark"}}`)
	require.Equal(t, http.StatusOK, status, string(body))
	st := decode[settings.Settings](t, body)
	assert.Equal(t, "dark", st.Preferences.Theme)
	assert.Equal(t, "en", st.Preferences.Language)

	status, body = s.do(t, http.MethodPut, "/api/v1/settings", `{"preferences":{"theme":"neon"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status, string(body))
}

func TestReadyWithoutDependencies(t *testing.T) {
	s := newTestServer(t)

	status, body := s.send(t, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ready"}`, string(body))
}
