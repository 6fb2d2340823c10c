package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/lifedrop/lifedrop-backend/internal/application"
	handlers "github.com/lifedrop/lifedrop-backend/internal/interface/http"
	"github.com/lifedrop/lifedrop-backend/internal/router"
	"github.com/lifedrop/lifedrop-backend/internal/router/modules"
	"github.com/lifedrop/lifedrop-backend/internal/testutil"
	"github.com/lifedrop/lifedrop-backend/pkg/validation"
)

var setupOnce sync.Once

// donorToken is accepted by the test verifier and maps to donor@example.com.
const donorToken = "tok-donor"

func testVerifier() *testutil.StaticVerifier {
	return &testutil.StaticVerifier{Tokens: map[string]string{
		donorToken: "donor@example.com",
	}}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newEngine(mods ...router.Module) *gin.Engine {
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})
	e := gin.New()
	reg := router.NewRegistry(e)
	for _, m := range mods {
		reg.Add(m)
	}
	reg.RegisterAll()
	return e
}

func accountEngine(repo *testutil.FakeAccountRepo) *gin.Engine {
	logger := quietLogger()
	svc := app.NewAccountService(repo, nil, nil, "", logger, time.Minute)
	return newEngine(modules.NewAccountModule(handlers.NewAccountHandler(svc, logger), testVerifier()))
}

func requestEngine(repo *testutil.FakeRequestRepo) *gin.Engine {
	logger := quietLogger()
	svc := app.NewRequestService(repo, logger, nil, "")
	return newEngine(modules.NewRequestModule(handlers.NewRequestHandler(svc, logger), testVerifier()))
}

func fundingEngine(repo *testutil.FakePaymentRepo, gw *testutil.FakeGateway) *gin.Engine {
	logger := quietLogger()
	svc := app.NewFundingService(repo, gw, nil, logger, "https://lifedrop.example", "usd")
	return newEngine(modules.NewFundingModule(handlers.NewFundingHandler(svc, logger), testVerifier()))
}

// doJSON issues a request against the engine. An empty token leaves the
// Authorization header unset; a nil body sends no payload.
func doJSON(t *testing.T, e *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = &buf
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   json.RawMessage `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, w.Body.String())
	}
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, into any) envelope {
	t.Helper()
	env := decodeEnvelope(t, w)
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, into); err != nil {
			t.Fatalf("decode data: %v (data: %s)", err, env.Data)
		}
	}
	return env
}
