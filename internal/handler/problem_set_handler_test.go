package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/openjudge-io/judge-api/internal/dto"
	"github.com/openjudge-io/judge-api/internal/models"
	"github.com/openjudge-io/judge-api/internal/utils"
)

type stubProblemSetService struct {
	set     dto.ProblemSetResponse
	listing dto.ProblemSetListResponse
	err     error

	lastDomainID uint
	lastActorID  uint
	lastRef      string
	lastClone    dto.ProblemSetCloneRequest
	deleted      bool
}

func (s *stubProblemSetService) List(ctx context.Context, domainID, ownerID uint, page, pageSize int) (dto.ProblemSetListResponse, error) {
	s.lastDomainID = domainID
	s.lastActorID = ownerID
	return s.listing, s.err
}

func (s *stubProblemSetService) Create(ctx context.Context, domainID, ownerID uint, payload dto.ProblemSetCreateRequest) (dto.ProblemSetResponse, error) {
	s.lastDomainID = domainID
	s.lastActorID = ownerID
	return s.set, s.err
}

func (s *stubProblemSetService) Get(ctx context.Context, domainID uint, ref string, viewerID uint) (dto.ProblemSetResponse, error) {
	s.lastDomainID = domainID
	s.lastRef = ref
	s.lastActorID = viewerID
	return s.set, s.err
}

func (s *stubProblemSetService) Update(ctx context.Context, domainID uint, ref string, payload dto.ProblemSetUpdateRequest) (dto.ProblemSetResponse, error) {
	s.lastDomainID = domainID
	s.lastRef = ref
	return s.set, s.err
}

func (s *stubProblemSetService) Delete(ctx context.Context, domainID uint, ref string) error {
	s.lastDomainID = domainID
	s.lastRef = ref
	s.deleted = true
	return s.err
}

func (s *stubProblemSetService) Clone(ctx context.Context, targetDomainID, actorID uint, payload dto.ProblemSetCloneRequest) (dto.ProblemSetResponse, error) {
	s.lastDomainID = targetDomainID
	s.lastActorID = actorID
	s.lastClone = payload
	return s.set, s.err
}

type stubScoreboardService struct {
	board dto.ScoreboardResponse
	err   error
}

func (s *stubScoreboardService) Get(ctx context.Context, domainID uint, problemSetRef string) (dto.ScoreboardResponse, error) {
	return s.board, s.err
}

// newTestApp mounts the handler behind test middleware that injects the
// authenticated user and a resolved domain, standing in for the jwt and
// domain-context layers.
func newTestApp(t *testing.T, svc *stubProblemSetService, scoreboards *stubScoreboardService) *fiber.App {
	t.Helper()
	app := fiber.New()

	group := app.Group("/domains/:domain/problem_sets", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(10))
		c.Locals("domain", models.Domain{ID: 1, URL: "test-course", Name: "Test Course"})
		return c.Next()
	})

	h := NewProblemSetHandler(svc, scoreboards, zerolog.Nop())
	gate := func(permission string) fiber.Handler {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	h.Register(group, gate, nil)

	return app
}

func decodeEnvelope(t *testing.T, resp *http.Response) utils.StandardResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope utils.StandardResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestProblemSetHandlerGetSuccessEnvelope(t *testing.T) {
	svc := &stubProblemSetService{set: dto.ProblemSetResponse{
		ID:     7,
		Domain: 1,
		Owner:  10,
		URL:    "midterm",
		Title:  "Midterm",
	}}
	app := newTestApp(t, svc, &stubScoreboardService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/test-course/problem_sets/midterm", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, utils.CodeSuccess, envelope.ErrorCode)
	require.Equal(t, uint(1), svc.lastDomainID)
	require.Equal(t, "midterm", svc.lastRef)
	require.Equal(t, uint(10), svc.lastActorID)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "midterm", data["url"])
	require.Equal(t, "Midterm", data["title"])
}

func TestProblemSetHandlerCreatePassesBody(t *testing.T) {
	svc := &stubProblemSetService{set: dto.ProblemSetResponse{ID: 8, URL: "ps-8"}}
	app := newTestApp(t, svc, &stubScoreboardService{})

	payload := dto.ProblemSetCreateRequest{
		Title:         "New Set",
		AvailableTime: time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
		DueTime:       time.Date(2026, 4, 8, 8, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/domains/test-course/problem_sets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, uint(10), svc.lastActorID)
}

func TestProblemSetHandlerBizErrorEnvelope(t *testing.T) {
	svc := &stubProblemSetService{err: utils.NewBizError(utils.CodeProblemSetNotFound, "problem set not found")}
	app := newTestApp(t, svc, &stubScoreboardService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/test-course/problem_sets/ghost", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, utils.CodeProblemSetNotFound, envelope.ErrorCode)
	require.Equal(t, "problem set not found", envelope.ErrorMsg)
	require.Nil(t, envelope.Data)
}

func TestProblemSetHandlerHiddenScoreboardEnvelope(t *testing.T) {
	scoreboards := &stubScoreboardService{err: utils.NewBizError(utils.CodeScoreboardHidden, "scoreboard is hidden")}
	app := newTestApp(t, &stubProblemSetService{}, scoreboards)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/test-course/problem_sets/midterm/scoreboard", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, utils.CodeScoreboardHidden, envelope.ErrorCode)
}

func TestProblemSetHandlerScoreboardSuccess(t *testing.T) {
	scoreboards := &stubScoreboardService{board: dto.ScoreboardResponse{
		ProblemIDs: []uint{31, 32},
		Results: []dto.UserScore{{
			User:       dto.UserResponse{ID: 21, Username: "alice"},
			TotalScore: 80,
		}},
	}}
	app := newTestApp(t, &stubProblemSetService{}, scoreboards)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/test-course/problem_sets/midterm/scoreboard", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, utils.CodeSuccess, envelope.ErrorCode)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	require.Len(t, data["problem_ids"], 2)
}

func TestProblemSetHandlerCloneRoutesBeforeWildcard(t *testing.T) {
	svc := &stubProblemSetService{set: dto.ProblemSetResponse{ID: 9, URL: "midterm_1234"}}
	app := newTestApp(t, svc, &stubScoreboardService{})

	body := []byte(`{"problem_set":"midterm","url":"midterm-copy"}`)
	req := httptest.NewRequest(http.MethodPost, "/domains/test-course/problem_sets/clone", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Equal(t, "midterm", svc.lastClone.ProblemSet)
	require.Equal(t, "midterm-copy", svc.lastClone.URL)
	require.Equal(t, uint(10), svc.lastActorID)
}

func TestProblemSetHandlerDelete(t *testing.T) {
	svc := &stubProblemSetService{}
	app := newTestApp(t, svc, &stubScoreboardService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/domains/test-course/problem_sets/midterm", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, svc.deleted)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, utils.CodeSuccess, envelope.ErrorCode)
	require.Nil(t, envelope.Data)
}

func TestProblemSetHandlerInvalidPaginationQuery(t *testing.T) {
	svc := &stubProblemSetService{}
	app := newTestApp(t, svc, &stubScoreboardService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/test-course/problem_sets?page=abc", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, utils.CodeValidationError, envelope.ErrorCode)
}

func TestProblemSetHandlerInternalErrorHidesDetails(t *testing.T) {
	svc := &stubProblemSetService{err: io.ErrUnexpectedEOF}
	app := newTestApp(t, svc, &stubScoreboardService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/test-course/problem_sets/midterm", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, utils.CodeInternalServerError, envelope.ErrorCode)
	require.Equal(t, "internal server error", envelope.ErrorMsg)
}
