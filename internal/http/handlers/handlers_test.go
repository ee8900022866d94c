package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	types "github.com/jyotishya/jyotishya-backend/internal/domain"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/requestdata"
	"github.com/jyotishya/jyotishya-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser injects an authenticated identity the way the auth middleware does.
func asUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			UserID: userID,
			Email:  "tester@example.com",
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type stubHoroscopeService struct {
	daily *astro.DailyHoroscope
	err   error
}

func (s *stubHoroscopeService) GetDaily(ctx context.Context, sign string, opts astro.QueryOptions) (*astro.DailyHoroscope, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *s.daily
	out.SunSign = sign
	return &out, nil
}

func (s *stubHoroscopeService) GetDailyAll(ctx context.Context, opts astro.QueryOptions) (map[string]*astro.DailyHoroscope, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]*astro.DailyHoroscope{"Leo": s.daily}, nil
}

func TestHoroscopeHandlerRequiresSign(t *testing.T) {
	router := gin.New()
	hh := NewHoroscopeHandler(&stubHoroscopeService{daily: &astro.DailyHoroscope{Guidance: "steady day"}})
	router.GET("/api/horoscope/daily", hh.GetDaily)

	rec := doJSON(t, router, http.MethodGet, "/api/horoscope/daily", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/horoscope/daily?sign=leo", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "steady day")
}

func TestHoroscopeHandlerRejectsBadDate(t *testing.T) {
	router := gin.New()
	hh := NewHoroscopeHandler(&stubHoroscopeService{daily: &astro.DailyHoroscope{}})
	router.GET("/api/horoscope/daily", hh.GetDaily)

	rec := doJSON(t, router, http.MethodGet, "/api/horoscope/daily?sign=leo&date=29-08-2026", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHoroscopeHandlerMapsProviderUnavailable(t *testing.T) {
	router := gin.New()
	hh := NewHoroscopeHandler(&stubHoroscopeService{err: pkgerrors.ErrProviderUnavailable})
	router.GET("/api/horoscope/daily", hh.GetDaily)

	rec := doJSON(t, router, http.MethodGet, "/api/horoscope/daily?sign=leo", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

type stubChartService struct {
	charts  map[uuid.UUID]*types.SavedChart
	compute *astro.BirthChart
}

func newStubChartService() *stubChartService {
	return &stubChartService{
		charts: map[uuid.UUID]*types.SavedChart{},
		compute: &astro.BirthChart{
			Ascendant: 128.5,
			Planets:   []astro.PlanetPosition{{Name: "Sun", Sign: "Leo"}},
		},
	}
}

func (s *stubChartService) Compute(ctx context.Context, details astro.BirthDetails) (*astro.BirthChart, error) {
	return s.compute, nil
}

func (s *stubChartService) ComputeSVG(ctx context.Context, details astro.BirthDetails) (string, error) {
	return "<svg></svg>", nil
}

func (s *stubChartService) Save(ctx context.Context, userID uuid.UUID, label string, details astro.BirthDetails, withSVG bool) (*types.SavedChart, error) {
	chart := &types.SavedChart{
		ID:     uuid.New(),
		UserID: userID,
		Label:  label,
	}
	s.charts[chart.ID] = chart
	return chart, nil
}

func (s *stubChartService) List(ctx context.Context, userID uuid.UUID) ([]*types.SavedChart, error) {
	out := []*types.SavedChart{}
	for _, chart := range s.charts {
		if chart.UserID == userID {
			out = append(out, chart)
		}
	}
	return out, nil
}

func (s *stubChartService) Get(ctx context.Context, userID, chartID uuid.UUID) (*types.SavedChart, error) {
	chart, ok := s.charts[chartID]
	if !ok || chart.UserID != userID {
		return nil, pkgerrors.ErrNotFound
	}
	return chart, nil
}

func (s *stubChartService) Rename(ctx context.Context, userID, chartID uuid.UUID, label string) (*types.SavedChart, error) {
	chart, err := s.Get(ctx, userID, chartID)
	if err != nil {
		return nil, err
	}
	chart.Label = label
	return chart, nil
}

func (s *stubChartService) Delete(ctx context.Context, userID, chartID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, chartID); err != nil {
		return err
	}
	delete(s.charts, chartID)
	return nil
}

func chartRouter(svc services.ChartService, userID uuid.UUID) *gin.Engine {
	router := gin.New()
	ch := NewChartHandler(svc)
	router.POST("/api/chart/compute", ch.Compute)
	router.POST("/api/chart/svg", ch.ComputeSVG)

	protected := router.Group("", asUser(userID))
	protected.POST("/api/user/kundli", ch.Save)
	protected.GET("/api/user/kundli", ch.List)
	protected.GET("/api/user/kundli/:id", ch.Get)
	protected.PATCH("/api/user/kundli/:id", ch.Rename)
	protected.DELETE("/api/user/kundli/:id", ch.Delete)
	return router
}

func TestChartHandlerComputeValidatesBody(t *testing.T) {
	router := chartRouter(newStubChartService(), uuid.New())

	rec := doJSON(t, router, http.MethodPost, "/api/chart/compute", gin.H{"year": 1994})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/chart/compute", gin.H{
		"year": 1994, "month": 8, "day": 25, "hour": 14, "minute": 30,
		"latitude": 28.6139, "longitude": 77.2090, "tz_offset_hours": 5.5,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Leo")
}

func TestChartHandlerSVGContentType(t *testing.T) {
	router := chartRouter(newStubChartService(), uuid.New())

	rec := doJSON(t, router, http.MethodPost, "/api/chart/svg", gin.H{
		"year": 1994, "month": 8, "day": 25,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestChartHandlerKundliLifecycle(t *testing.T) {
	userID := uuid.New()
	router := chartRouter(newStubChartService(), userID)

	rec := doJSON(t, router, http.MethodPost, "/api/user/kundli", gin.H{
		"label":   "Amma",
		"details": gin.H{"year": 1962, "month": 3, "day": 11},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Chart struct {
			ID string `json:"id"`
		} `json:"chart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Chart.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/user/kundli/"+created.Chart.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/api/user/kundli/"+created.Chart.ID, gin.H{"label": "Mother"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mother")

	rec = doJSON(t, router, http.MethodDelete, "/api/user/kundli/"+created.Chart.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/user/kundli/"+created.Chart.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChartHandlerRejectsMalformedID(t *testing.T) {
	router := chartRouter(newStubChartService(), uuid.New())

	rec := doJSON(t, router, http.MethodGet, "/api/user/kundli/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubConsultationService struct {
	lastDuration int
	consultation *types.Consultation
	err          error
}

func (s *stubConsultationService) Book(ctx context.Context, userID, astrologerID uuid.UUID, at time.Time, durationMinutes int, notes string) (*types.Consultation, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastDuration = durationMinutes
	return s.consultation, nil
}

func (s *stubConsultationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Consultation, error) {
	return []*types.Consultation{s.consultation}, nil
}

func (s *stubConsultationService) Cancel(ctx context.Context, userID, consultationID uuid.UUID) (*types.Consultation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.consultation, nil
}

func consultationRouter(svc services.ConsultationService, userID uuid.UUID) *gin.Engine {
	router := gin.New()
	ch := NewConsultationHandler(svc)
	protected := router.Group("", asUser(userID))
	protected.POST("/api/consultations", ch.Book)
	protected.GET("/api/consultations", ch.List)
	protected.POST("/api/consultations/:id/cancel", ch.Cancel)
	return router
}

func TestConsultationHandlerBook(t *testing.T) {
	svc := &stubConsultationService{consultation: &types.Consultation{ID: uuid.New(), Status: types.ConsultationBooked}}
	router := consultationRouter(svc, uuid.New())

	rec := doJSON(t, router, http.MethodPost, "/api/consultations", gin.H{
		"astrologer_id":    uuid.New().String(),
		"scheduled_at":     time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"duration_minutes": 30,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 30, svc.lastDuration)
}

func TestConsultationHandlerBookRejectsBadTimestamp(t *testing.T) {
	svc := &stubConsultationService{consultation: &types.Consultation{}}
	router := consultationRouter(svc, uuid.New())

	rec := doJSON(t, router, http.MethodPost, "/api/consultations", gin.H{
		"astrologer_id":    uuid.New().String(),
		"scheduled_at":     "tomorrow at noon",
		"duration_minutes": 30,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConsultationHandlerBookConflict(t *testing.T) {
	svc := &stubConsultationService{err: pkgerrors.ErrConflict}
	router := consultationRouter(svc, uuid.New())

	rec := doJSON(t, router, http.MethodPost, "/api/consultations", gin.H{
		"astrologer_id":    uuid.New().String(),
		"scheduled_at":     time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"duration_minutes": 30,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

type stubUserService struct {
	user *types.User
}

func (s *stubUserService) Me(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return s.user, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, update services.ProfileUpdate) (*types.User, error) {
	if update.DisplayName != nil {
		s.user.DisplayName = *update.DisplayName
	}
	return s.user, nil
}

func (s *stubUserService) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs datatypes.JSON) (*types.User, error) {
	s.user.Preferences = prefs
	return s.user, nil
}

func userRouter(svc services.UserService, userID uuid.UUID) *gin.Engine {
	router := gin.New()
	uh := NewUserHandler(svc)
	protected := router.Group("", asUser(userID))
	protected.GET("/api/user/me", uh.Me)
	protected.PATCH("/api/user/profile", uh.UpdateProfile)
	protected.PATCH("/api/user/preferences", uh.UpdatePreferences)
	return router
}

func TestUserHandlerMe(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{user: &types.User{ID: userID, Email: "tester@example.com"}}
	router := userRouter(svc, userID)

	rec := doJSON(t, router, http.MethodGet, "/api/user/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tester@example.com")
}

func TestUserHandlerPreferencesRejectsInvalidJSON(t *testing.T) {
	userID := uuid.New()
	svc := &stubUserService{user: &types.User{ID: userID}}
	router := userRouter(svc, userID)

	req := httptest.NewRequest(http.MethodPatch, "/api/user/preferences", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/api/user/preferences", gin.H{"theme": "dark"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnauthenticatedRequestIsRejected(t *testing.T) {
	router := gin.New()
	uh := NewUserHandler(&stubUserService{user: &types.User{}})
	router.GET("/api/user/me", uh.Me)

	rec := doJSON(t, router, http.MethodGet, "/api/user/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type stubAstrologerService struct {
	astrologers []*types.Astrologer
}

func (s *stubAstrologerService) SeedFromFile(ctx context.Context, path string) (int, error) {
	return 0, nil
}

func (s *stubAstrologerService) List(ctx context.Context) ([]*types.Astrologer, error) {
	return s.astrologers, nil
}

func (s *stubAstrologerService) Get(ctx context.Context, astrologerID uuid.UUID) (*types.Astrologer, error) {
	for _, a := range s.astrologers {
		if a.ID == astrologerID {
			return a, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

func TestAstrologerHandler(t *testing.T) {
	known := &types.Astrologer{ID: uuid.New(), Slug: "pt-sharma", Name: "Pt. Sharma"}
	router := gin.New()
	ah := NewAstrologerHandler(&stubAstrologerService{astrologers: []*types.Astrologer{known}})
	router.GET("/api/astrologers", ah.List)
	router.GET("/api/astrologers/:id", ah.Get)

	rec := doJSON(t, router, http.MethodGet, "/api/astrologers", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pt-sharma")

	rec = doJSON(t, router, http.MethodGet, "/api/astrologers/"+known.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/astrologers/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
