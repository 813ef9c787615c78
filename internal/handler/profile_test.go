package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/playercv/platform/internal/cv/render"
	"github.com/playercv/platform/internal/domain"
	"github.com/playercv/platform/internal/media"
	"github.com/playercv/platform/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProfiles is an in-memory ProfileStore.
type fakeProfiles struct {
	byID       map[uuid.UUID]*domain.Profile
	lastFilter domain.ListFilter
	lastPatch  domain.ProfilePatch
	failWith   error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: map[uuid.UUID]*domain.Profile{}}
}

func (f *fakeProfiles) Create(_ context.Context, in domain.ProfileInput) (*domain.Profile, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if err := domain.ValidateProfileInput(in); err != nil {
		return nil, err
	}
	p := &domain.Profile{PlayerProfile: domain.PlayerProfile{
		ID:        uuid.New(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Status:    domain.StatusPending,
	}}
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProfiles) Get(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound("profil", id.String())
	}
	return p, nil
}

func (f *fakeProfiles) List(_ context.Context, filter domain.ListFilter) ([]domain.ProfileListItem, error) {
	f.lastFilter = filter
	items := []domain.ProfileListItem{}
	for _, p := range f.byID {
		items = append(items, domain.ProfileListItem{PlayerProfile: p.PlayerProfile})
	}
	return items, nil
}

func (f *fakeProfiles) Update(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error) {
	f.lastPatch = patch
	if err := domain.ValidateProfilePatch(patch); err != nil {
		return nil, err
	}
	p, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status.Set {
		p.Status = patch.Status.Value
	}
	return p, nil
}

func (f *fakeProfiles) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound("profil", id.String())
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProfiles) Duplicate(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *p
	cp.ID = uuid.New()
	f.byID[cp.ID] = &cp
	return &cp, nil
}

type fakeDocs struct{}

func (fakeDocs) Render(_ context.Context, _ uuid.UUID, format render.Format) (*service.RenderedDocument, error) {
	return &service.RenderedDocument{
		FileName:    "CV_Leo_Martin." + string(format),
		ContentType: "application/pdf",
		Body:        []byte("%PDF-1.3 fake"),
	}, nil
}

type fakeMedia struct {
	saved []string
}

func (m *fakeMedia) Save(kind, filename, contentType string, r io.Reader) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.ErrValidation("seules les images sont acceptées")
	}
	rel := kind + "/" + filename
	m.saved = append(m.saved, rel)
	return rel, nil
}

func (m *fakeMedia) Logos() ([]media.Logo, error) {
	return []media.Logo{{Name: "losc", Path: "logos/losc.png"}}, nil
}

func testRouter(profiles ProfileStore) chi.Router {
	logger := noopLogger()
	ph := NewProfileHandler(profiles, logger)
	dh := NewDocumentHandler(fakeDocs{}, logger)
	mh := NewMediaHandler(&fakeMedia{}, logger)

	r := chi.NewRouter()
	r.Get("/api/profiles", ph.List)
	r.Post("/api/profiles", ph.Create)
	r.Get("/api/profiles/{id}", ph.Get)
	r.Patch("/api/profiles/{id}", ph.Update)
	r.Delete("/api/profiles/{id}", ph.Delete)
	r.Post("/api/profiles/{id}/duplicate", ph.Duplicate)
	r.Get("/api/profiles/{id}/cv.pdf", dh.PDF)
	r.Get("/api/logos", mh.Logos)
	r.Post("/api/uploads/{kind}", mh.Upload)
	return r
}

const leoPayload = `{
	"lastName": "Martin", "firstName": "Leo", "nationalities": ["France"],
	"birthDate": "2008-04-12", "strongFoot": "Droit", "heightCm": 178,
	"cvColor": "#C8102E", "primaryPosition": "MC", "photoPath": "photos/leo.jpg",
	"email": "leo@example.com", "phone": "06 12 34 56 78",
	"qualities": ["Vitesse"],
	"seasons": [{"club": "FC Test", "category": "U17", "division": "Ligue 1",
		"logoClubPath": "logos/fc.png", "logoDivisionPath": "logos/l1.png",
		"matches": 20, "isCurrentSeason": false}]
}`

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestProfileHandler_CreateAndGet(t *testing.T) {
	store := newFakeProfiles()
	router := testRouter(store)

	w := do(t, router, http.MethodPost, "/api/profiles", leoPayload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Profile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "Leo", created.FirstName)
	assert.Equal(t, domain.StatusPending, created.Status)

	w = do(t, router, http.MethodGet, "/api/profiles/"+created.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileHandler_CreateValidationError(t *testing.T) {
	router := testRouter(newFakeProfiles())

	w := do(t, router, http.MethodPost, "/api/profiles", strings.Replace(leoPayload, `"qualities": ["Vitesse"]`, `"qualities": []`, 1))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, domain.CodeValidation, body["code"])
	assert.NotEmpty(t, body["message"])
}

func TestProfileHandler_MalformedJSON(t *testing.T) {
	router := testRouter(newFakeProfiles())
	w := do(t, router, http.MethodPost, "/api/profiles", `{"lastName":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler_NotFound(t *testing.T) {
	router := testRouter(newFakeProfiles())

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/profiles/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/profiles/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodDelete, "/api/profiles/"+uuid.NewString(), "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodPatch, "/api/profiles/"+uuid.NewString(), `{"status":"Traité"}`).Code)
}

func TestProfileHandler_UpdateStatus(t *testing.T) {
	store := newFakeProfiles()
	router := testRouter(store)
	p, err := store.Create(context.Background(), validLeo(t))
	require.NoError(t, err)

	w := do(t, router, http.MethodPatch, "/api/profiles/"+p.ID.String(), `{"status":"Traité"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.StatusDone, store.byID[p.ID].Status)

	w = do(t, router, http.MethodPatch, "/api/profiles/"+p.ID.String(), `{"status":"Fini"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPatch, "/api/profiles/"+p.ID.String(), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler_DeleteAndDuplicate(t *testing.T) {
	store := newFakeProfiles()
	router := testRouter(store)
	p, err := store.Create(context.Background(), validLeo(t))
	require.NoError(t, err)

	w := do(t, router, http.MethodPost, "/api/profiles/"+p.ID.String()+"/duplicate", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, store.byID, 2)

	w = do(t, router, http.MethodDelete, "/api/profiles/"+p.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, store.byID, 1)
}

func TestProfileHandler_ListFilters(t *testing.T) {
	store := newFakeProfiles()
	router := testRouter(store)

	w := do(t, router, http.MethodGet, "/api/profiles?status=Trait%C3%A9&archived=false&q=%20martin%20", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
	require.NotNil(t, store.lastFilter.Status)
	assert.Equal(t, domain.StatusDone, *store.lastFilter.Status)
	require.NotNil(t, store.lastFilter.Archived)
	assert.False(t, *store.lastFilter.Archived)
	assert.Equal(t, "martin", store.lastFilter.Query)

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/profiles?status=nope", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/profiles?archived=maybe", "").Code)
}

func TestProfileHandler_StorageErrorIsOpaque(t *testing.T) {
	store := newFakeProfiles()
	store.failWith = domain.ErrStorage("create profile", assert.AnError)
	router := testRouter(store)

	w := do(t, router, http.MethodPost, "/api/profiles", leoPayload)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestDocumentHandler_PDF(t *testing.T) {
	router := testRouter(newFakeProfiles())

	w := do(t, router, http.MethodGet, "/api/profiles/"+uuid.NewString()+"/cv.pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=CV_Leo_Martin.pdf`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestMediaHandler_Upload(t *testing.T) {
	router := testRouter(newFakeProfiles())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="leo.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/uploads/photos", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "photos/leo.png", resp["path"])
	assert.Equal(t, "/uploads/photos/leo.png", resp["url"])
}

func TestMediaHandler_UploadWithoutFile(t *testing.T) {
	router := testRouter(newFakeProfiles())
	w := do(t, router, http.MethodPost, "/api/uploads/photos", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaHandler_Logos(t *testing.T) {
	router := testRouter(newFakeProfiles())
	w := do(t, router, http.MethodGet, "/api/logos", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "logos/losc.png")
}

func validLeo(t *testing.T) domain.ProfileInput {
	t.Helper()
	var in domain.ProfileInput
	require.NoError(t, json.Unmarshal([]byte(leoPayload), &in))
	return in
}
