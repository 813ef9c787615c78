//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request performs a request with a JSON body. staff adds the staff code header.
func (env *TestEnv) Request(method, path string, body interface{}, staff bool) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if staff {
		req.Header.Set("X-Staff-Code", TestStaffCode)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// POST performs a public POST request.
func (env *TestEnv) POST(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.Request(http.MethodPost, path, body, false)
}

// GET performs a public GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	return env.Request(http.MethodGet, path, nil, false)
}

// StaffGET performs a GET request with the staff code.
func (env *TestEnv) StaffGET(path string) *http.Response {
	env.t.Helper()
	return env.Request(http.MethodGet, path, nil, true)
}

// StaffPOST performs a POST request with the staff code.
func (env *TestEnv) StaffPOST(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.Request(http.MethodPost, path, body, true)
}

// StaffPATCH performs a PATCH request with the staff code.
func (env *TestEnv) StaffPATCH(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.Request(http.MethodPatch, path, body, true)
}

// StaffDELETE performs a DELETE request with the staff code.
func (env *TestEnv) StaffDELETE(path string) *http.Response {
	env.t.Helper()
	return env.Request(http.MethodDelete, path, nil, true)
}

// Upload posts a multipart image to /api/uploads/{kind}.
func (env *TestEnv) Upload(kind, filename, contentType string, data []byte) *http.Response {
	env.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		env.t.Fatalf("Upload: create part: %v", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(data)); err != nil {
		env.t.Fatalf("Upload: write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		env.t.Fatalf("Upload: close writer: %v", err)
	}

	resp, err := http.Post(env.Server.URL+"/api/uploads/"+kind, mw.FormDataContentType(), &body)
	if err != nil {
		env.t.Fatalf("Upload: %v", err)
	}
	return resp
}

// CreateProfile posts payload and returns the new profile id.
func (env *TestEnv) CreateProfile(payload map[string]interface{}) uuid.UUID {
	env.t.Helper()
	resp := env.POST("/api/profiles", payload)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		env.t.Fatalf("CreateProfile: expected 201, got %d: %s", resp.StatusCode, b)
	}
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		env.t.Fatalf("CreateProfile: decode: %v", err)
	}
	return created.ID
}

// CountRows counts rows of table belonging to a profile.
func (env *TestEnv) CountRows(table string, profileID uuid.UUID) int {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	column := "profile_id"
	if table == "player_profiles" {
		column = "id"
	}
	var n int
	if err := env.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table+" WHERE "+column+" = $1", profileID).Scan(&n); err != nil {
		env.t.Fatalf("CountRows %s: %v", table, err)
	}
	return n
}

// RejectQualityLabel makes Postgres refuse quality rows carrying label until
// the test ends, so a write can fail after earlier statements of its transaction.
func (env *TestEnv) RejectQualityLabel(label string) {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const drop = "ALTER TABLE profile_qualities DROP CONSTRAINT IF EXISTS test_rejected_label"
	literal := "'" + strings.ReplaceAll(label, "'", "''") + "'"
	if _, err := env.Pool.Exec(ctx, drop); err != nil {
		env.t.Fatalf("RejectQualityLabel: %v", err)
	}
	if _, err := env.Pool.Exec(ctx, "ALTER TABLE profile_qualities ADD CONSTRAINT test_rejected_label CHECK (label <> "+literal+")"); err != nil {
		env.t.Fatalf("RejectQualityLabel: %v", err)
	}
	env.t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = env.Pool.Exec(ctx, drop)
	})
}

// LeoMartin returns a valid create payload: one quality, one completed season.
func LeoMartin() map[string]interface{} {
	return map[string]interface{}{
		"lastName":        "Martin",
		"firstName":       "Leo",
		"nationalities":   []string{"France"},
		"birthDate":       "2008-04-12",
		"strongFoot":      "Droit",
		"heightCm":        178,
		"cvColor":         "#C8102E",
		"primaryPosition": "MC",
		"photoPath":       "photos/absent.jpg",
		"email":           "leo.martin@example.com",
		"phone":           "+33612345678",
		"qualities":       []string{"Vitesse"},
		"seasons": []map[string]interface{}{{
			"club":             "FC Test",
			"category":         "U17",
			"division":         "Ligue 1",
			"logoClubPath":     "logos/absent.png",
			"logoDivisionPath": "logos/absent.png",
			"matches":          20,
			"isCurrentSeason":  false,
		}},
	}
}
