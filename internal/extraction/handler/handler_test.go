package handler_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/completion"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/handler"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/imaging"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/service"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/logger"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/testutil"
)

func newRouter(fn completion.CompleterFunc) (chi.Router, *int) {
	calls := 0
	counting := completion.CompleterFunc(func(ctx context.Context, img *imaging.Encoded) (string, error) {
		calls++
		return fn(ctx, img)
	})

	svc := service.NewService(counting, logger.Nop())
	h := handler.NewHandler(svc, logger.Nop())

	r := chi.NewRouter()
	h.Routes(r)
	return r, &calls
}

func reply(content string) completion.CompleterFunc {
	return func(ctx context.Context, img *imaging.Encoded) (string, error) {
		return content, nil
	}
}

func TestExtract_Success(t *testing.T) {
	path := testutil.WriteImage(t, t.TempDir(), "plan.jpg", testutil.FormatJPEG)
	r, calls := newRouter(reply("```json\n{\"OWNER SIGNATURE\":\"For HEADWAY PREMIER INDUSPARK PRIVATE LIMITED\",\"STRUCTURAL ENGINEER\":\"A.N. RAVICHANDRAN\",\"REGISTERED ENGINEER\":\"A.N. RAVICHANDRAN\"}\n```"))

	req := testutil.NewHTTPRequest(http.MethodPost, handler.ExtractPath, map[string]string{"file_path": path})
	rr := testutil.ExecuteRequest(r, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"status": true,
		"statusCode": 200,
		"message": "Successfully analyzed the image",
		"OWNER SIGNATURE": "For HEADWAY PREMIER INDUSPARK PRIVATE LIMITED",
		"STRUCTURAL ENGINEER": "A.N. RAVICHANDRAN",
		"REGISTERED ENGINEER": "A.N. RAVICHANDRAN"
	}`, rr.Body.String())
	assert.Equal(t, 1, *calls)
}

func TestExtract_ProseReply(t *testing.T) {
	path := testutil.WriteImage(t, t.TempDir(), "plan.png", testutil.FormatPNG)
	r, _ := newRouter(reply("Sorry, no seals found."))

	rr := testutil.ExecuteRequest(r, testutil.NewHTTPRequest(http.MethodPost, handler.ExtractPath, map[string]string{"file_path": path}))

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, `{
		"status": true,
		"statusCode": 200,
		"message": "Successfully analyzed the image",
		"OWNER SIGNATURE": "",
		"STRUCTURAL ENGINEER": "",
		"REGISTERED ENGINEER": ""
	}`, rr.Body.String())
}

func TestExtract_InvalidImage(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "notes.txt", []byte("plain text"))
	r, calls := newRouter(reply("{}"))

	rr := testutil.ExecuteRequest(r, testutil.NewHTTPRequest(http.MethodPost, handler.ExtractPath, map[string]string{"file_path": path}))

	// failures still travel with transport status 200
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, `{
		"status": false,
		"statusCode": 400,
		"message": "I don't see a valid image. Please upload a supported image file (JPG, PNG, GIF, BMP, WEBP, or TIFF).",
		"data": [{}]
	}`, rr.Body.String())
	assert.Zero(t, *calls)
}

func TestExtract_MissingFile(t *testing.T) {
	r, calls := newRouter(reply("{}"))
	missing := filepath.Join(t.TempDir(), "nope.png")

	rr := testutil.ExecuteRequest(r, testutil.NewHTTPRequest(http.MethodPost, handler.ExtractPath, map[string]string{"file_path": missing}))

	testutil.AssertStatus(t, rr, http.StatusOK)
	var body map[string]interface{}
	testutil.ParseJSONBody(t, rr, &body)
	assert.Equal(t, false, body["status"])
	assert.Equal(t, float64(400), body["statusCode"])
	assert.Zero(t, *calls)
}

func TestExtract_EmptyFilePath(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"empty string", map[string]string{"file_path": ""}},
		{"whitespace only", map[string]string{"file_path": "   \t"}},
		{"missing key", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, calls := newRouter(reply("{}"))

			rr := testutil.ExecuteRequest(r, testutil.NewHTTPRequest(http.MethodPost, handler.ExtractPath, tt.body))

			testutil.AssertStatus(t, rr, http.StatusOK)
			assert.JSONEq(t, `{
				"message": "File path cannot be empty",
				"stratusCode": 400,
				"status": false,
				"data": [{}]
			}`, rr.Body.String())
			assert.Zero(t, *calls)
		})
	}
}

func TestExtract_InvalidJSON(t *testing.T) {
	r, calls := newRouter(reply("{}"))

	rr := testutil.ExecuteRequest(r, testutil.NewHTTPRequest(http.MethodPost, handler.ExtractPath, `{"file_path": `))

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.JSONEq(t, `{
		"message": "invalid JSON body",
		"stratusCode": 400,
		"status": false,
		"data": [{}]
	}`, rr.Body.String())
	assert.Zero(t, *calls)
}

func TestExtract_PanicIsRecovered(t *testing.T) {
	path := testutil.WriteImage(t, t.TempDir(), "plan.png", testutil.FormatPNG)
	r, _ := newRouter(func(ctx context.Context, img *imaging.Encoded) (string, error) {
		panic("completer blew up")
	})

	rr := testutil.ExecuteRequest(r, testutil.NewHTTPRequest(http.MethodPost, handler.ExtractPath, map[string]string{"file_path": path}))

	testutil.AssertStatus(t, rr, http.StatusOK)
	var body map[string]interface{}
	testutil.ParseJSONBody(t, rr, &body)
	assert.Equal(t, "completer blew up", body["message"])
	assert.Equal(t, float64(400), body["stratusCode"])
	assert.Equal(t, false, body["status"])
}

func TestExtract_OnlyPOST(t *testing.T) {
	r, _ := newRouter(reply("{}"))

	rr := testutil.ExecuteRequest(r, testutil.NewHTTPRequest(http.MethodGet, handler.ExtractPath, nil))

	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
