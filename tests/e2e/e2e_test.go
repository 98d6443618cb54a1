package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reportdesk/internal/database"
	"reportdesk/internal/domain"
	"reportdesk/internal/domain/filestore"
	"reportdesk/internal/middleware"
	"reportdesk/internal/modules/auth"
	"reportdesk/internal/modules/project"
	"reportdesk/internal/modules/report"
	"reportdesk/internal/modules/share"
	jwtsvc "reportdesk/internal/pkg/jwt"
	"reportdesk/internal/repository"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	reportRepo := repository.NewReportRepository(db)
	shareRepo := repository.NewShareLinkRepository(db)
	fileRepo := filestore.NewRepository(db)

	j := jwtsvc.New("e2e-secret", time.Hour)

	fileService, err := filestore.NewService(fileRepo, t.TempDir(), 1024*1024)
	require.NoError(t, err)
	fileHandler := filestore.NewHandler(fileService)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	projectHandler := project.NewHandler(project.NewService(projectRepo))
	reportService := report.NewService(reportRepo, fileRepo)
	reportHandler := report.NewHandler(reportService)
	shareHandler := share.NewHandler(share.NewService(shareRepo, reportService, time.Hour), fileService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		shareHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			projectHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			shareHandler.RegisterRoutes(protected)
			filestore.RegisterRoutes(protected, fileHandler, middleware.RequireRole(string(domain.RoleAdmin)))
		}
	}

	return &E2ETestSuite{router: r, db: db}
}

func (s *E2ETestSuite) doJSON(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var parsed TestResponse
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func (s *E2ETestSuite) uploadFile(t *testing.T, token, fileName, mimeType string, content []byte) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var parsed TestResponse
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func (s *E2ETestSuite) registerUser(t *testing.T, email string) string {
	t.Helper()
	w, resp := s.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Agent",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *E2ETestSuite) registerAgent(t *testing.T) string {
	return s.registerUser(t, "agent@example.com")
}

// registerAdmin creates a user, promotes it in the database, and logs in
// again so the token carries the admin role.
func (s *E2ETestSuite) registerAdmin(t *testing.T) string {
	t.Helper()
	s.registerUser(t, "admin@example.com")
	require.NoError(t, s.db.Model(&domain.User{}).
		Where("email = ?", "admin@example.com").
		Update("role", domain.RoleAdmin).Error)

	w, resp := s.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func pdfContent(marker string) []byte {
	return []byte("%PDF-1.4\n" + marker)
}

func TestUploadDedupFlow(t *testing.T) {
	s := setupTestSuite(t)
	token := s.registerAgent(t)

	content := pdfContent("listing photos")

	w, resp := s.uploadFile(t, token, "a.pdf", "application/pdf", content)
	require.Equal(t, http.StatusCreated, w.Code)
	firstID, _ := resp.Data["id"].(string)
	firstHash, _ := resp.Data["hash"].(string)
	require.NotEmpty(t, firstID)
	require.NotEmpty(t, firstHash)
	assert.Equal(t, firstHash+".pdf", resp.Data["stored_name"])

	// Identical bytes under a different name converge on the first record.
	w, resp = s.uploadFile(t, token, "b.pdf", "application/pdf", content)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, firstID, resp.Data["id"])
	assert.Equal(t, "a.pdf", resp.Data["original_name"])

	// The blob streams back byte-identical.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/"+firstID+"/download", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	dl := httptest.NewRecorder()
	s.router.ServeHTTP(dl, req)
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, content, dl.Body.Bytes())
	assert.Equal(t, "application/pdf", dl.Header().Get("Content-Type"))
}

func TestUploadValidation(t *testing.T) {
	s := setupTestSuite(t)
	token := s.registerAgent(t)

	w, _ := s.uploadFile(t, token, "evil.exe", "application/pdf", pdfContent("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.uploadFile(t, token, "fake.pdf", "application/pdf", []byte("no pdf magic here"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.uploadFile(t, token, "notes.txt", "application/x-shellscript", []byte("echo hi"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRequiresAuth(t *testing.T) {
	s := setupTestSuite(t)
	w, _ := s.uploadFile(t, "bad-token", "a.pdf", "application/pdf", pdfContent("x"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportPackageAndShareFlow(t *testing.T) {
	s := setupTestSuite(t)
	token := s.registerAgent(t)

	w, resp := s.doJSON(t, http.MethodPost, "/api/v1/projects", token, map[string]string{
		"name":    "14 Maple Street Listing",
		"address": "14 Maple Street",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	projectID, _ := resp.Data["id"].(string)
	require.NotEmpty(t, projectID)

	w, resp = s.doJSON(t, http.MethodPost, "/api/v1/reports", token, map[string]string{
		"project_id": projectID,
		"title":      "Listing Presentation",
		"kind":       string(domain.ReportListingPresentation),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reportID, _ := resp.Data["id"].(string)
	require.NotEmpty(t, reportID)

	_, up := s.uploadFile(t, token, "presentation.pdf", "application/pdf", pdfContent("deck"))
	fileID, _ := up.Data["id"].(string)
	require.NotEmpty(t, fileID)

	w, _ = s.doJSON(t, http.MethodPost, "/api/v1/reports/"+reportID+"/files", token, map[string]string{
		"file_id": fileID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Packaged archive is a valid ZIP (signature "PK").
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+reportID+"/package", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	pkg := httptest.NewRecorder()
	s.router.ServeHTTP(pkg, req)
	require.Equal(t, http.StatusOK, pkg.Code)
	assert.Equal(t, "application/zip", pkg.Header().Get("Content-Type"))
	require.True(t, pkg.Body.Len() > 4)
	assert.Equal(t, []byte{'P', 'K'}, pkg.Body.Bytes()[:2])

	// Share the report and resolve it anonymously.
	w, resp = s.doJSON(t, http.MethodPost, "/api/v1/share-links", token, map[string]string{
		"report_id": reportID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	shareToken, _ := resp.Data["token"].(string)
	require.NotEmpty(t, shareToken)

	w, resp = s.doJSON(t, http.MethodGet, "/api/v1/shared/"+shareToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	files, _ := resp.Data["files"].([]interface{})
	require.Len(t, files, 1)

	// Anonymous download through the share token.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/shared/"+shareToken+"/files/"+fileID+"/download", nil)
	sharedDL := httptest.NewRecorder()
	s.router.ServeHTTP(sharedDL, req)
	require.Equal(t, http.StatusOK, sharedDL.Code)
	assert.Equal(t, pdfContent("deck"), sharedDL.Body.Bytes())

	// Revoked links stop resolving.
	linkID := ""
	var links []domain.ShareLink
	require.NoError(t, s.db.Find(&links).Error)
	require.Len(t, links, 1)
	linkID = links[0].ID

	w, _ = s.doJSON(t, http.MethodPost, "/api/v1/share-links/"+linkID+"/revoke", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.doJSON(t, http.MethodGet, "/api/v1/shared/"+shareToken, "", nil)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestCompletedProjectSurvivesCleanup(t *testing.T) {
	s := setupTestSuite(t)
	token := s.registerAgent(t)

	w, resp := s.doJSON(t, http.MethodPost, "/api/v1/projects", token, map[string]string{
		"name": "Closed Listing",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	projectID, _ := resp.Data["id"].(string)

	content := pdfContent("final summary")
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="summary.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("project_id", projectID))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var parsed TestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	fileID, _ := parsed.Data["id"].(string)

	w, _ = s.doJSON(t, http.MethodPatch, "/api/v1/projects/"+projectID+"/status", token, map[string]string{
		"status": string(domain.ProjectCompleted),
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Age the file far past the cutoff, then run cleanup.
	old := time.Now().AddDate(0, 0, -365)
	require.NoError(t, s.db.Model(&filestore.StoredFile{}).Where("id = ?", fileID).Update("uploaded_at", old).Error)

	admin := s.registerAdmin(t)
	w, resp = s.doJSON(t, http.MethodPost, "/api/v1/files/cleanup?older_than_days=30", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp.Data["cleaned"])

	w, _ = s.doJSON(t, http.MethodGet, "/api/v1/files/"+fileID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatsEndpoint(t *testing.T) {
	s := setupTestSuite(t)
	token := s.registerAgent(t)
	admin := s.registerAdmin(t)

	_, _ = s.uploadFile(t, token, "a.pdf", "application/pdf", pdfContent("one"))
	_, _ = s.uploadFile(t, token, "b.txt", "text/plain", []byte("two"))

	// Stats are admin-only.
	w, _ := s.doJSON(t, http.MethodGet, "/api/v1/files/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, resp := s.doJSON(t, http.MethodGet, "/api/v1/files/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), resp.Data["total_files"])
}

func TestFileDeleteOwnership(t *testing.T) {
	s := setupTestSuite(t)
	alice := s.registerUser(t, "alice@example.com")
	bob := s.registerUser(t, "bob@example.com")

	_, up := s.uploadFile(t, alice, "deal.pdf", "application/pdf", pdfContent("signed"))
	fileID, _ := up.Data["id"].(string)
	require.NotEmpty(t, fileID)

	// Another agent cannot delete it, and it stays retrievable.
	w, _ := s.doJSON(t, http.MethodDelete, "/api/v1/files/"+fileID, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.doJSON(t, http.MethodGet, "/api/v1/files/"+fileID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The uploader can.
	w, _ = s.doJSON(t, http.MethodDelete, "/api/v1/files/"+fileID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.doJSON(t, http.MethodGet, "/api/v1/files/"+fileID, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Admins can delete anyone's files.
	_, up = s.uploadFile(t, alice, "brochure.pdf", "application/pdf", pdfContent("glossy"))
	fileID, _ = up.Data["id"].(string)
	admin := s.registerAdmin(t)
	w, _ = s.doJSON(t, http.MethodDelete, "/api/v1/files/"+fileID, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminOnlyFileRoutes(t *testing.T) {
	s := setupTestSuite(t)
	token := s.registerAgent(t)

	w, _ := s.doJSON(t, http.MethodPost, "/api/v1/files/cleanup", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.doJSON(t, http.MethodPost, "/api/v1/files/batch-delete", token, map[string][]string{
		"ids": {"some-id"},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
