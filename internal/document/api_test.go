package document_test

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/document"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/middleware"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/storage"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const maxUploadBytes = 4 << 10

type documentTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	dir    string
	owner  *testutil.TestAccount
	other  *testutil.TestAccount
	admin  *testutil.TestAccount
}

func setupTestEnvironment(t *testing.T, store storage.Store) *documentTestEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	tokenManager := testutil.NewTokenManager()

	dir := t.TempDir()
	if store == nil {
		local, err := storage.NewLocalStore(dir)
		require.NoError(t, err)
		store = local
	}

	documentService := document.NewDocumentService(db, document.NewDocumentRepository(), store)
	documentHandler := document.NewDocumentHandler(documentService, maxUploadBytes)

	router := testutil.SetupTestRouter()
	documents := router.Group("/api/documents", middleware.JWT(tokenManager))
	{
		documents.GET("", documentHandler.List)
		documents.GET("/:id", documentHandler.Get)
		documents.GET("/:id/download", documentHandler.Download)
		documents.POST("", documentHandler.Upload)
		documents.DELETE("/:id", documentHandler.Delete)
	}

	return &documentTestEnv{
		db:     db,
		router: router,
		dir:    dir,
		owner:  testutil.CreateAccount(t, db, tokenManager, "owner@example.com", false),
		other:  testutil.CreateAccount(t, db, tokenManager, "other@example.com", false),
		admin:  testutil.CreateAccount(t, db, tokenManager, "admin@example.com", true),
	}
}

func (e *documentTestEnv) upload(t *testing.T, account *testutil.TestAccount, title, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", title))
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+account.Token)

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func (e *documentTestEnv) storedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestUpload_StoresUnderGeneratedName(t *testing.T) {
	// Given
	env := setupTestEnvironment(t, nil)

	// When
	recorder := env.upload(t, env.owner, "Minutes", "../../minutes.txt", []byte("agenda"))

	// Then
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var doc document.DocumentResponse
	testutil.ParseResponse(t, recorder, &doc)
	assert.Equal(t, "Minutes", doc.Title)
	assert.Equal(t, "minutes.txt", doc.FileName)
	assert.Equal(t, int64(6), doc.Size)
	assert.Equal(t, env.owner.Member.ID, doc.UploadedByID)

	files := env.storedFiles(t)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], "_minutes.txt"))

	var stored model.Document
	require.NoError(t, env.db.First(&stored, doc.ID).Error)
	assert.Equal(t, files[0], stored.StoragePath)
}

func TestUpload_LongFileName(t *testing.T) {
	// Given: a client file name past the 255 byte filesystem limit
	env := setupTestEnvironment(t, nil)
	fileName := strings.Repeat("r", 230) + ".pdf"

	// When
	recorder := env.upload(t, env.owner, "Report", fileName, []byte("%PDF"))

	// Then
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	var doc document.DocumentResponse
	testutil.ParseResponse(t, recorder, &doc)
	assert.Equal(t, fileName, doc.FileName)

	files := env.storedFiles(t)
	require.Len(t, files, 1)
	assert.LessOrEqual(t, len(files[0]), 255)
	assert.True(t, strings.HasSuffix(files[0], ".pdf"))
}

func TestUpload_Download_RoundTrip(t *testing.T) {
	env := setupTestEnvironment(t, nil)
	created := env.upload(t, env.owner, "Poster", "poster.txt", []byte("print me"))
	require.Equal(t, http.StatusCreated, created.Code)
	var doc document.DocumentResponse
	testutil.ParseResponse(t, created, &doc)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("/api/documents/%d/download", doc.ID),
		Token:  env.other.Token,
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "print me", recorder.Body.String())
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), `filename=poster.txt`)
}

func TestUpload_Rejections(t *testing.T) {
	env := setupTestEnvironment(t, nil)

	tooLarge := env.upload(t, env.owner, "Big", "big.bin", bytes.Repeat([]byte("x"), maxUploadBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, tooLarge.Code)
	assert.Equal(t, "ERROR-008", testutil.ParseError(t, tooLarge).Code)

	empty := env.upload(t, env.owner, "Empty", "empty.txt", nil)
	assert.Equal(t, http.StatusBadRequest, empty.Code)
	assert.Equal(t, "DOCUMENT-003", testutil.ParseError(t, empty).Code)

	noTitle := env.upload(t, env.owner, "", "a.txt", []byte("a"))
	assert.Equal(t, http.StatusBadRequest, noTitle.Code)

	assert.Empty(t, env.storedFiles(t))
}

func TestUpload_RemovesObjectWhenInsertFails(t *testing.T) {
	// Given: a store that accepts the object and a database that refuses the row
	store := &testutil.MockStore{}
	env := setupTestEnvironment(t, store)

	var storedKey string
	store.On("Put", mock.Anything, mock.Anything, mock.Anything, int64(5), mock.Anything).
		Run(func(args mock.Arguments) { storedKey = args.String(1) }).
		Return(nil)
	store.On("Delete", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, env.db.Callback().Create().Before("gorm:create").Register("fail_document_insert", func(tx *gorm.DB) {
		if tx.Statement.Table == "document" {
			_ = tx.AddError(errors.New("insert refused"))
		}
	}))

	// When
	recorder := env.upload(t, env.owner, "Doomed", "doomed.txt", []byte("hello"))

	// Then
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	store.AssertCalled(t, "Delete", mock.Anything, storedKey)
	assert.True(t, strings.HasSuffix(storedKey, "_doomed.txt"))
}

func TestDelete_OwnerOrAdmin(t *testing.T) {
	env := setupTestEnvironment(t, nil)

	upload := func() uint32 {
		recorder := env.upload(t, env.owner, "Notes", "notes.txt", []byte("n"))
		require.Equal(t, http.StatusCreated, recorder.Code)
		var doc document.DocumentResponse
		testutil.ParseResponse(t, recorder, &doc)
		return doc.ID
	}
	deleteAs := func(account *testutil.TestAccount, id uint32) int {
		return testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
			Method: http.MethodDelete,
			URL:    fmt.Sprintf("/api/documents/%d", id),
			Token:  account.Token,
		}).Code
	}

	first, second := upload(), upload()
	require.Len(t, env.storedFiles(t), 2)

	assert.Equal(t, http.StatusForbidden, deleteAs(env.other, first))
	assert.Equal(t, http.StatusNoContent, deleteAs(env.owner, first))
	assert.Equal(t, http.StatusNoContent, deleteAs(env.admin, second))
	assert.Equal(t, http.StatusNotFound, deleteAs(env.owner, second))

	assert.Empty(t, env.storedFiles(t))
	var rows int64
	require.NoError(t, env.db.Unscoped().Model(&model.Document{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestDownload_MissingObject(t *testing.T) {
	env := setupTestEnvironment(t, nil)
	created := env.upload(t, env.owner, "Lost", "lost.txt", []byte("gone"))
	require.Equal(t, http.StatusCreated, created.Code)
	var doc document.DocumentResponse
	testutil.ParseResponse(t, created, &doc)

	files := env.storedFiles(t)
	require.Len(t, files, 1)
	require.NoError(t, os.Remove(filepath.Join(env.dir, files[0])))

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("/api/documents/%d/download", doc.ID),
		Token:  env.owner.Token,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "DOCUMENT-004", testutil.ParseError(t, recorder).Code)
}
