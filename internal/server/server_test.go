package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
	"github.com/joseph-ayodele/invoice-analyzer/internal/export"
	"github.com/joseph-ayodele/invoice-analyzer/internal/extract/extracttest"
	"github.com/joseph-ayodele/invoice-analyzer/internal/invoice"
	"github.com/joseph-ayodele/invoice-analyzer/internal/llm/mocks"
)

const wellFormed = `{"vendor":"ABC Seller","invoice_number":"INV-2025-019","invoice_date":"2025-03-05",` +
	`"due_date":null,"total_amount":"530.00","currency":"BDT","valid":true}`

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, maxUpload int64) (*gin.Engine, *mocks.MockFieldExtractor) {
	t.Helper()
	model := mocks.NewMockFieldExtractor(gomock.NewController(t))
	h := NewHandler(invoice.NewAnalyzer(nil, model, nil), nil, maxUpload, nil)
	return NewRouter(h), model
}

func uploadRequest(t *testing.T, target, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var eb errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eb))
	return eb
}

func TestAnalyzeInvoice_ImageOK(t *testing.T) {
	r, model := newTestRouter(t, 1<<20)
	model.EXPECT().ExtractFields(gomock.Any(), gomock.Any()).Return([]byte(wellFormed), nil).Times(1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/analyze-invoice", "file", "inv.png", "image/png", []byte{0x89, 'P', 'N', 'G'}))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Header().Get(HeaderInvoiceParse))
	require.NotEmpty(t, w.Header().Get(HeaderRequestID))
	require.JSONEq(t, wellFormed, w.Body.String())
}

func TestAnalyzeInvoice_PDFFencedReply(t *testing.T) {
	r, model := newTestRouter(t, 1<<20)
	model.EXPECT().ExtractFields(gomock.Any(), gomock.Any()).Return([]byte("```json\n"+wellFormed+"\n```"), nil).Times(1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/analyze-invoice", "file", "inv.pdf", "application/pdf", extracttest.BuildPDF("ABC Seller Total 530.00")))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, wellFormed, w.Body.String())
}

func TestAnalyzeInvoice_DegradedReply(t *testing.T) {
	r, model := newTestRouter(t, 1<<20)
	model.EXPECT().ExtractFields(gomock.Any(), gomock.Any()).Return([]byte("Sorry, I cannot read this invoice."), nil).Times(1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/analyze-invoice", "file", "inv.jpg", "image/jpeg", []byte{0xFF, 0xD8}))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "degraded", w.Header().Get(HeaderInvoiceParse))
	require.JSONEq(t, `{"vendor":null,"invoice_number":null,"invoice_date":null,"due_date":null,
		"total_amount":null,"currency":null,"valid":false}`, w.Body.String())
}

func TestAnalyzeInvoice_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		req    func(t *testing.T) *http.Request
		status int
		code   string
	}{
		{
			name: "unsupported type",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/analyze-invoice", "file", "notes.txt", "text/plain", []byte("hello"))
			},
			status: http.StatusUnsupportedMediaType,
			code:   common.CodeUnsupportedFileType,
		},
		{
			name: "missing file field",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/analyze-invoice", "document", "inv.png", "image/png", []byte{1})
			},
			status: http.StatusBadRequest,
			code:   common.CodeInvalidRequest,
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/analyze-invoice", bytes.NewBufferString(`{}`))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			status: http.StatusBadRequest,
			code:   common.CodeInvalidRequest,
		},
		{
			name: "empty file",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/analyze-invoice", "file", "inv.png", "image/png", nil)
			},
			status: http.StatusBadRequest,
			code:   common.CodeEmptyFile,
		},
		{
			name: "pdf without text",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/analyze-invoice", "file", "scan.pdf", "application/pdf", extracttest.BuildPDF(""))
			},
			status: http.StatusUnprocessableEntity,
			code:   common.CodeNoExtractableText,
		},
		{
			name: "bad format",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/analyze-invoice?format=csv", "file", "inv.png", "image/png", []byte{1})
			},
			status: http.StatusBadRequest,
			code:   common.CodeInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, model := newTestRouter(t, 1<<20)
			model.EXPECT().ExtractFields(gomock.Any(), gomock.Any()).Times(0)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, tt.req(t))

			require.Equal(t, tt.status, w.Code)
			eb := decodeError(t, w)
			require.Equal(t, tt.code, eb.Code)
			require.NotEmpty(t, eb.Error)
		})
	}
}

func TestAnalyzeInvoice_TooLarge(t *testing.T) {
	r, model := newTestRouter(t, 1024)
	model.EXPECT().ExtractFields(gomock.Any(), gomock.Any()).Times(0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/analyze-invoice", "file", "big.png", "image/png", bytes.Repeat([]byte{1}, 4096)))

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Equal(t, common.CodeFileTooLarge, decodeError(t, w).Code)
}

func TestAnalyzeInvoice_ModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"timeout", common.ModelUnavailableError(nil, true), http.StatusGatewayTimeout, common.CodeModelUnavailable},
		{"unreachable", common.ModelUnavailableError(nil, false), http.StatusServiceUnavailable, common.CodeModelUnavailable},
		{"auth", common.ModelAuthError(401), http.StatusBadGateway, common.CodeModelAuth},
		{"other", common.ModelError("model endpoint returned status 500", nil), http.StatusBadGateway, common.CodeModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, model := newTestRouter(t, 1<<20)
			model.EXPECT().ExtractFields(gomock.Any(), gomock.Any()).Return(nil, tt.err).Times(1)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, uploadRequest(t, "/analyze-invoice", "file", "inv.png", "image/png", []byte{1}))

			require.Equal(t, tt.status, w.Code)
			require.Equal(t, tt.code, decodeError(t, w).Code)
		})
	}
}

func TestAnalyzeInvoice_XLSX(t *testing.T) {
	r, model := newTestRouter(t, 1<<20)
	model.EXPECT().ExtractFields(gomock.Any(), gomock.Any()).Return([]byte(wellFormed), nil).Times(1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "/analyze-invoice?format=xlsx", "file", "inv.png", "image/png", []byte{1}))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, export.ContentTypeXLSX, w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "invoice.xlsx")
	// xlsx is a zip container
	require.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestRequestIDEchoed(t *testing.T) {
	r, _ := newTestRouter(t, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRoot(t *testing.T) {
	r, _ := newTestRouter(t, 1<<20)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"AI Invoice Analyzer running"}`, w.Body.String())
}
