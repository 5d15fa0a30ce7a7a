package web_test

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/butiken/storefront/internal/factory"
	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp()

	router := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		Storage:        app.Storage,
		Sessions:       app.Sessions,
		Resolver:       app.Resolver,
		CartEngine:     app.CartEngine,
		AuthService:    app.AuthService,
		ContactService: app.ContactService,
		Random:         app.Random,
		SecureCookies:  false,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// postMultipart makes a POST request with a multipart form, optionally
// attaching a file under the "file" field
func (ts *webTestServer) postMultipart(path string, fields map[string]string, filename string, fileData []byte) *httptest.ResponseRecorder {
	ts.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(ts.t, mw.WriteField(key, value))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(ts.t, err)
		_, err = fw.Write(fileData)
		require.NoError(ts.t, err)
	}
	require.NoError(ts.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	ts.cookies.extract(rr)

	return rr
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// get returns the named cookie value, or "" when absent
func (j *cookieJar) get(name string) string {
	if cookie, ok := j.cookies[name]; ok {
		return cookie.Value
	}
	return ""
}

// Helper functions for common test operations

// addProduct seeds a catalog product directly through storage
func (ts *webTestServer) addProduct(id model.ProductID, name string, price int64) {
	ts.t.Helper()
	err := ts.app.Storage.SaveProduct(ts.t.Context(), &model.Product{
		ID:    id,
		Name:  name,
		Price: price,
	})
	require.NoError(ts.t, err)
}

// fetchCaptcha renders a fresh challenge into the session and returns the
// code the form must echo back
func (ts *webTestServer) fetchCaptcha(code string) string {
	ts.t.Helper()
	ts.app.MockRandom.QueueString(code)
	rr := ts.get("/captcha.png")
	require.Equal(ts.t, http.StatusOK, rr.Code, "Expected captcha image to render")
	require.Equal(ts.t, "image/png", rr.Header().Get("Content-Type"))
	return code
}

// register creates an account through the registration form
func (ts *webTestServer) register(email, username, password string) {
	ts.t.Helper()
	code := ts.fetchCaptcha("aBdEfG")
	form := url.Values{
		"email":    {email},
		"username": {username},
		"password": {password},
		"captcha":  {code},
	}
	rr := ts.post("/register", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after registration")
	require.Contains(ts.t, rr.Header().Get("Location"), "/login", "Expected redirect to login page")
}

// login signs in through the login form
func (ts *webTestServer) login(email, password string, remember bool) *httptest.ResponseRecorder {
	ts.t.Helper()
	form := url.Values{
		"email":    {email},
		"password": {password},
	}
	if remember {
		form.Set("remember", "1")
	}
	return ts.post("/login", form)
}

// accountStatus returns the header status line from the store page
func (ts *webTestServer) accountStatus() string {
	ts.t.Helper()
	rr := ts.get("/")
	require.Equal(ts.t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	return strings.TrimSpace(doc.Find(".account-status").Text())
}

// Store page tests

func TestStorePageListsProducts(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addProduct(1, "Mug", 12950)
	ts.addProduct(2, "Shirt", 25000)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	products := doc.Find(".product")
	require.Equal(t, 2, products.Length())
	require.Contains(t, doc.Find(".product h3").First().Text(), "Mug")
	require.Contains(t, doc.Find(".product .price").First().Text(), "129.50")
}

func TestStorePageShowsGuestStatus(t *testing.T) {
	ts := newWebTestServer(t)

	require.Equal(t, "Not signed in", ts.accountStatus())
}

func TestStorePageEscapesProductFields(t *testing.T) {
	ts := newWebTestServer(t)
	ts.addProduct(1, `<script>alert("x")</script>`, 100)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotContains(t, rr.Body.String(), `<script>alert`)
}

func TestSessionCookieIssuedOnFirstVisit(t *testing.T) {
	ts := newWebTestServer(t)

	ts.get("/")
	require.NotEmpty(t, ts.cookies.get("session"))
}

// Contact form tests

func TestContactFormSubmission(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.postMultipart("/contact", map[string]string{
		"name":    "Alice",
		"email":   "alice@example.com",
		"subject": "Order question",
		"message": "Where is my mug?",
	}, "receipt.txt", []byte("attached"))
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	require.Contains(t, doc.Find(".status").Text(), "has been sent")

	msgs := ts.app.SentMail.Contacts()
	require.Len(t, msgs, 1)
	require.Equal(t, "Order question", msgs[0].Subject)
	require.Equal(t, "receipt.txt", msgs[0].AttachmentName)
	require.Equal(t, []byte("attached"), msgs[0].Attachment)
}

func TestContactFormValidationErrorsShown(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.postMultipart("/contact", map[string]string{
		"name":    "Alice",
		"email":   "not-an-email",
		"subject": "",
		"message": "hello",
	}, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	errText := doc.Find(".error").Text()
	require.Contains(t, errText, "valid email")
	require.Contains(t, errText, "subject")
	require.Empty(t, ts.app.SentMail.Contacts())
}
