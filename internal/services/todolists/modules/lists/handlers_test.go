package lists

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/louisbranch/todolists/internal/services/todolists/platform/httpx"
	"github.com/louisbranch/todolists/internal/services/todolists/session"
	"github.com/louisbranch/todolists/internal/services/todolists/storage/memory"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestSessions(t *testing.T) *session.Manager {
	t.Helper()
	manager, err := session.NewManager(session.Config{Store: memory.New(), Secret: testSecret, TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return manager
}

type testBrowser struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
}

func newTestBrowser(t *testing.T, opts ...Option) *testBrowser {
	t.Helper()
	mount, err := New(newTestSessions(t), opts...).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	server := httptest.NewServer(mount.Handler)
	t.Cleanup(server.Close)
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &testBrowser{t: t, server: server, client: &http.Client{Jar: jar}}
}

type page struct {
	status int
	path   string
	body   string
	doc    *html.Node
}

func (b *testBrowser) do(req *http.Request) page {
	b.t.Helper()
	resp, err := b.client.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		b.t.Fatalf("read body: %v", err)
	}
	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		b.t.Fatalf("parse html: %v", err)
	}
	return page{status: resp.StatusCode, path: resp.Request.URL.Path, body: string(raw), doc: doc}
}

func (b *testBrowser) get(path string) page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.server.URL+path, nil)
	if err != nil {
		b.t.Fatalf("new request: %v", err)
	}
	return b.do(req)
}

func (b *testBrowser) post(path string, form url.Values, headers ...string) page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.server.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		b.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return b.do(req)
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			found = append(found, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return found
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func elementsWithAttr(doc *html.Node, tag, name string) []*html.Node {
	return findAll(doc, func(n *html.Node) bool {
		return n.Data == tag && attr(n, name) != ""
	})
}

func counter(t *testing.T, doc *html.Node) string {
	t.Helper()
	nodes := findAll(doc, func(n *html.Node) bool { return n.Data == "p" && hasClass(n, "counter") })
	if len(nodes) == 0 {
		t.Fatal("no counter on page")
	}
	return textOf(nodes[0])
}

func flashText(doc *html.Node) string {
	nodes := findAll(doc, func(n *html.Node) bool { return n.Data == "div" && hasClass(n, "flash") })
	if len(nodes) == 0 {
		return ""
	}
	return textOf(nodes[0])
}

func listNames(doc *html.Node) []string {
	var names []string
	for _, li := range elementsWithAttr(doc, "li", "data-list-id") {
		for _, h := range findAll(li, func(n *html.Node) bool { return n.Data == "h2" }) {
			names = append(names, textOf(h))
		}
	}
	return names
}

func TestListLifecycle(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)

	index := b.get("/")
	if index.path != "/lists" {
		t.Fatalf("path = %q, want %q", index.path, "/lists")
	}
	if !strings.Contains(index.body, "You have no lists yet.") {
		t.Fatalf("expected empty index, got %s", index.body)
	}

	created := b.post("/lists", url.Values{"list_name": {"Groceries"}})
	if created.status != http.StatusOK || created.path != "/lists" {
		t.Fatalf("create landed on %d %s", created.status, created.path)
	}
	if got := flashText(created.doc); got != "The list has been created." {
		t.Fatalf("flash = %q", got)
	}
	if names := listNames(created.doc); len(names) != 1 || names[0] != "Groceries" {
		t.Fatalf("lists = %v", names)
	}
	if got := counter(t, created.doc); got != "0 / 0" {
		t.Fatalf("counter = %q, want %q", got, "0 / 0")
	}

	added := b.post("/lists/1/todos", url.Values{"todo": {"Milk"}})
	if added.path != "/lists/1" {
		t.Fatalf("path = %q, want %q", added.path, "/lists/1")
	}
	if got := flashText(added.doc); got != "The todo has been added." {
		t.Fatalf("flash = %q", got)
	}
	if got := counter(t, added.doc); got != "1 / 1" {
		t.Fatalf("counter = %q, want %q", got, "1 / 1")
	}

	toggled := b.post("/lists/1/todos/1", url.Values{"completed": {"true"}})
	if got := counter(t, toggled.doc); got != "0 / 1" {
		t.Fatalf("counter = %q, want %q", got, "0 / 1")
	}
	todos := elementsWithAttr(toggled.doc, "li", "data-todo-id")
	if len(todos) != 1 || !hasClass(todos[0], "complete") {
		t.Fatal("expected completed todo")
	}

	lists := b.get("/lists")
	items := elementsWithAttr(lists.doc, "li", "data-list-id")
	if len(items) != 1 || !hasClass(items[0], "complete") {
		t.Fatal("expected list marked complete")
	}
	if got := flashText(lists.doc); got != "" {
		t.Fatalf("flash shown twice: %q", got)
	}

	reopened := b.post("/lists/1/todos/1", url.Values{"completed": {"false"}})
	if got := counter(t, reopened.doc); got != "1 / 1" {
		t.Fatalf("counter = %q, want %q", got, "1 / 1")
	}
}

func TestCreateListValidation(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)

	blank := b.post("/lists", url.Values{"list_name": {"   "}})
	if blank.status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", blank.status, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(blank.body, "The list name must be between 1 and 100 characters.") {
		t.Fatalf("missing length error in %s", blank.body)
	}

	b.post("/lists", url.Values{"list_name": {"Chores"}})
	duplicate := b.post("/lists", url.Values{"list_name": {" Chores "}})
	if duplicate.status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", duplicate.status, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(duplicate.body, "The list name must be unique.") {
		t.Fatalf("missing unique error in %s", duplicate.body)
	}
	inputs := findAll(duplicate.doc, func(n *html.Node) bool { return n.Data == "input" && attr(n, "name") == "list_name" })
	if len(inputs) != 1 || attr(inputs[0], "value") != " Chores " {
		t.Fatal("expected submitted value to be kept")
	}

	if names := listNames(b.get("/lists").doc); len(names) != 1 {
		t.Fatalf("lists = %v, want one", names)
	}
}

func TestRenameList(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)
	b.post("/lists", url.Values{"list_name": {"Chores"}})
	b.post("/lists", url.Values{"list_name": {"Errands"}})

	edit := b.get("/lists/1/edit")
	if edit.status != http.StatusOK || !strings.Contains(edit.body, "Editing &#39;Chores&#39;") {
		t.Fatalf("edit page = %d %s", edit.status, edit.body)
	}

	same := b.post("/lists/1", url.Values{"list_name": {"Chores"}})
	if same.path != "/lists/1" || flashText(same.doc) != "The list has been updated." {
		t.Fatalf("rename to self landed on %s with flash %q", same.path, flashText(same.doc))
	}

	taken := b.post("/lists/1", url.Values{"list_name": {"Errands"}})
	if taken.status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", taken.status, http.StatusUnprocessableEntity)
	}

	renamed := b.post("/lists/1", url.Values{"list_name": {"House"}})
	if renamed.path != "/lists/1" {
		t.Fatalf("path = %q", renamed.path)
	}
	headers := findAll(renamed.doc, func(n *html.Node) bool { return n.Data == "section" && hasClass(n, "list-header") })
	if len(headers) != 1 || !strings.Contains(textOf(headers[0]), "House") {
		t.Fatal("expected renamed list header")
	}
}

func TestAddTodoValidationRerendersList(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)
	b.post("/lists", url.Values{"list_name": {"Groceries"}})

	long := strings.Repeat("x", 101)
	resp := b.post("/lists/1/todos", url.Values{"todo": {long}})
	if resp.status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.status, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(resp.body, "The todo name must be between 1 and 100 characters.") {
		t.Fatalf("missing todo error in %s", resp.body)
	}
	if len(elementsWithAttr(resp.doc, "li", "data-todo-id")) != 0 {
		t.Fatal("invalid todo was stored")
	}
}

func TestUnknownListRedirectsWithFlash(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)
	for _, path := range []string{"/lists/99", "/lists/abc", "/lists/99/edit"} {
		resp := b.get(path)
		if resp.path != "/lists" {
			t.Fatalf("%s landed on %q, want /lists", path, resp.path)
		}
		if got := flashText(resp.doc); got != "The specified list was not found." {
			t.Fatalf("%s flash = %q", path, got)
		}
	}

	resp := b.post("/lists/99/todos", url.Values{"todo": {"Milk"}})
	if resp.path != "/lists" || flashText(resp.doc) != "The specified list was not found." {
		t.Fatalf("add todo to missing list landed on %s", resp.path)
	}
}

func TestAsyncDestroyAnswersNoContent(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)
	b.post("/lists", url.Values{"list_name": {"Groceries"}})
	b.post("/lists/1/todos", url.Values{"todo": {"Milk"}})

	resp := b.post("/lists/1/todos/1/destroy", nil, "X-Requested-With", "XMLHttpRequest")
	if resp.status != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", resp.status, http.StatusNoContent)
	}
	if got := counter(t, b.get("/lists/1").doc); got != "0 / 0" {
		t.Fatalf("counter = %q, want %q", got, "0 / 0")
	}

	resp = b.post("/lists/1/destroy", nil, "HX-Request", "true")
	if resp.status != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", resp.status, http.StatusNoContent)
	}
	index := b.get("/lists")
	if names := listNames(index.doc); len(names) != 0 {
		t.Fatalf("lists = %v, want none", names)
	}
	if got := flashText(index.doc); got != "" {
		t.Fatalf("async destroy left flash %q", got)
	}

	missing := b.post("/lists/1/destroy", nil, "X-Requested-With", "XMLHttpRequest")
	if missing.status != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", missing.status, http.StatusNotFound)
	}
}

func TestRedirectModeIgnoresAsyncHeader(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t, WithResponseMode(httpx.ResponseModeRedirect))
	b.post("/lists", url.Values{"list_name": {"Groceries"}})

	resp := b.post("/lists/1/destroy", nil, "X-Requested-With", "XMLHttpRequest")
	if resp.status != http.StatusOK || resp.path != "/lists" {
		t.Fatalf("landed on %d %s, want 200 /lists", resp.status, resp.path)
	}
	if got := flashText(resp.doc); got != "The list has been deleted." {
		t.Fatalf("flash = %q", got)
	}
}

func TestHTMXRedirectUsesHeader(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)
	resp, err := b.client.Do(func() *http.Request {
		req, _ := http.NewRequest(http.MethodPost, b.server.URL+"/lists", strings.NewReader("list_name=Groceries"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("HX-Request", "true")
		return req
	}())
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("HX-Redirect"); got != "/lists" {
		t.Fatalf("HX-Redirect = %q, want %q", got, "/lists")
	}
}

func TestCompleteAllAndDisplayOrder(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)
	b.post("/lists", url.Values{"list_name": {"Done soon"}})
	b.post("/lists", url.Values{"list_name": {"Later"}})
	b.post("/lists/1/todos", url.Values{"todo": {"a"}})
	b.post("/lists/1/todos", url.Values{"todo": {"b"}})
	b.post("/lists/2/todos", url.Values{"todo": {"c"}})

	done := b.post("/lists/1/complete_all", nil)
	if got := flashText(done.doc); got != "All todos have been completed." {
		t.Fatalf("flash = %q", got)
	}
	if got := counter(t, done.doc); got != "0 / 2" {
		t.Fatalf("counter = %q, want %q", got, "0 / 2")
	}

	names := listNames(b.get("/lists").doc)
	if len(names) != 2 || names[0] != "Later" || names[1] != "Done soon" {
		t.Fatalf("lists = %v, want incomplete list first", names)
	}

	b.post("/lists/2/todos/1", url.Values{"completed": {"true"}})
	b.post("/lists/2/todos", url.Values{"todo": {"d"}})
	todos := elementsWithAttr(b.get("/lists/2").doc, "li", "data-todo-id")
	if len(todos) != 2 || attr(todos[0], "data-todo-id") != "2" || !hasClass(todos[1], "complete") {
		t.Fatal("expected incomplete todo listed before completed todo")
	}
}

func TestClearAll(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)
	b.post("/lists", url.Values{"list_name": {"One"}})
	b.post("/lists", url.Values{"list_name": {"Two"}})

	resp := b.get("/clear_all")
	if resp.path != "/lists" {
		t.Fatalf("path = %q, want /lists", resp.path)
	}
	if got := flashText(resp.doc); got != "All lists have been deleted." {
		t.Fatalf("flash = %q", got)
	}
	if names := listNames(resp.doc); len(names) != 0 {
		t.Fatalf("lists = %v, want none", names)
	}

	again := b.post("/lists", url.Values{"list_name": {"Fresh"}})
	items := elementsWithAttr(again.doc, "li", "data-list-id")
	if len(items) != 1 || attr(items[0], "data-list-id") != "1" {
		t.Fatal("expected ids to restart at 1 after clear")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)
	b.post("/lists", url.Values{"list_name": {"Private"}})

	other := &http.Client{}
	resp, err := other.Get(b.server.URL + "/lists")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(raw), "Private") {
		t.Fatal("list leaked into another session")
	}
}

func TestLanguageSwitchLocalizesFlash(t *testing.T) {
	t.Parallel()

	b := newTestBrowser(t)
	b.get("/lists?lang=pt-BR")
	resp := b.post("/lists", url.Values{"list_name": {"Mercado"}})
	if got := flashText(resp.doc); got == "" || got == "The list has been created." {
		t.Fatalf("flash = %q, want pt-BR copy", got)
	}
}
