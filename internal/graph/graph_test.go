package graph

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	authorService "bookstore-graphql/internal/domains/author/service"
	bookService "bookstore-graphql/internal/domains/book/service"
	reviewService "bookstore-graphql/internal/domains/review/service"
	"bookstore-graphql/internal/infrastructure/metrics"
	"bookstore-graphql/internal/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

func (r gqlResponse) decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, out))
}

func (r gqlResponse) code(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.Errors, "expected a GraphQL error")
	code, _ := r.Errors[0].Extensions["code"].(string)
	return code
}

type testServer struct {
	router  *gin.Engine
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	m := metrics.New()
	root := NewResolver(
		authorService.NewService(store.Authors(), store.Metadata()),
		bookService.NewService(store.Books(), store.Authors()),
		reviewService.NewService(store.Reviews(), store.Books()),
		m,
	)
	schema, err := NewSchema(root, Options{MaxDepth: 10, MaxParallelism: 4})
	require.NoError(t, err)

	h := NewHandler(schema)
	router := gin.New()
	router.POST("/graphql", h.Serve)
	router.GET("/graphql", h.Serve)
	return &testServer{router: router, metrics: m}
}

func (s *testServer) post(t *testing.T, query string, vars map[string]interface{}) gqlResponse {
	t.Helper()
	body, err := json.Marshal(Request{Query: query, Variables: vars})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *testServer) get(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(query), nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

const (
	addAuthorMutation = `mutation($name: String!, $bio: String, $born: String) {
		addAuthor(name: $name, biography: $bio, born_date: $born) { id name biography born_date }
	}`
	addBookMutation = `mutation($title: String!, $published: String, $author: ID!) {
		addBook(title: $title, published_date: $published, author_id: $author) { id title published_date }
	}`
	addReviewMutation = `mutation($book: ID!, $user: String!, $rating: Int!, $review: String!) {
		addReview(book_id: $book, user: $user, rating: $rating, review: $review) { id book_id user rating review review_date }
	}`
)

func TestBookstoreFlow(t *testing.T) {
	s := newTestServer(t)

	t.Run("add author", func(t *testing.T) {
		resp := s.post(t, addAuthorMutation, map[string]interface{}{
			"name": "Ursula K. Le Guin", "bio": "Novelist", "born": "1929-10-21",
		})
		require.Empty(t, resp.Errors)

		var out struct {
			AddAuthor struct {
				ID        string  `json:"id"`
				Name      string  `json:"name"`
				Biography *string `json:"biography"`
				BornDate  *string `json:"born_date"`
			} `json:"addAuthor"`
		}
		resp.decode(t, &out)
		assert.Equal(t, "1", out.AddAuthor.ID)
		assert.Equal(t, "Ursula K. Le Guin", out.AddAuthor.Name)
		require.NotNil(t, out.AddAuthor.BornDate)
		assert.Equal(t, "1929-10-21", *out.AddAuthor.BornDate)
	})

	t.Run("duplicate author conflicts", func(t *testing.T) {
		resp := s.post(t, addAuthorMutation, map[string]interface{}{
			"name": "Ursula K. Le Guin", "born": "1929-10-21",
		})
		assert.Equal(t, "CONFLICT", resp.code(t))

		var out struct {
			AddAuthor *struct{} `json:"addAuthor"`
		}
		resp.decode(t, &out)
		assert.Nil(t, out.AddAuthor)
	})

	t.Run("blank author name is invalid", func(t *testing.T) {
		resp := s.post(t, addAuthorMutation, map[string]interface{}{"name": "   "})
		assert.Equal(t, "INVALID_ARGUMENT", resp.code(t))
	})

	t.Run("add book", func(t *testing.T) {
		resp := s.post(t, addBookMutation, map[string]interface{}{
			"title": "The Dispossessed", "published": "1974-05-01", "author": "1",
		})
		require.Empty(t, resp.Errors)

		var out struct {
			AddBook struct {
				ID            string `json:"id"`
				Title         string `json:"title"`
				PublishedDate string `json:"published_date"`
			} `json:"addBook"`
		}
		resp.decode(t, &out)
		assert.Equal(t, "1", out.AddBook.ID)
		assert.Equal(t, "1974-05-01", out.AddBook.PublishedDate)
	})

	t.Run("book for unknown author is not found", func(t *testing.T) {
		resp := s.post(t, addBookMutation, map[string]interface{}{
			"title": "Orphan", "author": "99",
		})
		assert.Equal(t, "NOT_FOUND", resp.code(t))
	})

	t.Run("add reviews", func(t *testing.T) {
		for _, rating := range []int{5, 4, 4} {
			resp := s.post(t, addReviewMutation, map[string]interface{}{
				"book": "1", "user": "ana", "rating": rating, "review": "Ambiguous utopia",
			})
			require.Empty(t, resp.Errors)

			var out struct {
				AddReview struct {
					BookID     string `json:"book_id"`
					Rating     int    `json:"rating"`
					ReviewDate string `json:"review_date"`
				} `json:"addReview"`
			}
			resp.decode(t, &out)
			assert.Equal(t, "1", out.AddReview.BookID)
			assert.Equal(t, rating, out.AddReview.Rating)
			assert.NotEmpty(t, out.AddReview.ReviewDate)
		}
	})

	t.Run("review without rating", func(t *testing.T) {
		resp := s.post(t, addReviewMutation, map[string]interface{}{
			"book": "1", "user": "ana", "rating": 0, "review": "Unrated",
		})
		assert.Equal(t, "INVALID_ARGUMENT", resp.code(t))
	})

	t.Run("review for unknown book", func(t *testing.T) {
		resp := s.post(t, addReviewMutation, map[string]interface{}{
			"book": "42", "user": "ana", "rating": 3, "review": "Lost",
		})
		assert.Equal(t, "NOT_FOUND", resp.code(t))
	})

	t.Run("book stitches author and reviews", func(t *testing.T) {
		resp := s.post(t, `{
			book(id: "1") {
				title
				author { name }
				reviews { rating }
				averageRating
			}
		}`, nil)
		require.Empty(t, resp.Errors)

		var out struct {
			Book struct {
				Title  string `json:"title"`
				Author struct {
					Name string `json:"name"`
				} `json:"author"`
				Reviews []struct {
					Rating int `json:"rating"`
				} `json:"reviews"`
				AverageRating *float64 `json:"averageRating"`
			} `json:"book"`
		}
		resp.decode(t, &out)
		assert.Equal(t, "Ursula K. Le Guin", out.Book.Author.Name)
		assert.Len(t, out.Book.Reviews, 3)
		require.NotNil(t, out.Book.AverageRating)
		assert.InDelta(t, 4.33, *out.Book.AverageRating, 0.0001)
	})

	t.Run("author stitches books and reviews", func(t *testing.T) {
		resp := s.post(t, `{ author(id: "1") { books { title } reviews { user } metadata { website } } }`, nil)
		require.Empty(t, resp.Errors)

		var out struct {
			Author struct {
				Books    []struct{ Title string } `json:"books"`
				Reviews  []struct{ User string }  `json:"reviews"`
				Metadata *struct{}                `json:"metadata"`
			} `json:"author"`
		}
		resp.decode(t, &out)
		require.Len(t, out.Author.Books, 1)
		assert.Equal(t, "The Dispossessed", out.Author.Books[0].Title)
		assert.Len(t, out.Author.Reviews, 3)
		assert.Nil(t, out.Author.Metadata)
	})

	t.Run("counts and filters", func(t *testing.T) {
		resp := s.post(t, `{
			booksCount
			authorsCount
			byTitle: books(filter: { title: "DISPOS" }) { id }
			byDate: books(filter: { published_date: "1974-05-01" }) { id }
			byAuthor: books(filter: { author_id: "1" }) { id }
			none: books(filter: { title: "earthsea" }) { id }
			named: authors(filter: { name: "guin" }) { id }
			born: authors(filter: { born_date: "1929-10-21" }) { books { id } }
			all: getallauthors { name }
		}`, nil)
		require.Empty(t, resp.Errors)

		var out struct {
			BooksCount   int               `json:"booksCount"`
			AuthorsCount int               `json:"authorsCount"`
			ByTitle      []json.RawMessage `json:"byTitle"`
			ByDate       []json.RawMessage `json:"byDate"`
			ByAuthor     []json.RawMessage `json:"byAuthor"`
			None         []json.RawMessage `json:"none"`
			Named        []json.RawMessage `json:"named"`
			Born         []struct {
				Books []json.RawMessage `json:"books"`
			} `json:"born"`
			All []json.RawMessage `json:"all"`
		}
		resp.decode(t, &out)
		assert.Equal(t, 1, out.BooksCount)
		assert.Equal(t, 1, out.AuthorsCount)
		assert.Len(t, out.ByTitle, 1)
		assert.Len(t, out.ByDate, 1)
		assert.Len(t, out.ByAuthor, 1)
		assert.Empty(t, out.None)
		assert.Len(t, out.Named, 1)
		require.Len(t, out.Born, 1)
		assert.Len(t, out.Born[0].Books, 1)
		assert.Len(t, out.All, 1)
	})

	t.Run("set author metadata", func(t *testing.T) {
		resp := s.post(t, `mutation {
			setAuthorMetadata(author_id: "1", awards: ["Hugo", "Nebula"], website: "https://ursulakleguin.com", twitter: "@ursula") {
				author_id awards website social_media { twitter instagram }
			}
		}`, nil)
		require.Empty(t, resp.Errors)

		var out struct {
			SetAuthorMetadata struct {
				AuthorID    string   `json:"author_id"`
				Awards      []string `json:"awards"`
				Website     *string  `json:"website"`
				SocialMedia struct {
					Twitter   *string `json:"twitter"`
					Instagram *string `json:"instagram"`
				} `json:"social_media"`
			} `json:"setAuthorMetadata"`
		}
		resp.decode(t, &out)
		assert.Equal(t, "1", out.SetAuthorMetadata.AuthorID)
		assert.Equal(t, []string{"Hugo", "Nebula"}, out.SetAuthorMetadata.Awards)
		require.NotNil(t, out.SetAuthorMetadata.SocialMedia.Twitter)
		assert.Equal(t, "@ursula", *out.SetAuthorMetadata.SocialMedia.Twitter)
		assert.Nil(t, out.SetAuthorMetadata.SocialMedia.Instagram)

		resp = s.post(t, `{ author(id: "1") { metadata { awards } } }`, nil)
		require.Empty(t, resp.Errors)
		var read struct {
			Author struct {
				Metadata struct {
					Awards []string `json:"awards"`
				} `json:"metadata"`
			} `json:"author"`
		}
		resp.decode(t, &read)
		assert.Equal(t, []string{"Hugo", "Nebula"}, read.Author.Metadata.Awards)
	})

	t.Run("update book", func(t *testing.T) {
		resp := s.post(t, `mutation { updateBook(id: "1", description: "An ambiguous utopia") { title description } }`, nil)
		require.Empty(t, resp.Errors)

		var out struct {
			UpdateBook struct {
				Title       string  `json:"title"`
				Description *string `json:"description"`
			} `json:"updateBook"`
		}
		resp.decode(t, &out)
		assert.Equal(t, "The Dispossessed", out.UpdateBook.Title)
		require.NotNil(t, out.UpdateBook.Description)
		assert.Equal(t, "An ambiguous utopia", *out.UpdateBook.Description)

		resp = s.post(t, `mutation { updateBook(id: "1", author_id: "77") { id } }`, nil)
		assert.Equal(t, "NOT_FOUND", resp.code(t))
	})

	t.Run("update author", func(t *testing.T) {
		resp := s.post(t, `mutation { updateAuthor(id: "1", biography: "Writer of Earthsea") { name biography } }`, nil)
		require.Empty(t, resp.Errors)

		var out struct {
			UpdateAuthor struct {
				Name      string `json:"name"`
				Biography string `json:"biography"`
			} `json:"updateAuthor"`
		}
		resp.decode(t, &out)
		assert.Equal(t, "Ursula K. Le Guin", out.UpdateAuthor.Name)
		assert.Equal(t, "Writer of Earthsea", out.UpdateAuthor.Biography)
	})

	t.Run("delete book", func(t *testing.T) {
		resp := s.post(t, `mutation { deleteBook(id: "1") }`, nil)
		require.Empty(t, resp.Errors)

		var out struct {
			DeleteBook string `json:"deleteBook"`
		}
		resp.decode(t, &out)
		assert.Equal(t, "Book deleted successfully", out.DeleteBook)

		resp = s.post(t, `mutation { deleteBook(id: "1") }`, nil)
		assert.Equal(t, "NOT_FOUND", resp.code(t))
	})

	t.Run("deleting an author leaves books dangling", func(t *testing.T) {
		resp := s.post(t, addBookMutation, map[string]interface{}{"title": "Lathe of Heaven", "author": "1"})
		require.Empty(t, resp.Errors)

		resp = s.post(t, `mutation { deleteAuthor(id: "1") }`, nil)
		require.Empty(t, resp.Errors)
		var del struct {
			DeleteAuthor string `json:"deleteAuthor"`
		}
		resp.decode(t, &del)
		assert.Equal(t, "Author deleted successfully", del.DeleteAuthor)

		resp = s.post(t, `{ book(id: "2") { title author { name } } }`, nil)
		require.Empty(t, resp.Errors)
		var out struct {
			Book struct {
				Title  string    `json:"title"`
				Author *struct{} `json:"author"`
			} `json:"book"`
		}
		resp.decode(t, &out)
		assert.Equal(t, "Lathe of Heaven", out.Book.Title)
		assert.Nil(t, out.Book.Author)
	})

	t.Run("resolver metrics are recorded", func(t *testing.T) {
		assert.Equal(t, float64(1), testutil.ToFloat64(s.metrics.ResolverCalls.WithLabelValues("Mutation.addAuthor", "CONFLICT")))
		assert.Equal(t, float64(1), testutil.ToFloat64(s.metrics.ResolverCalls.WithLabelValues("Mutation.addBook", "NOT_FOUND")))
	})
}

func TestLookupErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"empty book id", `{ book(id: "") { id } }`, "INVALID_ARGUMENT"},
		{"malformed book id", `{ book(id: "abc") { id } }`, "INVALID_ARGUMENT"},
		{"missing book", `{ book(id: "5") { id } }`, "NOT_FOUND"},
		{"empty author id", `{ author(id: " ") { id } }`, "INVALID_ARGUMENT"},
		{"missing author", `{ author(id: "5") { id } }`, "NOT_FOUND"},
		{"bad date filter", `{ books(filter: { published_date: "May 1974" }) { id } }`, "INVALID_ARGUMENT"},
		{"delete missing author", `mutation { deleteAuthor(id: "5") }`, "NOT_FOUND"},
		{"update missing author", `mutation { updateAuthor(id: "5", name: "X") { id } }`, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.post(t, tt.query, nil)
			assert.Equal(t, tt.code, resp.code(t))
		})
	}
}

func TestPaging(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 12; i++ {
		resp := s.post(t, addAuthorMutation, map[string]interface{}{"name": "Author " + string(rune('A'+i))})
		require.Empty(t, resp.Errors)
	}

	var out struct {
		First  []struct{ ID string } `json:"first"`
		Second []struct{ ID string } `json:"second"`
		Huge   []struct{ ID string } `json:"huge"`
	}
	resp := s.post(t, `{
		first: authors { id }
		second: authors(limit: 5, offset: 10) { id }
		huge: authors(limit: 1000, offset: -3) { id }
	}`, nil)
	require.Empty(t, resp.Errors)
	resp.decode(t, &out)

	assert.Len(t, out.First, 10)
	assert.Equal(t, "1", out.First[0].ID)
	require.Len(t, out.Second, 2)
	assert.Equal(t, "11", out.Second[0].ID)
	assert.Len(t, out.Huge, 12)
}

func TestClampCount(t *testing.T) {
	assert.Equal(t, int32(0), clampCount(0))
	assert.Equal(t, int32(42), clampCount(42))
	assert.Equal(t, int32(math.MaxInt32), clampCount(math.MaxInt32))
	assert.Equal(t, int32(math.MaxInt32), clampCount(math.MaxInt32+1))
	assert.Equal(t, int32(math.MaxInt32), clampCount(math.MaxInt64))
}

func TestHandler(t *testing.T) {
	s := newTestServer(t)

	t.Run("GET query", func(t *testing.T) {
		w := s.get(t, `{ booksCount }`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"booksCount":0}}`, w.Body.String())
	})

	t.Run("GET mutation rejected", func(t *testing.T) {
		w := s.get(t, `mutation { deleteBook(id: "1") }`)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("missing query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{"query":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("schema validation error", func(t *testing.T) {
		resp := s.post(t, `{ books { isbn } }`, nil)
		require.NotEmpty(t, resp.Errors)
		assert.Contains(t, resp.Errors[0].Message, "isbn")
	})
}
