package graph

import (
	"encoding/json"
	"net/http"

	"bookstore-graphql/internal/shared/middleware"
	"bookstore-graphql/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Request is the standard GraphQL-over-HTTP body.
type Request struct {
	Query         string                 `json:"query" form:"query"`
	OperationName string                 `json:"operationName" form:"operationName"`
	Variables     map[string]interface{} `json:"variables" form:"-"`
}

// Handler serves the /graphql endpoint over POST and GET.
type Handler struct {
	schema   *graphql.Schema
	contract *ast.Schema
}

func NewHandler(schema *graphql.Schema) *Handler {
	contract, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: SchemaSDL})
	if err != nil {
		log.Warn().Err(err).Msg("GraphQL schema rejected by gqlparser; GET mutations unchecked")
	}
	return &Handler{schema: schema, contract: contract}
}

// Serve executes a query given as JSON body (POST) or query string (GET).
func (h *Handler) Serve(c *gin.Context) {
	var req Request

	switch c.Request.Method {
	case http.MethodGet:
		if err := c.ShouldBindQuery(&req); err != nil {
			response.BadRequest(c, "invalid query parameters")
			return
		}
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				response.BadRequest(c, "variables must be a JSON object")
				return
			}
		}
		if h.isMutation(req) {
			response.MethodNotAllowed(c, "mutations require POST")
			return
		}
	default:
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "request body must be a JSON object")
			return
		}
	}

	if req.Query == "" {
		response.BadRequest(c, "query is required")
		return
	}

	c.Set(middleware.OperationKey, operationLabel(req.OperationName))

	resp := h.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	c.Set(middleware.ErrorCountKey, len(resp.Errors))
	c.JSON(http.StatusOK, resp)
}

// isMutation reports whether the selected operation is a mutation. Documents
// that fail to parse are left for the engine to report.
func (h *Handler) isMutation(req Request) bool {
	if h.contract == nil || req.Query == "" {
		return false
	}
	doc, errs := gqlparser.LoadQuery(h.contract, req.Query)
	if len(errs) > 0 || doc == nil {
		return false
	}
	op := doc.Operations.ForName(req.OperationName)
	return op != nil && op.Operation == ast.Mutation
}

func operationLabel(name string) string {
	if name == "" {
		return "anonymous"
	}
	return name
}
