package graph

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/foro-backend/internal/metrics"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type errorBody struct {
	Errors []map[string]string `json:"errors"`
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody{
		Errors: []map[string]string{{"message": msg}},
	})
}

// Handler executes GraphQL requests sent as POST JSON bodies or GET query
// parameters. The caller placed by the auth middleware reaches resolvers
// through the request context.
func Handler(schema graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req request
		if c.Method() == fiber.MethodGet {
			req.Query = c.Query("query")
			req.OperationName = c.Query("operationName")
			if raw := c.Query("variables"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
					return badRequest(c, "variables no es un objeto JSON válido")
				}
			}
		} else if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Cuerpo de la solicitud no válido")
		}
		if strings.TrimSpace(req.Query) == "" {
			return badRequest(c, "Falta la consulta GraphQL")
		}

		ctx := auth.WithCaller(c.UserContext(), auth.FromLocals(c))
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			ctx = sentry.SetHubOnContext(ctx, hub)
		}

		start := time.Now()
		res := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        ctx,
		})
		metrics.RecordGraphQL(rootField(schema, req.Query), time.Since(start), res.HasErrors())

		return c.JSON(res)
	}
}

// rootField names the first top-level field of the request, for metric
// labels. Names the schema does not define collapse to "unknown".
func rootField(schema graphql.Schema, query string) string {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return "unknown"
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok || op.SelectionSet == nil {
			continue
		}
		for _, sel := range op.SelectionSet.Selections {
			field, ok := sel.(*ast.Field)
			if !ok || field.Name == nil {
				continue
			}
			root := schema.QueryType()
			if op.Operation == ast.OperationTypeMutation {
				root = schema.MutationType()
			}
			if root != nil {
				if _, known := root.Fields()[field.Name.Value]; known {
					return field.Name.Value
				}
			}
			return "unknown"
		}
	}
	return "unknown"
}
