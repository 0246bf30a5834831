package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"

	"incidentlens.io/lens/internal/api/openapi"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
)

// MustOpenAPIValidator creates an OpenAPI request validator middleware and panics on setup failure.
func MustOpenAPIValidator(basePath string) gin.HandlerFunc {
	mw, err := NewOpenAPIValidator(basePath)
	if err != nil {
		panic(fmt.Sprintf("init openapi validator: %v", err))
	}
	return mw
}

// NewOpenAPIValidator validates requests against the embedded OpenAPI
// contract. Paths the contract does not describe pass through. A request
// that breaks the contract is rejected with 400 INVALID_QUERY before any
// handler runs.
func NewOpenAPIValidator(basePath string) (gin.HandlerFunc, error) {
	doc, err := openapi.Load()
	if err != nil {
		return nil, err
	}
	// Paths are matched after stripping basePath, not through servers.
	doc.Servers = nil

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("create openapi router: %w", err)
	}

	basePath = normalizeBasePath(basePath)
	options := &openapi3filter.Options{
		MultiError:         false,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(c *gin.Context) {
		origPath := c.Request.URL.Path
		origRawPath := c.Request.URL.RawPath

		route, pathParams, routeErr := findRouteWithFallback(router, c.Request, basePath)
		c.Request.URL.Path = origPath
		c.Request.URL.RawPath = origRawPath
		if routeErr != nil {
			// Route resolution mismatch should not break non-OpenAPI paths.
			if isPathNotFoundError(routeErr) || errors.Is(routeErr, routers.ErrMethodNotAllowed) {
				c.Next()
				return
			}
			_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidQuery, routeErr.Error()))
			c.Abort()
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		}
		if err := openapi3filter.ValidateRequest(c.Request.Context(), input); err != nil {
			_ = c.Error(requestValidationError(err))
			c.Abort()
			return
		}

		c.Next()
	}, nil
}

// requestValidationError maps a kin-openapi failure onto INVALID_QUERY,
// naming the offending parameter when there is one.
func requestValidationError(err error) *apperrors.AppError {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		reason := reqErr.Reason
		var schemaErr *openapi3.SchemaError
		if errors.As(reqErr.Err, &schemaErr) {
			reason = schemaErr.Reason
		} else if reason == "" && reqErr.Err != nil {
			reason = reqErr.Err.Error()
		}
		switch {
		case reqErr.Parameter != nil:
			return apperrors.ErrInvalidQueryf(reqErr.Parameter.Name, reason)
		case reqErr.RequestBody != nil:
			field := "body"
			if schemaErr != nil && len(schemaErr.JSONPointer()) > 0 {
				field = strings.Join(schemaErr.JSONPointer(), ".")
			}
			return apperrors.ErrInvalidQueryf(field, reason)
		}
	}
	return apperrors.Wrap(err, apperrors.CodeInvalidQuery, "request does not conform to the API contract", http.StatusBadRequest)
}

func normalizeBasePath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return ""
	}
	return "/" + strings.Trim(basePath, "/")
}

func normalizeValidationPath(basePath, path string) string {
	if basePath == "" {
		if path == "" {
			return "/"
		}
		return path
	}
	if path == basePath {
		return "/"
	}
	if strings.HasPrefix(path, basePath+"/") {
		return "/" + strings.TrimPrefix(path, basePath+"/")
	}
	return path
}

func findRouteWithFallback(
	router routers.Router,
	req *http.Request,
	basePath string,
) (*routers.Route, map[string]string, error) {
	origPath := req.URL.Path
	origRawPath := req.URL.RawPath

	candidates := [][2]string{{origPath, origRawPath}}
	normalizedPath := normalizeValidationPath(basePath, origPath)
	normalizedRawPath := origRawPath
	if origRawPath != "" {
		normalizedRawPath = normalizeValidationPath(basePath, origRawPath)
	}
	if normalizedPath != origPath || normalizedRawPath != origRawPath {
		candidates = append(candidates, [2]string{normalizedPath, normalizedRawPath})
	}

	var lastErr error
	for _, candidate := range candidates {
		req.URL.Path = candidate[0]
		req.URL.RawPath = candidate[1]

		route, pathParams, err := router.FindRoute(req)
		if err == nil {
			return route, pathParams, nil
		}
		if !isPathNotFoundError(err) {
			return nil, nil, err
		}
		lastErr = err
	}

	req.URL.Path = origPath
	req.URL.RawPath = origRawPath
	return nil, nil, lastErr
}

func isPathNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, routers.ErrPathNotFound) {
		return true
	}
	if strings.Contains(err.Error(), routers.ErrPathNotFound.Error()) {
		return true
	}
	var routeErr *routers.RouteError
	if errors.As(err, &routeErr) && strings.Contains(routeErr.Reason, routers.ErrPathNotFound.Error()) {
		return true
	}
	return false
}
