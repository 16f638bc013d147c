package providers

import (
	"net/http"
	"sightd/internal/structures"
	"sort"
	"strings"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Delete(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

// RouterProvider groups handlers by URL so one path can serve several methods.
type RouterProvider struct {
	urls     []string
	handlers map[string]map[string]http.Handler
}

func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	byMethod, ok := rp.handlers[url]
	if !ok {
		byMethod = make(map[string]http.Handler)
		rp.handlers[url] = byMethod
		rp.urls = append(rp.urls, url)
	}
	byMethod[method] = handler
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) Delete(url string, handler http.Handler) {
	rp.add(http.MethodDelete, url, handler)
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	routes := make([]structures.Route, 0, len(rp.urls))
	for _, url := range rp.urls {
		routes = append(routes, structures.Route{
			Url:     url,
			Handler: methodsHandler(rp.handlers[url]),
		})
	}
	return routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{handlers: make(map[string]map[string]http.Handler)}
}

func methodsHandler(handlers map[string]http.Handler) http.Handler {
	allowed := make([]string, 0, len(handlers))
	for m := range handlers {
		allowed = append(allowed, m)
	}
	sort.Strings(allowed)
	allow := strings.Join(allowed, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.Method]
		if !ok {
			w.Header().Set("Allow", allow)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
