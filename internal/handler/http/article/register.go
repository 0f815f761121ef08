// Package article exposes the article use cases over HTTP.
package article

import (
	"net/http"

	artUC "gowhere/internal/usecase/article"
)

// Register registers all article and comment routes with the given mux.
func Register(mux *http.ServeMux, svc *artUC.Service) {
	mux.Handle("GET /articles", ListHandler{svc})
	mux.Handle("GET /articles/{id}", GetHandler{svc})

	mux.Handle("POST /articles", CreateHandler{svc})
	mux.Handle("PATCH /articles/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /articles/{id}", DeleteHandler{svc})

	mux.Handle("POST /articles/{id}/comments", AddCommentHandler{svc})
	mux.Handle("DELETE /articles/{id}/comments/{commentId}", RemoveCommentHandler{svc})
}
