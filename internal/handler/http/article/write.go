package article

import (
	"encoding/json"
	"net/http"

	"gowhere/internal/domain/embedded"
	"gowhere/internal/handler/http/respond"
	artUC "gowhere/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	article, err := h.Svc.Create(r.Context(), req.input())
	if err != nil {
		respond.Rejected(w, r, err, entityName, "create", detailCreate)
		return
	}
	respond.One(w, http.StatusCreated, article)
}

type UpdateHandler struct{ Svc *artUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	article, err := h.Svc.Update(r.Context(), req.input(r.PathValue("id")))
	if err != nil {
		respond.Rejected(w, r, err, entityName, "update", detailUpdate)
		return
	}
	respond.One(w, http.StatusOK, article)
}

type DeleteHandler struct{ Svc *artUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.Rejected(w, r, err, entityName, "delete", detailDelete)
		return
	}
	respond.One(w, http.StatusOK, ref{ID: id})
}

type AddCommentHandler struct{ Svc *artUC.Service }

func (h AddCommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	comment, err := h.Svc.AddComment(r.Context(), r.PathValue("id"), artUC.CommentInput{
		Name:    req.Name,
		Email:   req.Email,
		Content: req.Content,
	})
	if err != nil {
		respond.Rejected(w, r, err, entityName, embedded.ModePush.String(), detailComment)
		return
	}
	respond.One(w, http.StatusCreated, comment)
}

type RemoveCommentHandler struct{ Svc *artUC.Service }

func (h RemoveCommentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	commentID := r.PathValue("commentId")
	if err := h.Svc.RemoveComment(r.Context(), r.PathValue("id"), commentID); err != nil {
		respond.Rejected(w, r, err, entityName, embedded.ModePull.String(), detailComment)
		return
	}
	respond.One(w, http.StatusOK, ref{ID: commentID})
}
