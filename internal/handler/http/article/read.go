package article

import (
	"net/http"

	"gowhere/internal/handler/http/respond"
	"gowhere/internal/repository"
	artUC "gowhere/internal/usecase/article"
)

// ListHandler answers GET /articles.
//
// Query parameters, all optional:
//
//	_id | articleId            single article
//	search                     full-text over title, description and sections
//	countryId cityId           location
//	catId subcatId             categories
//	ratingFrom ratingTo        average rating bounds, default 0 and 5
//	sortField sortOrder        createdDate (default), lastModified, title, rating; asc or desc
//	view                       listing (default) or full
type ListHandler struct{ Svc *artUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("_id")
	if id == "" {
		id = q.Get("articleId")
	}

	view := repository.ViewListing
	if repository.View(q.Get("view")) == repository.ViewFull {
		view = repository.ViewFull
	}

	articles, err := h.Svc.List(r.Context(), repository.ArticleFilter{
		ArticleID:  id,
		Search:     q.Get("search"),
		CountryID:  q.Get("countryId"),
		CityID:     q.Get("cityId"),
		CatID:      q.Get("catId"),
		SubcatID:   q.Get("subcatId"),
		RatingFrom: q.Get("ratingFrom"),
		RatingTo:   q.Get("ratingTo"),
		Sort: repository.SortSpec{
			Field: q.Get("sortField"),
			Order: q.Get("sortOrder"),
		},
		View: view,
	})
	if err != nil {
		respond.Error(w, r, err, detailRead)
		return
	}
	respond.List(w, articles)
}

// GetHandler answers GET /articles/{id} with the full view.
type GetHandler struct{ Svc *artUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	article, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, err, detailRead)
		return
	}
	respond.One(w, http.StatusOK, article)
}
