package category

import categoryUC "gowhere/internal/usecase/category"

const entityName = "category"

const (
	detailRead   = "Error encountered while reading categories collection."
	detailCreate = "Error encountered while creating category."
	detailUpdate = "Error encountered while updating category."
	detailDelete = "Error encountered while deleting category."
	detailSubcat = "Error encountered while updating sub-types of category."
)

type subcatRequest struct {
	ID    string `json:"_id,omitempty"`
	Value string `json:"value"`
	Name  string `json:"name"`
}

func (s subcatRequest) input() categoryUC.SubcatInput {
	return categoryUC.SubcatInput{ID: s.ID, Value: s.Value, Name: s.Name}
}

func subcatInputs(in []subcatRequest) []categoryUC.SubcatInput {
	if in == nil {
		return nil
	}
	out := make([]categoryUC.SubcatInput, 0, len(in))
	for _, s := range in {
		out = append(out, s.input())
	}
	return out
}

type createRequest struct {
	Value   string          `json:"value"`
	Name    string          `json:"name"`
	Subcats []subcatRequest `json:"subcats"`
}

type updateRequest struct {
	Value   *string         `json:"value"`
	Name    *string         `json:"name"`
	Subcats []subcatRequest `json:"subcats"`
}

type subcatPatchRequest struct {
	Value *string `json:"value"`
	Name  *string `json:"name"`
}

type ref struct {
	ID string `json:"_id"`
}
