package category

type CreateCategoryReq struct {
	Nome      string  `json:"nome" validate:"required,max=50"`
	Descricao *string `json:"descricao" validate:"omitempty,max=200"`
}

type UpdateCategoryReq struct {
	Nome      string  `json:"nome" validate:"required,max=50"`
	Descricao *string `json:"descricao" validate:"omitempty,max=200"`
	Ativa     *bool   `json:"ativa" validate:"required"`
}
