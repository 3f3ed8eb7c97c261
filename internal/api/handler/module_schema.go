package handler

type createModuleRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// updateModuleRequest carries a partial update: nil pointer means "leave
// the field as it is", which is distinct from an explicit empty string.
type updateModuleRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type messageResponse struct {
	Message string `json:"message"`
}
