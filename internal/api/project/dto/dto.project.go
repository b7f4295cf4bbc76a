package projectdto

// ProjectCreateInput đầu vào tạo dự án.
type ProjectCreateInput struct {
	Title       string   `json:"title" validate:"required,not_blank,min=3,max=120,no_xss"`
	Description string   `json:"description" validate:"max=1000,no_xss"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
}

// ProjectUpdateInput đầu vào cập nhật dự án; field nil là không đổi.
type ProjectUpdateInput struct {
	Title       *string  `json:"title" validate:"omitempty,not_blank,min=3,max=120,no_xss"`
	Description *string  `json:"description" validate:"omitempty,max=1000,no_xss"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
}

// IsEmpty trả về true khi không có field nào được gửi lên
func (in *ProjectUpdateInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Tags == nil
}
