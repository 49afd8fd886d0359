package dto

// CreateReviewRequest 创建评价,评价人固定为当前登录用户
type CreateReviewRequest struct {
	Book    uint   `json:"book" binding:"required" example:"1"`
	Rating  int    `json:"rating" example:"5"`
	Comment string `json:"comment" example:"值得一读"`
}

// UpdateReviewRequest 整体更新评价(图书不可修改)
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required" example:"4"`
	Comment string `json:"comment"`
}

// PatchReviewRequest 部分更新评价
type PatchReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}
