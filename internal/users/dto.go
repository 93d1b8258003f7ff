package users

import "github.com/bluething/boostpo/internal/timezone"

type createUserRequest struct {
	FirstName string `json:"firstName" validate:"required,max=500"`
	LastName  string `json:"lastName" validate:"required,max=500"`
	Email     string `json:"email" validate:"required,email,max=500"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
}

// updateUserRequest is a partial patch: nil fields are left untouched.
type updateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=500"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=500"`
	Email     *string `json:"email" validate:"omitempty,email,max=500"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

type userResponse struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	CreatedBy       string `json:"createdBy"`
	UpdatedBy       string `json:"updatedBy"`
	CreatedDatetime string `json:"createdDatetime"`
	UpdatedDatetime string `json:"updatedDatetime"`
}

func toResponse(user User, tz *timezone.Converter) userResponse {
	return userResponse{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		FullName:        user.FullName(),
		Email:           user.Email,
		Phone:           user.Phone,
		CreatedBy:       user.CreatedBy,
		UpdatedBy:       user.UpdatedBy,
		CreatedDatetime: tz.FormatAPI(user.CreatedAt),
		UpdatedDatetime: tz.FormatAPI(user.UpdatedAt),
	}
}
