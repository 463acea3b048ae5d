package auth

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	CollegeID   string `json:"collegeId" binding:"required"`
	FullName    string `json:"fullName" binding:"required"`
	Department  string `json:"department"`
	YearOfStudy int    `json:"yearOfStudy"`
	PrimaryRole string `json:"primaryRole"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
