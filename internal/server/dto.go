package server

import "time"

type registerRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50,username"`
	Email     string `json:"email" binding:"required,email,max=100"`
	Password  string `json:"password" binding:"required,min=8,max=100,strongpassword"`
	FirstName string `json:"firstName" binding:"required,min=1,max=50,personname"`
	LastName  string `json:"lastName" binding:"required,min=1,max=50,personname"`
}

var registerMessages = bindMessages{
	"username": {
		"required": "Username is required",
		"min":      "Username must be between 3 and 50 characters",
		"max":      "Username must be between 3 and 50 characters",
		"username": "Username can only contain letters, numbers, dots, underscores, and hyphens",
	},
	"email": {
		"required": "Email is required",
		"email":    "Please provide a valid email address",
		"max":      "Email cannot exceed 100 characters",
	},
	"password": {
		"required":       "Password is required",
		"min":            "Password must be between 8 and 100 characters",
		"max":            "Password must be between 8 and 100 characters",
		"strongpassword": "Password must contain at least one lowercase letter, one uppercase letter, one digit, and one special character",
	},
	"firstName": {
		"required":   "First name is required",
		"min":        "First name must be between 1 and 50 characters",
		"max":        "First name must be between 1 and 50 characters",
		"personname": "First name can only contain letters and spaces",
	},
	"lastName": {
		"required":   "Last name is required",
		"min":        "Last name must be between 1 and 50 characters",
		"max":        "Last name must be between 1 and 50 characters",
		"personname": "Last name can only contain letters and spaces",
	},
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=100"`
}

var loginMessages = bindMessages{
	"email": {
		"required": "Email is required",
		"email":    "Please provide a valid email address",
	},
	"password": {
		"required": "Password is required",
		"max":      "Password cannot exceed 100 characters",
	},
}

type profileUpdateRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50,username"`
	Email     string `json:"email" binding:"required,email,max=100"`
	FirstName string `json:"firstName" binding:"required,min=1,max=50,personname"`
	LastName  string `json:"lastName" binding:"required,min=1,max=50,personname"`
}

type pollCreateRequest struct {
	Title       string     `json:"title" binding:"required,min=5,max=200"`
	Description string     `json:"description" binding:"omitempty,max=1000"`
	Options     []string   `json:"options" binding:"required,min=2,max=10,unique,dive,required,min=1,max=100"`
	EndsAt      *time.Time `json:"endsAt" binding:"omitempty,futuretime"`
}

var pollCreateMessages = bindMessages{
	"title": {
		"required": "Poll title is required",
		"min":      "Poll title must be between 5 and 200 characters",
		"max":      "Poll title must be between 5 and 200 characters",
	},
	"description": {
		"max": "Poll description cannot exceed 1000 characters",
	},
	"options": {
		"required": "Poll options are required",
		"min":      "Poll must have between 2 and 10 options",
		"max":      "Poll must have between 2 and 10 options",
		"unique":   "Poll options must be unique",
	},
	// Keys for individual option entries ("options[3]").
	"options[]": {
		"required": "Poll option text is required",
		"min":      "Each poll option must be between 1 and 100 characters",
		"max":      "Each poll option must be between 1 and 100 characters",
	},
	"endsAt": {
		"futuretime": "Poll end date must be in the future",
	},
}

type pollUpdateRequest struct {
	Title       string     `json:"title" binding:"required,min=5,max=200"`
	Description string     `json:"description" binding:"omitempty,max=1000"`
	EndsAt      *time.Time `json:"endsAt" binding:"omitempty,futuretime"`
}

var pollUpdateMessages = bindMessages{
	"title":       pollCreateMessages["title"],
	"description": pollCreateMessages["description"],
	"endsAt":      pollCreateMessages["endsAt"],
}

// OptionID is signed so a negative id is reported as a validation
// failure instead of a JSON decoding error.
type voteRequest struct {
	OptionID int64 `json:"optionId" binding:"required,gt=0"`
}

var voteMessages = bindMessages{
	"optionId": {
		"required": "Option ID is required",
		"gt":       "Option ID must be a positive number",
	},
}
