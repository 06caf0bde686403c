package server

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"appdeck/internal/auth"
)

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "invalid request body",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}

	fieldErrs := FieldErrors{}
	if strings.TrimSpace(req.Username) == "" {
		fieldErrs.add("username", "this field is required")
	}
	if req.Password == "" {
		fieldErrs.add("password", "this field is required")
	}
	if req.Email != "" && !validEmail(req.Email) {
		fieldErrs.add("email", "enter a valid email address")
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	user, err := s.creds.Create(req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, FieldErrors{
				"username": {"a user with that username already exists"},
			})
			return
		}
		s.internalError(c, "create user", err)
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.internalError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, tokenUserResponse{Token: token.Key, User: user})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "invalid request body",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "username is required",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "password is required",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}

	// Unknown username and wrong password are answered identically so the
	// endpoint cannot be used to enumerate accounts.
	user, err := s.creds.Verify(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{
				Error:     "user not found",
				ErrorCode: ErrorCodeNotFound,
			})
			return
		}
		s.internalError(c, "verify credentials", err)
		return
	}

	token, err := s.tokens.IssueOrReuse(user)
	if err != nil {
		s.internalError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, tokenUserResponse{Token: token.Key, User: user})
}

func (s *Server) logout(c *gin.Context) {
	user := currentUser(c)
	if err := s.tokens.RevokeAll(user); err != nil {
		s.internalError(c, "revoke tokens", err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "successfully logged out"})
}

func (s *Server) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "invalid request body",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}
	if req.OldPassword == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "old password is required",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}
	if req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "new password is required",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}

	user := currentUser(c)
	if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:     "old password is incorrect",
			ErrorCode: ErrorCodeValidation,
		})
		return
	}

	if err := s.creds.SetPassword(user, req.NewPassword); err != nil {
		s.internalError(c, "set password", err)
		return
	}

	// Every outstanding token dies with the old password; exactly one fresh
	// token comes back so the caller stays logged in.
	if err := s.tokens.RevokeAll(user); err != nil {
		s.internalError(c, "revoke tokens", err)
		return
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		s.internalError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "password successfully changed",
		"new_token": token.Key,
	})
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.log.WithError(err).Errorf("%s failed", op)
	c.JSON(http.StatusInternalServerError, errorResponse{
		Error:     "internal server error",
		ErrorCode: ErrorCodeInternal,
	})
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
