package usecase

import (
	"context"
	"strings"
	"time"

	"notemark/apperr"
	"notemark/dto"
	"notemark/model"
	"notemark/services"
	"notemark/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type UserService struct {
	UsersRepo     UserStore
	NotesRepo     NoteStore
	BookmarksRepo BookmarkStore
	Tokens        TokenIssuer
	// Revoker is optional; without it logout only clears the cookie.
	Revoker TokenRevoker
	Logger  *zap.Logger
	Now     func() time.Time
}

// AuthResult is the outcome of a successful signup or login.
type AuthResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// ClientInfo describes the client a login came from.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

func NewUserService(users UserStore, notes NoteStore, bookmarks BookmarkStore, tokens TokenIssuer, revoker TokenRevoker, logger *zap.Logger) *UserService {
	return &UserService{
		UsersRepo:     users,
		NotesRepo:     notes,
		BookmarksRepo: bookmarks,
		Tokens:        tokens,
		Revoker:       revoker,
		Logger:        logger,
		Now:           now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a user and issues their first token.
func (s *UserService) Signup(ctx context.Context, req dto.SignupRequest) (*AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)

	if result := utils.ValidateStruct(req); !result.IsValid {
		utils.TrackAuthAttempt("failure", "signup")
		return nil, apperr.Validation("Validation failed", result.Errors)
	}

	existing, err := s.UsersRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		utils.TrackAuthAttempt("failure", "signup")
		return nil, apperr.Validation("User already exists", nil)
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	at := s.Now()
	user := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := s.UsersRepo.AddUser(ctx, user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}

	utils.TrackAuthAttempt("success", "signup")
	s.Logger.Info("User registered", zap.String("user_id", user.ID.Hex()))
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Login checks the credentials and issues a token. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req dto.LoginRequest, client ClientInfo) (*AuthResult, error) {
	req.Email = normalizeEmail(req.Email)

	if result := utils.ValidateStruct(req); !result.IsValid {
		utils.TrackAuthAttempt("failure", "login")
		return nil, apperr.Validation("Email and password are required", result.Errors)
	}

	user, err := s.UsersRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !services.ComparePasswords(user.Password, req.Password) {
		utils.TrackAuthAttempt("failure", "login")
		return nil, apperr.InvalidCredentials()
	}

	token, expiresAt, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}

	login := model.LoginInfo{
		At:        s.Now(),
		Device:    utils.DescribeDevice(client.UserAgent),
		IPAddress: client.IPAddress,
	}
	if err := s.UsersRepo.RecordLogin(ctx, user.ID, login); err != nil {
		s.Logger.Warn("Failed to record login", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	} else {
		user.LastLogin = &login
	}

	utils.TrackAuthAttempt("success", "login")
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes token when it is still valid. An absent or invalid token is not an error.
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.revoke(ctx, token)
}

func (s *UserService) Profile(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	return s.UsersRepo.FindUser(ctx, userID)
}

// DeleteAccount removes the user's notes, bookmarks and then the user. The steps are not
// transactional; a failure part way leaves the user in place so the call can be retried.
func (s *UserService) DeleteAccount(ctx context.Context, userID primitive.ObjectID, token string) error {
	notes, err := s.NotesRepo.DeleteUserNotes(ctx, userID)
	if err != nil {
		return err
	}
	bookmarks, err := s.BookmarksRepo.DeleteUserBookmarks(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.UsersRepo.DeleteUserByID(ctx, userID); err != nil {
		return err
	}

	if err := s.revoke(ctx, token); err != nil {
		s.Logger.Warn("Failed to revoke token of deleted account", zap.Error(err))
	}

	s.Logger.Info("Account deleted",
		zap.String("user_id", userID.Hex()),
		zap.Int64("notes", notes),
		zap.Int64("bookmarks", bookmarks))
	return nil
}

func (s *UserService) revoke(ctx context.Context, token string) error {
	if s.Revoker == nil || token == "" {
		return nil
	}
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.Revoker.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
		return apperr.Internal("revoke token", err)
	}
	return nil
}
