package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"animal-sos/internal/domain/users"
	"animal-sos/internal/platform/logger"
	authport "animal-sos/internal/ports/auth"
	"animal-sos/internal/session"

	"github.com/google/uuid"
)

const (
	DefaultCookieName = "connect.sid"
	MinPasswordLength = 6
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidRole        = errors.New("role not allowed on registration")
)

type Options struct {
	Logger logger.Logger
	// NewSessionID genera el id de sesión; por defecto un UUID v4.
	NewSessionID func() string
}

// Service registra usuarios, abre/cierra sesiones y resuelve claims para el middleware.
type Service struct {
	users    *users.Service
	sessions session.Store
	log      logger.Logger
	newID    func() string
}

var _ authport.SessionResolver = (*Service)(nil)

func NewService(us *users.Service, sessions session.Store, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	newID := opts.NewSessionID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Service{
		users:    us,
		sessions: sessions,
		log:      log.With(map[string]any{"component": "auth"}),
		newID:    newID,
	}
}

// sessionData sigue el layout de passport ({"passport":{"user":<id>}}) para que las
// sesiones guardadas en la tabla "session" sigan siendo legibles.
type sessionData struct {
	Passport struct {
		User int `json:"user"`
	} `json:"passport"`
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
	Name     string
	Role     users.Role
	Phone    *string
	Address  *string
}

// Register crea el usuario y abre su sesión. Admin no se puede auto-registrar.
func (s *Service) Register(ctx context.Context, in RegisterInput) (users.User, string, error) {
	if len(in.Password) < MinPasswordLength {
		return users.User{}, "", ErrWeakPassword
	}
	if in.Role == users.RoleAdmin {
		return users.User{}, "", ErrInvalidRole
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return users.User{}, "", err
	}

	u, err := s.users.Create(ctx, users.CreateInput{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		Phone:        in.Phone,
		Address:      in.Address,
	})
	if err != nil {
		return users.User{}, "", err
	}

	sid, err := s.startSession(ctx, u.ID)
	if err != nil {
		return users.User{}, "", err
	}
	s.log.Info("user registered", map[string]any{"user_id": u.ID, "role": string(u.Role)})
	return u, sid, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (users.User, string, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, users.ErrNotFound) {
		return users.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return users.User{}, "", err
	}

	ok, err := ComparePassword(password, u.Password)
	if err != nil {
		// hash corrupto: lo tratamos como credenciales inválidas pero queda en el log
		s.log.Warn("stored password hash unreadable", map[string]any{"user_id": u.ID, "error": err.Error()})
		return users.User{}, "", ErrInvalidCredentials
	}
	if !ok {
		return users.User{}, "", ErrInvalidCredentials
	}

	sid, err := s.startSession(ctx, u.ID)
	if err != nil {
		return users.User{}, "", err
	}
	return u, sid, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sid); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// CurrentUser devuelve el usuario de las claims ya resueltas.
func (s *Service) CurrentUser(ctx context.Context, userID int) (users.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) startSession(ctx context.Context, userID int) (string, error) {
	var data sessionData
	data.Passport.User = userID
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	sid := s.newID()
	if err := s.sessions.Set(ctx, sid, raw); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

func (s *Service) ResolveSession(ctx context.Context, sid string) (authport.Claims, bool, error) {
	raw, found, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return authport.Claims{}, false, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return authport.Claims{}, false, nil
	}

	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil || data.Passport.User <= 0 {
		// sesión anónima o ilegible
		return authport.Claims{}, false, nil
	}
	return s.ResolveUser(ctx, data.Passport.User)
}

func (s *Service) ResolveUser(ctx context.Context, userID int) (authport.Claims, bool, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, users.ErrNotFound) {
		return authport.Claims{}, false, nil
	}
	if err != nil {
		return authport.Claims{}, false, err
	}
	return authport.Claims{UserID: u.ID, Username: u.Username, Role: string(u.Role)}, true, nil
}
