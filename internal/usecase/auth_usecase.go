package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-api/internal/converter"
	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/delivery/http/middleware"
	"clinic-api/internal/domain/entity"
	"clinic-api/internal/domain/repository"
	"clinic-api/internal/service"
	"clinic-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost is the adaptive hash cost applied at account creation.
const bcryptCost = 12

var (
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error)
	Logout(ctx context.Context, identity *middleware.Identity) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	patientRepo  repository.PatientRepository
	counterRepo  repository.CounterRepository
	jwtService   *jwt.JWTService
	sessionStore *service.SessionStore
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	patientRepo repository.PatientRepository,
	counterRepo repository.CounterRepository,
	jwtService *jwt.JWTService,
	sessionStore *service.SessionStore,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		patientRepo:  patientRepo,
		counterRepo:  counterRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		auditService: auditService,
	}
}

// Register self-registers a patient: one transaction creates the User
// and the linked Patient profile, so a duplicate email leaves neither
// behind. Returns the user summary and a fresh session token.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to check existing email: %+v", err)
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailAlreadyExists
	}

	role, err := u.roleRepo.FindByName(u.db.WithContext(ctx), entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient role: %+v", err)
		return nil, "", err
	}
	if role == nil {
		return nil, "", errors.New("patient role is not provisioned")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, "", err
	}

	user := &entity.User{
		RoleID:   role.ID,
		Name:     req.Name,
		Email:    email,
		Password: string(hashedPassword),
		Mobile:   req.Mobile,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, "", ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, "", err
	}

	seq, err := u.counterRepo.Next(tx, entity.PatientSequence)
	if err != nil {
		u.log.Warnf("Failed to advance patient sequence: %+v", err)
		return nil, "", err
	}

	address := req.Address
	if address == "" {
		address = entity.DefaultAddress
	}

	patient := &entity.Patient{
		PatientCode:      entity.FormatCode("PAT", seq),
		Name:             req.Name,
		Age:              req.Age,
		Gender:           req.Gender,
		Mobile:           req.Mobile,
		Address:          address,
		RegistrationDate: time.Now().Truncate(24 * time.Hour),
		UserID:           &user.ID,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, "", err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, "", err
	}

	token, err := u.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	u.auditService.Log(u.db.WithContext(ctx), &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"email":        user.Email,
		"patient_code": patient.PatientCode,
	})

	return converter.UserToResponse(user), token, nil
}

// Login verifies credentials and mints a session token. Unknown email
// and wrong password produce the same error so accounts cannot be
// enumerated.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	u.auditService.Log(u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"email": user.Email,
	})

	return converter.UserToResponse(user), token, nil
}

// Logout revokes the caller's session token server-side.
func (u *authUsecase) Logout(ctx context.Context, identity *middleware.Identity) error {
	if err := u.sessionStore.Revoke(ctx, identity.UserID, identity.TokenID); err != nil {
		return err
	}

	u.auditService.Log(u.db.WithContext(ctx), &identity.UserID, entity.AuditActionUserLogout, entity.JSON{
		"email": identity.Email,
	})

	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) startSession(ctx context.Context, user *entity.User) (string, error) {
	token, tokenID, err := u.jwtService.GenerateSessionToken(user.ID, user.Email, user.RoleName(), user.Name)
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return "", err
	}

	if err := u.sessionStore.Store(ctx, user.ID, tokenID, u.jwtService.GetSessionExpiry()); err != nil {
		return "", err
	}

	return token, nil
}
