package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/domain"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/domain/repository"
	"github.com/jhoicas/gymdesk-api/pkg/jwt"
)

// MinPasswordLength largo mínimo de contraseña al registrarse.
const MinPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y reconfirmación.
type AuthUseCase struct {
	ownerRepo repository.OwnerRepository
	jwtCfg    JWTConfig
	defaultTZ string
}

// NewAuthUseCase construye el caso de uso de auth. defaultTZ se asigna a las cuentas nuevas sin zona.
func NewAuthUseCase(ownerRepo repository.OwnerRepository, jwtCfg JWTConfig, defaultTZ string) *AuthUseCase {
	return &AuthUseCase{ownerRepo: ownerRepo, jwtCfg: jwtCfg, defaultTZ: defaultTZ}
}

// Register crea una cuenta de dueño: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.OwnerResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalid("email", "email inválido")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.Invalid("password", "la contraseña debe tener al menos 8 caracteres")
	}
	kind := strings.ToLower(strings.TrimSpace(in.BusinessKind))
	if kind == "" {
		kind = entity.BusinessGym
	}
	if kind != entity.BusinessGym && kind != entity.BusinessBarbershop {
		return nil, domain.Invalid("business_kind", "tipo de negocio inválido, usar gym o barbershop")
	}
	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = uc.defaultTZ
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, domain.Invalid("timezone", "zona horaria desconocida")
	}
	existing, err := uc.ownerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := strings.TrimSpace(in.BusinessName)
	if name == "" {
		name = email
	}
	owner := &entity.Owner{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		BusinessName: name,
		BusinessKind: kind,
		Timezone:     tz,
		Status:       entity.OwnerStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.ownerRepo.Create(ctx, owner); err != nil {
		return nil, err
	}
	return ToOwnerResponse(owner), nil
}

// Login verifica email/password, genera JWT y retorna token + cuenta.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	owner, err := uc.ownerRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrOwnerNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if owner.Status != entity.OwnerStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, owner.ID, owner.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Owner: *ToOwnerResponse(owner),
	}, nil
}

// Verify reconfirma la contraseña del dueño autenticado antes de una vista sensible.
// Una contraseña incorrecta no es un error: devuelve verified=false.
func (uc *AuthUseCase) Verify(ctx context.Context, ownerID string, in dto.VerifyRequest) (*dto.VerifyResponse, error) {
	owner, err := uc.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrOwnerNotFound
	}
	err = bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(in.Password))
	return &dto.VerifyResponse{Verified: err == nil}, nil
}

// Me devuelve la cuenta autenticada.
func (uc *AuthUseCase) Me(ctx context.Context, ownerID string) (*dto.OwnerResponse, error) {
	owner, err := uc.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrOwnerNotFound
	}
	return ToOwnerResponse(owner), nil
}

// IsActive informa si la cuenta existe y no está suspendida.
func (uc *AuthUseCase) IsActive(ctx context.Context, ownerID string) (bool, error) {
	owner, err := uc.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return owner != nil && owner.Status == entity.OwnerStatusActive, nil
}

// ToOwnerResponse convierte la cuenta al formato de salida.
func ToOwnerResponse(o *entity.Owner) *dto.OwnerResponse {
	if o == nil {
		return nil
	}
	return &dto.OwnerResponse{
		ID:           o.ID,
		Email:        o.Email,
		BusinessName: o.BusinessName,
		BusinessKind: o.BusinessKind,
		Timezone:     o.Timezone,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}
