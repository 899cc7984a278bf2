// Package auth contiene el caso de uso de login de la API de registros de desarrollo.
package auth

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/simkah-portal/internal/application/dto"
	"github.com/jhoicas/simkah-portal/internal/domain"
	"github.com/jhoicas/simkah-portal/internal/domain/entity"
	"github.com/jhoicas/simkah-portal/internal/domain/repository"
	"github.com/jhoicas/simkah-portal/pkg/jwt"
)

// JWTConfig configuración del token.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autentica y crea cuentas.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// NewAccount datos de una cuenta a crear.
type NewAccount struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateAccount hashea la contraseña con bcrypt y guarda la cuenta.
func (uc *AuthUseCase) CreateAccount(in NewAccount) (*entity.UserRecord, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	account := &entity.Account{
		UserRecord: entity.UserRecord{
			ID:          uuid.New().String(),
			DisplayName: name,
			Email:       strings.TrimSpace(in.Email),
			Role:        in.Role,
		},
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := uc.userRepo.Create(account); err != nil {
		return nil, err
	}
	rec := account.Record()
	return &rec, nil
}

// Login valida email y contraseña y devuelve un token firmado con el usuario.
// Email desconocido y contraseña incorrecta son ambos ErrUnauthorized.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !account.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.Email, account.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: account.Record()}, nil
}
