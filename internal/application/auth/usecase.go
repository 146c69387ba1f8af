package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/contempla/cotas-api/internal/application/dto"
	"github.com/contempla/cotas-api/internal/domain"
	"github.com/contempla/cotas-api/internal/domain/entity"
	"github.com/contempla/cotas-api/internal/domain/repository"
	"github.com/contempla/cotas-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: registro e login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	pfRepo   repository.PerfilPFRepository
	pjRepo   repository.PerfilPJRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, pfRepo repository.PerfilPFRepository, pjRepo repository.PerfilPJRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, pfRepo: pfRepo, pjRepo: pjRepo, jwtCfg: jwtCfg}
}

// RegisterUser cria o usuário e seu perfil PF ou PJ em EM_ANALISE. Hasheia o
// password com bcrypt. Devolve ErrEmailAlreadyExists se o email já existir.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.TipoPerfil != entity.CompradorPF && in.TipoPerfil != entity.CompradorPJ {
		return nil, domain.ErrInvalidInput
	}
	if in.TipoPerfil == entity.CompradorPF && in.CPF == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TipoPerfil == entity.CompradorPJ && in.CNPJ == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	userID := uuid.New().String()
	perfilID := uuid.New().String()

	switch in.TipoPerfil {
	case entity.CompradorPF:
		err = uc.pfRepo.Create(&entity.PerfilPF{
			ID:        perfilID,
			UserID:    userID,
			Nome:      in.Nome,
			CPF:       in.CPF,
			Telefone:  in.Telefone,
			Status:    entity.PerfilEmAnalise,
			CreatedAt: now,
			UpdatedAt: now,
		})
	case entity.CompradorPJ:
		razao := in.RazaoSocial
		if razao == "" {
			razao = in.Nome
		}
		err = uc.pjRepo.Create(&entity.PerfilPJ{
			ID:          perfilID,
			UserID:      userID,
			RazaoSocial: razao,
			CNPJ:        in.CNPJ,
			Telefone:    in.Telefone,
			Status:      entity.PerfilEmAnalise,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           userID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Nome:         in.Nome,
		Role:         entity.RoleUsuario,
		TipoPerfil:   in.TipoPerfil,
		PerfilID:     perfilID,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, gera JWT e retorna token + usuário.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.PerfilID, user.TipoPerfil, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Nome:       u.Nome,
		Role:       u.Role,
		TipoPerfil: u.TipoPerfil,
		PerfilID:   u.PerfilID,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
