package usecases

import (
	"context"

	"mainta/internal/shared/errors"
	"mainta/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenUseCase struct {
	jwtService JWTService
	logger     logger.Interface
}

func NewRefreshTokenUseCase(jwtService JWTService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtService: jwtService, logger: logger}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*TokenPair, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}

	pair, err := uc.jwtService.Refresh(cmd.RefreshToken)
	if err != nil {
		uc.logger.Warnw("failed to refresh tokens", "error", err)
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}
	return pair, nil
}
